package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/six-cities-api/internal/domain/entity"
	"github.com/oksasatya/six-cities-api/pkg/helpers"
)

// TokenPayload is what a verified access token carries.
type TokenPayload struct {
	ID    string
	Email string
}

type AuthService struct {
	Users  *UserService
	Tokens *helpers.TokenManager
	Logger logrus.FieldLogger
}

func NewAuthService(users *UserService, tokens *helpers.TokenManager, logger logrus.FieldLogger) *AuthService {
	return &AuthService{Users: users, Tokens: tokens, Logger: logger}
}

// Login checks the credentials. Unknown email and wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.PasswordMatches(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *AuthService) CreateToken(u *entity.User) (string, error) {
	tok, _, err := s.Tokens.Generate(u.ID.Hex(), u.Email)
	return tok, err
}

// VerifyToken returns nil for any invalid, expired or tampered token.
func (s *AuthService) VerifyToken(token string) *TokenPayload {
	if token == "" {
		return nil
	}
	claims, err := s.Tokens.Parse(token)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Debug("token rejected")
		}
		return nil
	}
	if claims.ID == "" {
		return nil
	}
	return &TokenPayload{ID: claims.ID, Email: claims.Email}
}
