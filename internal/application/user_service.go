package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/six-cities-api/internal/domain/entity"
	repo "github.com/oksasatya/six-cities-api/internal/domain/repository"
	"github.com/oksasatya/six-cities-api/pkg/helpers"
	"github.com/oksasatya/six-cities-api/pkg/mailer"
	mailtpl "github.com/oksasatya/six-cities-api/pkg/mailer/templates"
)

type UserService struct {
	Repo       repo.UserRepository
	Jobs       JobPublisher // nil disables welcome emails
	Logger     logrus.FieldLogger
	AppName    string
	BcryptCost int
}

func NewUserService(repo repo.UserRepository, jobs JobPublisher, logger logrus.FieldLogger, appName string) *UserService {
	return &UserService{Repo: repo, Jobs: jobs, Logger: logger, AppName: appName}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Type     entity.UserType
	Avatar   string
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Avatar:       in.Avatar,
		PasswordHash: hash,
		Type:         in.Type,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		// lost a race with a concurrent registration
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.publishWelcome(ctx, u)
	return u, nil
}

func (s *UserService) publishWelcome(ctx context.Context, u *entity.User) {
	if s.Jobs == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(s.AppName, u.Name, u.Email, mailtpl.WithUserType(string(u.Type))),
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.Jobs.PublishJSON(c, job); err != nil {
		helpers.LogWarn(s.Logger, "enqueue welcome email failed", err, logrus.Fields{"user_id": u.ID.Hex()})
	}
}

func (s *UserService) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// Exists reports whether a user with the given hex id is stored. Malformed ids do not exist.
func (s *UserService) Exists(ctx context.Context, hexID string) (bool, error) {
	id, ok := parseID(hexID)
	if !ok {
		return false, nil
	}
	return s.Repo.Exists(ctx, id)
}

func (s *UserService) UpdateAvatar(ctx context.Context, id primitive.ObjectID, avatar string) (*entity.User, error) {
	u, err := s.Repo.UpdateAvatar(ctx, id, avatar)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) AddToFavorites(ctx context.Context, userID, offerID primitive.ObjectID) error {
	return s.Repo.AddFavorite(ctx, userID, offerID)
}

func (s *UserService) RemoveFromFavorites(ctx context.Context, userID, offerID primitive.ObjectID) error {
	return s.Repo.RemoveFavorite(ctx, userID, offerID)
}

// GetFavoriteOffers returns the current favorites set of the user.
func (s *UserService) GetFavoriteOffers(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	u, err := s.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.FavoriteOffers, nil
}
