package middleware

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/six-cities-api/internal/application"
	"github.com/oksasatya/six-cities-api/internal/domain/entity"
	"github.com/oksasatya/six-cities-api/pkg/apperror"
)

// CtxUserIDKey mirrors the authenticated user id into gin's keys for access logs and rate limit keys.
const CtxUserIDKey = "userID"

type TokenVerifier interface {
	VerifyToken(token string) *application.TokenPayload
}

type UserFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
}

// Authenticate resolves the bearer token to a stored user and sets rc.User.
func Authenticate(tokens TokenVerifier, users UserFinder) Interceptor {
	return InterceptorFunc(func(rc *RequestContext, next Next) error {
		u, err := resolveUser(rc, tokens, users)
		if err != nil {
			return err
		}
		rc.User = u
		rc.Gin.Set(CtxUserIDKey, u.ID.Hex())
		return next()
	})
}

// OptionalAuthenticate sets rc.User when a valid token is present and never fails.
func OptionalAuthenticate(tokens TokenVerifier, users UserFinder) Interceptor {
	return InterceptorFunc(func(rc *RequestContext, next Next) error {
		if u, err := resolveUser(rc, tokens, users); err == nil {
			rc.User = u
			rc.Gin.Set(CtxUserIDKey, u.ID.Hex())
		}
		return next()
	})
}

func resolveUser(rc *RequestContext, tokens TokenVerifier, users UserFinder) (*entity.User, error) {
	token, ok := bearerToken(rc.Gin.GetHeader("Authorization"))
	if !ok {
		return nil, apperror.Unauthorized("Authorization header is missing")
	}
	payload := tokens.VerifyToken(token)
	if payload == nil {
		return nil, apperror.Unauthorized("Invalid or expired token")
	}
	id, err := primitive.ObjectIDFromHex(payload.ID)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid or expired token")
	}
	u, err := users.FindByID(rc.Gin.Request.Context(), id)
	if err != nil || u == nil {
		return nil, apperror.Unauthorized("User not found")
	}
	return u, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
