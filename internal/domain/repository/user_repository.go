package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/six-cities-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Lookups return (nil, nil) when no document matches.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	UpdateAvatar(ctx context.Context, id primitive.ObjectID, avatar string) (*entity.User, error)
	AddFavorite(ctx context.Context, userID, offerID primitive.ObjectID) error
	RemoveFavorite(ctx context.Context, userID, offerID primitive.ObjectID) error
}
