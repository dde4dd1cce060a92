package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/six-cities-api/internal/domain/entity"
)

// CommentRepository defines persistence and aggregation for comments.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	ListByOffer(ctx context.Context, offerID primitive.ObjectID, limit int) ([]entity.Comment, error)
	DeleteByOffer(ctx context.Context, offerID primitive.ObjectID) error
	CountByOffer(ctx context.Context, offerID primitive.ObjectID) (int, error)
	// AverageRating returns the raw mean of ratings, 0 when the offer has no comments.
	AverageRating(ctx context.Context, offerID primitive.ObjectID) (float64, error)
}
