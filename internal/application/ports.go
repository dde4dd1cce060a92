package application

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/six-cities-api/internal/domain/entity"
)

// OfferIndexer keeps a search index in sync with stored offers.
type OfferIndexer interface {
	IndexOffer(ctx context.Context, o *entity.Offer) error
	DeleteOffer(ctx context.Context, id primitive.ObjectID) error
	SearchOffers(ctx context.Context, q string, size int) ([]primitive.ObjectID, error)
}

// JobPublisher puts background jobs on a queue.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// parseID turns a hex path parameter into an ObjectID; ok is false for malformed input.
func parseID(hex string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	return id, err == nil
}
