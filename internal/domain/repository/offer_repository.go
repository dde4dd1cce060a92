package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/six-cities-api/internal/domain/entity"
)

// OfferRepository defines persistence for offers. List methods return the
// newest offers first.
type OfferRepository interface {
	Create(ctx context.Context, o *entity.Offer) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Offer, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]entity.Offer, error)
	List(ctx context.Context, limit int) ([]entity.Offer, error)
	ListPremiumByCity(ctx context.Context, city string, limit int) ([]entity.Offer, error)
	Update(ctx context.Context, id primitive.ObjectID, upd entity.OfferUpdate) (*entity.Offer, error)
	UpdateStats(ctx context.Context, id primitive.ObjectID, stats entity.OfferStats) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}
