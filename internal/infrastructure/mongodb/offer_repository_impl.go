package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/six-cities-api/internal/domain/entity"
	"github.com/oksasatya/six-cities-api/internal/domain/repository"
)

var newestFirst = bson.D{{Key: "date", Value: -1}}

type OfferRepository struct {
	coll *mongo.Collection
}

func NewOfferRepository(db *mongo.Database) *OfferRepository {
	return &OfferRepository{coll: db.Collection(OffersCollection)}
}

func (r *OfferRepository) Create(ctx context.Context, o *entity.Offer) error {
	now := time.Now().UTC()
	o.CreatedAt, o.UpdatedAt = now, now
	if o.Date.IsZero() {
		o.Date = now
	}
	res, err := r.coll.InsertOne(ctx, o)
	if err != nil {
		return err
	}
	o.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *OfferRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Offer, error) {
	o := &entity.Offer{}
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return o, nil
}

func (r *OfferRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]entity.Offer, error) {
	if len(ids) == 0 {
		return []entity.Offer{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetSort(newestFirst))
}

func (r *OfferRepository) List(ctx context.Context, limit int) ([]entity.Offer, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(newestFirst).SetLimit(int64(limit)))
}

func (r *OfferRepository) ListPremiumByCity(ctx context.Context, city string, limit int) ([]entity.Offer, error) {
	filter := bson.M{"city": city, "isPremium": true}
	return r.find(ctx, filter, options.Find().SetSort(newestFirst).SetLimit(int64(limit)))
}

func (r *OfferRepository) Update(ctx context.Context, id primitive.ObjectID, upd entity.OfferUpdate) (*entity.Offer, error) {
	set := updateDocument(upd)
	set["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	o := &entity.Offer{}
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return o, nil
}

func (r *OfferRepository) UpdateStats(ctx context.Context, id primitive.ObjectID, stats entity.OfferStats) error {
	_, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"commentCount": stats.CommentCount,
		"rating":       stats.Rating,
		"updatedAt":    time.Now().UTC(),
	}})
	return err
}

func (r *OfferRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *OfferRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *OfferRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]entity.Offer, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	out := make([]entity.Offer, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func updateDocument(upd entity.OfferUpdate) bson.M {
	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.City != nil {
		set["city"] = *upd.City
	}
	if upd.Preview != nil {
		set["preview"] = *upd.Preview
	}
	if upd.Images != nil {
		set["images"] = upd.Images
	}
	if upd.IsPremium != nil {
		set["isPremium"] = *upd.IsPremium
	}
	if upd.Type != nil {
		set["type"] = *upd.Type
	}
	if upd.Bedrooms != nil {
		set["bedrooms"] = *upd.Bedrooms
	}
	if upd.Guests != nil {
		set["guests"] = *upd.Guests
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.Amenities != nil {
		set["amenities"] = upd.Amenities
	}
	if upd.Coordinates != nil {
		set["coordinates"] = *upd.Coordinates
	}
	return set
}

var _ repository.OfferRepository = (*OfferRepository)(nil)
