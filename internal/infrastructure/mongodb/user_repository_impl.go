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

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(UsersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	if u.FavoriteOffers == nil {
		u.FavoriteOffers = []primitive.ObjectID{}
	}
	res, err := r.coll.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id primitive.ObjectID, avatar string) (*entity.User, error) {
	update := bson.M{"$set": bson.M{"avatar": avatar, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	u := &entity.User{}
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// AddFavorite is idempotent: $addToSet leaves the set untouched when the offer is present.
func (r *UserRepository) AddFavorite(ctx context.Context, userID, offerID primitive.ObjectID) error {
	_, err := r.coll.UpdateByID(ctx, userID, bson.M{
		"$addToSet": bson.M{"favoriteOffers": offerID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	})
	return err
}

// RemoveFavorite is idempotent: $pull on a missing element is a no-op.
func (r *UserRepository) RemoveFavorite(ctx context.Context, userID, offerID primitive.ObjectID) error {
	_, err := r.coll.UpdateByID(ctx, userID, bson.M{
		"$pull": bson.M{"favoriteOffers": offerID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	return err
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	u := &entity.User{}
	if err := r.coll.FindOne(ctx, filter).Decode(u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
