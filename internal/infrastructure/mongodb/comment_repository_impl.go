package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/six-cities-api/internal/domain/entity"
	"github.com/oksasatya/six-cities-api/internal/domain/repository"
)

type CommentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{coll: db.Collection(CommentsCollection)}
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	res, err := r.coll.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *CommentRepository) ListByOffer(ctx context.Context, offerID primitive.ObjectID, limit int) ([]entity.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{"offerId": offerID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	out := make([]entity.Comment, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CommentRepository) DeleteByOffer(ctx context.Context, offerID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"offerId": offerID})
	return err
}

func (r *CommentRepository) CountByOffer(ctx context.Context, offerID primitive.ObjectID) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"offerId": offerID})
	return int(n), err
}

func (r *CommentRepository) AverageRating(ctx context.Context, offerID primitive.ObjectID) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "offerId", Value: offerID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "averageRating", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
		}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer func() { _ = cur.Close(ctx) }()

	var rows []struct {
		AverageRating *float64 `bson:"averageRating"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 || rows[0].AverageRating == nil {
		return 0, nil
	}
	return *rows[0].AverageRating, nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
