package application

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/six-cities-api/internal/domain/entity"
	repo "github.com/oksasatya/six-cities-api/internal/domain/repository"
)

const DefaultCommentCount = 50

type CommentService struct {
	Comments repo.CommentRepository
	Offers   repo.OfferRepository
	Logger   logrus.FieldLogger
}

func NewCommentService(comments repo.CommentRepository, offers repo.OfferRepository, logger logrus.FieldLogger) *CommentService {
	return &CommentService{Comments: comments, Offers: offers, Logger: logger}
}

type CreateCommentInput struct {
	Text     string
	Rating   int
	AuthorID primitive.ObjectID
	OfferID  primitive.ObjectID
}

// Create stores the comment and then recomputes the offer's rating and comment count.
// The two writes are not atomic: if the second fails the stats stay stale until the
// next comment on the same offer.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*entity.Comment, error) {
	c := &entity.Comment{
		Text:     in.Text,
		Rating:   in.Rating,
		AuthorID: in.AuthorID,
		OfferID:  in.OfferID,
	}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	if _, err := s.RecalculateStats(ctx, in.OfferID); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{
				"offer_id":   in.OfferID.Hex(),
				"comment_id": c.ID.Hex(),
			}).Error("offer stats left stale")
		}
		return nil, fmt.Errorf("recalculate stats: %w", err)
	}
	return c, nil
}

// RecalculateStats derives commentCount and rating from the stored comments and writes them back.
func (s *CommentService) RecalculateStats(ctx context.Context, offerID primitive.ObjectID) (entity.OfferStats, error) {
	count, err := s.CountByOfferID(ctx, offerID)
	if err != nil {
		return entity.OfferStats{}, err
	}
	avg, err := s.CalculateAverageRating(ctx, offerID)
	if err != nil {
		return entity.OfferStats{}, err
	}
	stats := entity.OfferStats{CommentCount: count, Rating: RoundRating(avg)}
	if err := s.Offers.UpdateStats(ctx, offerID, stats); err != nil {
		return entity.OfferStats{}, err
	}
	return stats, nil
}

// RoundRating rounds to one decimal place.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}

// FindByOfferID returns the newest comments first, at most DefaultCommentCount.
func (s *CommentService) FindByOfferID(ctx context.Context, offerID primitive.ObjectID, limit int) ([]entity.Comment, error) {
	return s.Comments.ListByOffer(ctx, offerID, clampLimit(limit, DefaultCommentCount))
}

func (s *CommentService) DeleteByOfferID(ctx context.Context, offerID primitive.ObjectID) error {
	return s.Comments.DeleteByOffer(ctx, offerID)
}

func (s *CommentService) CalculateAverageRating(ctx context.Context, offerID primitive.ObjectID) (float64, error) {
	return s.Comments.AverageRating(ctx, offerID)
}

func (s *CommentService) CountByOfferID(ctx context.Context, offerID primitive.ObjectID) (int, error) {
	return s.Comments.CountByOffer(ctx, offerID)
}
