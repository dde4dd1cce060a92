package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/six-cities-api/internal/domain/entity"
	repo "github.com/oksasatya/six-cities-api/internal/domain/repository"
	"github.com/oksasatya/six-cities-api/pkg/helpers"
)

const (
	DefaultOfferCount   = 60
	DefaultPremiumCount = 3
	DefaultSearchCount  = 20
)

type OfferService struct {
	Offers   repo.OfferRepository
	Comments repo.CommentRepository
	Users    repo.UserRepository
	Index    OfferIndexer // optional
	Logger   logrus.FieldLogger
}

func NewOfferService(offers repo.OfferRepository, comments repo.CommentRepository, users repo.UserRepository, index OfferIndexer, logger logrus.FieldLogger) *OfferService {
	return &OfferService{Offers: offers, Comments: comments, Users: users, Index: index, Logger: logger}
}

type CreateOfferInput struct {
	Title       string
	Description string
	City        string
	Preview     string
	Images      []string
	IsPremium   bool
	Type        entity.HousingType
	Bedrooms    int
	Guests      int
	Price       int
	Amenities   []string
	Coordinates entity.Coordinates
}

func clampLimit(limit, def int) int {
	if limit <= 0 || limit > def {
		return def
	}
	return limit
}

func (s *OfferService) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Offer, error) {
	o, err := s.Offers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOfferNotFound
	}
	return o, nil
}

// FindMany returns the newest offers, at most DefaultOfferCount.
func (s *OfferService) FindMany(ctx context.Context, limit int) ([]entity.Offer, error) {
	return s.Offers.List(ctx, clampLimit(limit, DefaultOfferCount))
}

func (s *OfferService) FindPremiumByCity(ctx context.Context, city string, limit int) ([]entity.Offer, error) {
	return s.Offers.ListPremiumByCity(ctx, city, clampLimit(limit, DefaultPremiumCount))
}

// Create stores a new offer; derived stats start at zero.
func (s *OfferService) Create(ctx context.Context, authorID primitive.ObjectID, in CreateOfferInput) (*entity.Offer, error) {
	o := &entity.Offer{
		Title:        in.Title,
		Description:  in.Description,
		Date:         time.Now().UTC(),
		City:         in.City,
		Preview:      in.Preview,
		Images:       in.Images,
		IsPremium:    in.IsPremium,
		Rating:       0,
		Type:         in.Type,
		Bedrooms:     in.Bedrooms,
		Guests:       in.Guests,
		Price:        in.Price,
		Amenities:    in.Amenities,
		AuthorID:     authorID,
		CommentCount: 0,
		Coordinates:  in.Coordinates,
	}
	if err := s.Offers.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}
	s.reindex(ctx, o)
	return o, nil
}

// Update applies a partial update on behalf of actorID, who must be the author.
func (s *OfferService) Update(ctx context.Context, id, actorID primitive.ObjectID, upd entity.OfferUpdate) (*entity.Offer, error) {
	if _, err := s.ownedBy(ctx, id, actorID); err != nil {
		return nil, err
	}
	o, err := s.Offers.Update(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("update offer: %w", err)
	}
	if o == nil {
		return nil, ErrOfferNotFound
	}
	s.reindex(ctx, o)
	return o, nil
}

// Delete removes the offer's comments first, then the offer itself.
func (s *OfferService) Delete(ctx context.Context, id, actorID primitive.ObjectID) error {
	if _, err := s.ownedBy(ctx, id, actorID); err != nil {
		return err
	}
	if err := s.Comments.DeleteByOffer(ctx, id); err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}
	if err := s.Offers.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	if s.Index != nil {
		if err := s.Index.DeleteOffer(ctx, id); err != nil {
			helpers.LogWarn(s.Logger, "es delete failed", err, logrus.Fields{"offer_id": id.Hex()})
		}
	}
	return nil
}

func (s *OfferService) ownedBy(ctx context.Context, id, actorID primitive.ObjectID) (*entity.Offer, error) {
	o, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.AuthorID != actorID {
		return nil, ErrNotOfferAuthor
	}
	return o, nil
}

// FindFavorites returns the offers in the user's favorites set.
func (s *OfferService) FindFavorites(ctx context.Context, userID primitive.ObjectID) ([]entity.Offer, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return s.Offers.GetByIDs(ctx, u.FavoriteOffers)
}

func (s *OfferService) UpdateStats(ctx context.Context, id primitive.ObjectID, stats entity.OfferStats) error {
	return s.Offers.UpdateStats(ctx, id, stats)
}

// Exists reports whether an offer with the given hex id is stored. Malformed ids do not exist.
func (s *OfferService) Exists(ctx context.Context, hexID string) (bool, error) {
	id, ok := parseID(hexID)
	if !ok {
		return false, nil
	}
	return s.Offers.Exists(ctx, id)
}

// Search runs a full-text query against the index and loads the hits from the store
// in relevance order. Without an index it returns no results.
func (s *OfferService) Search(ctx context.Context, q string, size int) ([]entity.Offer, error) {
	if s.Index == nil || q == "" {
		return []entity.Offer{}, nil
	}
	ids, err := s.Index.SearchOffers(ctx, q, clampLimit(size, DefaultSearchCount))
	if err != nil {
		return nil, fmt.Errorf("search offers: %w", err)
	}
	found, err := s.Offers.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]entity.Offer, len(found))
	for _, o := range found {
		byID[o.ID] = o
	}
	out := make([]entity.Offer, 0, len(ids))
	for _, id := range ids {
		// the index may lag behind deletes
		if o, ok := byID[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *OfferService) reindex(ctx context.Context, o *entity.Offer) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexOffer(ctx, o); err != nil {
		helpers.LogWarn(s.Logger, "es index failed", err, logrus.Fields{"offer_id": o.ID.Hex()})
	}
}
