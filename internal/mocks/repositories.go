// Package mocks provides in-memory implementations of the repository ports and
// infrastructure adapters for tests.
package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/six-cities-api/internal/domain/entity"
	"github.com/oksasatya/six-cities-api/internal/domain/repository"
)

// DuplicateKeyError mimics the driver error for a unique index violation.
func DuplicateKeyError() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}}
}

type UserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]entity.User
	// Err, when set, is returned by every method.
	Err error
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: map[primitive.ObjectID]entity.User{}}
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return DuplicateKeyError()
		}
	}
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.CreatedAt, u.UpdatedAt = now, now
	if u.FavoriteOffers == nil {
		u.FavoriteOffers = []primitive.ObjectID{}
	}
	r.users[u.ID] = cloneUser(*u)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := cloneUser(u)
	return &cp, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := cloneUser(u)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	_, ok := r.users[id]
	return ok, nil
}

func (r *UserRepo) UpdateAvatar(_ context.Context, id primitive.ObjectID, avatar string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	u.Avatar = avatar
	u.UpdatedAt = time.Now().UTC()
	r.users[id] = u
	cp := cloneUser(u)
	return &cp, nil
}

func (r *UserRepo) AddFavorite(_ context.Context, userID, offerID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	u, ok := r.users[userID]
	if !ok {
		return nil
	}
	if !u.HasFavorite(offerID) {
		u.FavoriteOffers = append(u.FavoriteOffers, offerID)
	}
	r.users[userID] = u
	return nil
}

func (r *UserRepo) RemoveFavorite(_ context.Context, userID, offerID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	u, ok := r.users[userID]
	if !ok {
		return nil
	}
	kept := u.FavoriteOffers[:0:0]
	for _, id := range u.FavoriteOffers {
		if id != offerID {
			kept = append(kept, id)
		}
	}
	u.FavoriteOffers = kept
	r.users[userID] = u
	return nil
}

// Snapshot returns the stored user as is, for assertions.
func (r *UserRepo) Snapshot(id primitive.ObjectID) (entity.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	return cloneUser(u), ok
}

func cloneUser(u entity.User) entity.User {
	u.FavoriteOffers = append([]primitive.ObjectID{}, u.FavoriteOffers...)
	return u
}

type OfferRepo struct {
	mu     sync.Mutex
	offers map[primitive.ObjectID]entity.Offer
	Err    error
	// StatsErr is returned by UpdateStats only.
	StatsErr error
}

func NewOfferRepo() *OfferRepo {
	return &OfferRepo{offers: map[primitive.ObjectID]entity.Offer{}}
}

func (r *OfferRepo) Create(_ context.Context, o *entity.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	now := time.Now().UTC()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	o.CreatedAt, o.UpdatedAt = now, now
	if o.Date.IsZero() {
		o.Date = now
	}
	r.offers[o.ID] = *o
	return nil
}

func (r *OfferRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	o, ok := r.offers[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *OfferRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]entity.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]entity.Offer, 0, len(ids))
	for _, id := range ids {
		if o, ok := r.offers[id]; ok {
			out = append(out, o)
		}
	}
	sortNewest(out)
	return out, nil
}

func (r *OfferRepo) List(_ context.Context, limit int) ([]entity.Offer, error) {
	return r.filter(limit, func(entity.Offer) bool { return true })
}

func (r *OfferRepo) ListPremiumByCity(_ context.Context, city string, limit int) ([]entity.Offer, error) {
	return r.filter(limit, func(o entity.Offer) bool { return o.IsPremium && o.City == city })
}

func (r *OfferRepo) filter(limit int, keep func(entity.Offer) bool) ([]entity.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]entity.Offer, 0)
	for _, o := range r.offers {
		if keep(o) {
			out = append(out, o)
		}
	}
	sortNewest(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *OfferRepo) Update(_ context.Context, id primitive.ObjectID, upd entity.OfferUpdate) (*entity.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	o, ok := r.offers[id]
	if !ok {
		return nil, nil
	}
	applyUpdate(&o, upd)
	o.UpdatedAt = time.Now().UTC()
	r.offers[id] = o
	return &o, nil
}

func (r *OfferRepo) UpdateStats(_ context.Context, id primitive.ObjectID, stats entity.OfferStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if r.StatsErr != nil {
		return r.StatsErr
	}
	o, ok := r.offers[id]
	if !ok {
		return nil
	}
	o.CommentCount = stats.CommentCount
	o.Rating = stats.Rating
	r.offers[id] = o
	return nil
}

func (r *OfferRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	delete(r.offers, id)
	return nil
}

func (r *OfferRepo) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	_, ok := r.offers[id]
	return ok, nil
}

func sortNewest(offers []entity.Offer) {
	sort.SliceStable(offers, func(i, j int) bool { return offers[i].Date.After(offers[j].Date) })
}

func applyUpdate(o *entity.Offer, upd entity.OfferUpdate) {
	if upd.Title != nil {
		o.Title = *upd.Title
	}
	if upd.Description != nil {
		o.Description = *upd.Description
	}
	if upd.City != nil {
		o.City = *upd.City
	}
	if upd.Preview != nil {
		o.Preview = *upd.Preview
	}
	if upd.Images != nil {
		o.Images = upd.Images
	}
	if upd.IsPremium != nil {
		o.IsPremium = *upd.IsPremium
	}
	if upd.Type != nil {
		o.Type = *upd.Type
	}
	if upd.Bedrooms != nil {
		o.Bedrooms = *upd.Bedrooms
	}
	if upd.Guests != nil {
		o.Guests = *upd.Guests
	}
	if upd.Price != nil {
		o.Price = *upd.Price
	}
	if upd.Amenities != nil {
		o.Amenities = upd.Amenities
	}
	if upd.Coordinates != nil {
		o.Coordinates = *upd.Coordinates
	}
}

type CommentRepo struct {
	mu       sync.Mutex
	comments []entity.Comment
	Err      error
}

func NewCommentRepo() *CommentRepo { return &CommentRepo{} }

func (r *CommentRepo) Create(_ context.Context, c *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	// strictly increasing timestamps keep newest-first ordering deterministic
	if n := len(r.comments); n > 0 && !now.After(r.comments[n-1].CreatedAt) {
		now = r.comments[n-1].CreatedAt.Add(time.Millisecond)
	}
	c.CreatedAt, c.UpdatedAt = now, now
	r.comments = append(r.comments, *c)
	return nil
}

func (r *CommentRepo) ListByOffer(_ context.Context, offerID primitive.ObjectID, limit int) ([]entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]entity.Comment, 0)
	for i := len(r.comments) - 1; i >= 0; i-- {
		if r.comments[i].OfferID == offerID {
			out = append(out, r.comments[i])
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *CommentRepo) DeleteByOffer(_ context.Context, offerID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	kept := r.comments[:0:0]
	for _, c := range r.comments {
		if c.OfferID != offerID {
			kept = append(kept, c)
		}
	}
	r.comments = kept
	return nil
}

func (r *CommentRepo) CountByOffer(_ context.Context, offerID primitive.ObjectID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	n := 0
	for _, c := range r.comments {
		if c.OfferID == offerID {
			n++
		}
	}
	return n, nil
}

func (r *CommentRepo) AverageRating(_ context.Context, offerID primitive.ObjectID) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	sum, n := 0, 0
	for _, c := range r.comments {
		if c.OfferID == offerID {
			sum += c.Rating
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

var (
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.OfferRepository   = (*OfferRepo)(nil)
	_ repository.CommentRepository = (*CommentRepo)(nil)
)
