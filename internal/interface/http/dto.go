package handlers

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/six-cities-api/internal/domain/entity"
)

// isoLayout matches JavaScript's Date.prototype.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

func isoTime(t time.Time) string { return t.UTC().Format(isoLayout) }

// Requests

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=15"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=12"`
	Type     string `json:"type" binding:"required,usertype"`
	Avatar   string `json:"avatar" binding:"omitempty,max=512"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CoordinatesDTO struct {
	Latitude  float64 `json:"latitude" binding:"latitude"`
	Longitude float64 `json:"longitude" binding:"longitude"`
}

type CreateOfferRequest struct {
	Title       string          `json:"title" binding:"required,min=10,max=100"`
	Description string          `json:"description" binding:"required,min=20,max=1024"`
	City        string          `json:"city" binding:"required,city"`
	Preview     string          `json:"preview" binding:"required,max=512"`
	Images      []string        `json:"images" binding:"required,len=6,dive,required,max=512"`
	IsPremium   bool            `json:"isPremium"`
	Type        string          `json:"type" binding:"required,housing"`
	Bedrooms    int             `json:"bedrooms" binding:"required,gte=1,lte=8"`
	Guests      int             `json:"guests" binding:"required,gte=1,lte=10"`
	Price       int             `json:"price" binding:"required,gte=100,lte=100000"`
	Amenities   []string        `json:"amenities" binding:"required,min=1,unique,dive,amenity"`
	Coordinates *CoordinatesDTO `json:"coordinates" binding:"required"`
}

// UpdateOfferRequest is a partial update; absent fields are left untouched.
type UpdateOfferRequest struct {
	Title       *string         `json:"title" binding:"omitempty,min=10,max=100"`
	Description *string         `json:"description" binding:"omitempty,min=20,max=1024"`
	City        *string         `json:"city" binding:"omitempty,city"`
	Preview     *string         `json:"preview" binding:"omitempty,min=1,max=512"`
	Images      []string        `json:"images" binding:"omitempty,len=6,dive,required,max=512"`
	IsPremium   *bool           `json:"isPremium"`
	Type        *string         `json:"type" binding:"omitempty,housing"`
	Bedrooms    *int            `json:"bedrooms" binding:"omitempty,gte=1,lte=8"`
	Guests      *int            `json:"guests" binding:"omitempty,gte=1,lte=10"`
	Price       *int            `json:"price" binding:"omitempty,gte=100,lte=100000"`
	Amenities   []string        `json:"amenities" binding:"omitempty,min=1,unique,dive,amenity"`
	Coordinates *CoordinatesDTO `json:"coordinates" binding:"omitempty"`
}

func (r *UpdateOfferRequest) toUpdate() entity.OfferUpdate {
	upd := entity.OfferUpdate{
		Title:       r.Title,
		Description: r.Description,
		City:        r.City,
		Preview:     r.Preview,
		Images:      r.Images,
		IsPremium:   r.IsPremium,
		Bedrooms:    r.Bedrooms,
		Guests:      r.Guests,
		Price:       r.Price,
		Amenities:   r.Amenities,
	}
	if r.Type != nil {
		t := entity.HousingType(*r.Type)
		upd.Type = &t
	}
	if r.Coordinates != nil {
		upd.Coordinates = &entity.Coordinates{Latitude: r.Coordinates.Latitude, Longitude: r.Coordinates.Longitude}
	}
	return upd
}

type CreateCommentRequest struct {
	Text   string `json:"text" binding:"required,min=5,max=1024"`
	Rating int    `json:"rating" binding:"required,gte=1,lte=5"`
}

// Responses

type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar,omitempty"`
	Type      string `json:"type"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Type:      string(u.Type),
		CreatedAt: isoTime(u.CreatedAt),
		UpdatedAt: isoTime(u.UpdatedAt),
	}
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type OfferResponse struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Date         string         `json:"date"`
	City         string         `json:"city"`
	Preview      string         `json:"preview"`
	Images       []string       `json:"images"`
	IsPremium    bool           `json:"isPremium"`
	IsFavorite   bool           `json:"isFavorite"`
	Rating       float64        `json:"rating"`
	Type         string         `json:"type"`
	Bedrooms     int            `json:"bedrooms"`
	Guests       int            `json:"guests"`
	Price        int            `json:"price"`
	Amenities    []string       `json:"amenities"`
	AuthorID     string         `json:"authorId"`
	CommentCount int            `json:"commentCount"`
	Coordinates  CoordinatesDTO `json:"coordinates"`
	CreatedAt    string         `json:"createdAt"`
	UpdatedAt    string         `json:"updatedAt"`
}

func NewOfferResponse(o *entity.Offer, isFavorite bool) OfferResponse {
	return OfferResponse{
		ID:           o.ID.Hex(),
		Title:        o.Title,
		Description:  o.Description,
		Date:         isoTime(o.Date),
		City:         o.City,
		Preview:      o.Preview,
		Images:       nonNil(o.Images),
		IsPremium:    o.IsPremium,
		IsFavorite:   isFavorite,
		Rating:       o.Rating,
		Type:         string(o.Type),
		Bedrooms:     o.Bedrooms,
		Guests:       o.Guests,
		Price:        o.Price,
		Amenities:    nonNil(o.Amenities),
		AuthorID:     o.AuthorID.Hex(),
		CommentCount: o.CommentCount,
		Coordinates:  CoordinatesDTO{Latitude: o.Coordinates.Latitude, Longitude: o.Coordinates.Longitude},
		CreatedAt:    isoTime(o.CreatedAt),
		UpdatedAt:    isoTime(o.UpdatedAt),
	}
}

// NewOfferResponses flags each offer against the viewer's favorites; user may be nil.
func NewOfferResponses(offers []entity.Offer, user *entity.User) []OfferResponse {
	favs := map[primitive.ObjectID]struct{}{}
	if user != nil {
		for _, id := range user.FavoriteOffers {
			favs[id] = struct{}{}
		}
	}
	out := make([]OfferResponse, 0, len(offers))
	for i := range offers {
		_, fav := favs[offers[i].ID]
		out = append(out, NewOfferResponse(&offers[i], fav))
	}
	return out
}

type CommentResponse struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	Rating      int          `json:"rating"`
	PublishedAt string       `json:"publishedAt"`
	Author      UserResponse `json:"author"`
}

func NewCommentResponse(c *entity.Comment, author *entity.User) CommentResponse {
	resp := CommentResponse{
		ID:          c.ID.Hex(),
		Text:        c.Text,
		Rating:      c.Rating,
		PublishedAt: isoTime(c.CreatedAt),
	}
	if author != nil {
		resp.Author = NewUserResponse(author)
	} else {
		resp.Author = UserResponse{ID: c.AuthorID.Hex()}
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
