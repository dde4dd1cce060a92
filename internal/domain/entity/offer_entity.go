package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HousingType string

const (
	HousingApartment HousingType = "apartment"
	HousingHouse     HousingType = "house"
	HousingRoom      HousingType = "room"
	HousingHotel     HousingType = "hotel"
)

// Cities lists the cities an offer can be published in.
var Cities = []string{"Paris", "Cologne", "Brussels", "Amsterdam", "Hamburg", "Dusseldorf"}

// Amenities lists the amenities an offer may advertise.
var Amenities = []string{
	"Breakfast",
	"Air conditioning",
	"Laptop friendly workspace",
	"Baby seat",
	"Washer",
	"Towels",
	"Fridge",
}

type Coordinates struct {
	Latitude  float64 `bson:"latitude"`
	Longitude float64 `bson:"longitude"`
}

// Offer is a rental listing. Rating and CommentCount are derived from the
// comments referencing the offer and are only written by stats recomputation.
type Offer struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	Date         time.Time          `bson:"date"`
	City         string             `bson:"city"`
	Preview      string             `bson:"preview"`
	Images       []string           `bson:"images"`
	IsPremium    bool               `bson:"isPremium"`
	Rating       float64            `bson:"rating"`
	Type         HousingType        `bson:"type"`
	Bedrooms     int                `bson:"bedrooms"`
	Guests       int                `bson:"guests"`
	Price        int                `bson:"price"`
	Amenities    []string           `bson:"amenities"`
	AuthorID     primitive.ObjectID `bson:"authorId"`
	CommentCount int                `bson:"commentCount"`
	Coordinates  Coordinates        `bson:"coordinates"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

// OfferUpdate carries a partial update; nil fields are left untouched.
type OfferUpdate struct {
	Title       *string
	Description *string
	City        *string
	Preview     *string
	Images      []string
	IsPremium   *bool
	Type        *HousingType
	Bedrooms    *int
	Guests      *int
	Price       *int
	Amenities   []string
	Coordinates *Coordinates
}

// OfferStats are the denormalised comment aggregates stored on an offer.
type OfferStats struct {
	CommentCount int
	Rating       float64
}
