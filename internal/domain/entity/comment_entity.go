package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a review left on an offer. Comments are never updated.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Text      string             `bson:"text"`
	Rating    int                `bson:"rating"`
	AuthorID  primitive.ObjectID `bson:"authorId"`
	OfferID   primitive.ObjectID `bson:"offerId"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}
