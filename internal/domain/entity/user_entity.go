package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserType distinguishes hosts with a pro account from regular users.
type UserType string

const (
	UserTypePro    UserType = "pro"
	UserTypeNormal UserType = "normal"
)

// ParseUserType accepts the canonical types plus the legacy "common" alias.
func ParseUserType(s string) (UserType, bool) {
	switch s {
	case string(UserTypePro):
		return UserTypePro, true
	case string(UserTypeNormal), "common":
		return UserTypeNormal, true
	}
	return "", false
}

// User is the aggregate root for the user domain.
// PasswordHash holds a bcrypt hash, FavoriteOffers behaves as a set.
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty"`
	Name           string               `bson:"name"`
	Email          string               `bson:"email"`
	Avatar         string               `bson:"avatar,omitempty"`
	PasswordHash   string               `bson:"passwordHash"`
	Type           UserType             `bson:"type"`
	FavoriteOffers []primitive.ObjectID `bson:"favoriteOffers"`
	CreatedAt      time.Time            `bson:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt"`
}

// HasFavorite reports whether offerID is in the user's favorites.
func (u *User) HasFavorite(offerID primitive.ObjectID) bool {
	for _, id := range u.FavoriteOffers {
		if id == offerID {
			return true
		}
	}
	return false
}
