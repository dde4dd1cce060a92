package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrOfferNotFound      = errors.New("offer not found")
	ErrNotOfferAuthor     = errors.New("only the author can modify an offer")
)
