package handlers

import (
	"errors"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/six-cities-api/internal/application"
	"github.com/oksasatya/six-cities-api/internal/domain/entity"
	"github.com/oksasatya/six-cities-api/internal/interface/middleware"
	"github.com/oksasatya/six-cities-api/pkg/apperror"
)

// serviceError maps service sentinels onto client-facing errors; anything else passes through.
func serviceError(err error) error {
	switch {
	case errors.Is(err, application.ErrEmailTaken):
		return apperror.Conflict("User with this email already exists").Wrap(err)
	case errors.Is(err, application.ErrInvalidCredentials):
		return apperror.Unauthorized("Invalid email or password").Wrap(err)
	case errors.Is(err, application.ErrUserNotFound):
		return apperror.NotFound("User not found").Wrap(err)
	case errors.Is(err, application.ErrOfferNotFound):
		return apperror.NotFound("Offer not found").Wrap(err)
	case errors.Is(err, application.ErrNotOfferAuthor):
		return apperror.Forbidden("Only the author can modify this offer").Wrap(err)
	}
	return err
}

// paramID reads an ObjectID path parameter already checked by ValidateObjectID.
func paramID(rc *middleware.RequestContext, name string) (primitive.ObjectID, error) {
	v := rc.Gin.Param(name)
	id, err := primitive.ObjectIDFromHex(v)
	if err != nil {
		return primitive.NilObjectID, apperror.BadRequest(v + " is invalid ObjectID")
	}
	return id, nil
}

// queryLimit parses ?limit=; absent means 0 so the service default applies.
func queryLimit(rc *middleware.RequestContext) (int, error) {
	v := rc.Gin.Query("limit")
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, apperror.BadRequest("limit must be a positive integer")
	}
	return n, nil
}

// requireUser guards handlers that must sit behind Authenticate.
func requireUser(rc *middleware.RequestContext) (*entity.User, error) {
	if rc.User == nil {
		return nil, apperror.Unauthorized("Authentication required")
	}
	return rc.User, nil
}
