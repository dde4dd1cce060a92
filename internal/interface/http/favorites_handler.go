package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/six-cities-api/internal/application"
	"github.com/oksasatya/six-cities-api/internal/interface/middleware"
	"github.com/oksasatya/six-cities-api/pkg/response"
)

type FavoritesHandler struct {
	Users  *application.UserService
	Offers *application.OfferService
	Logger logrus.FieldLogger
}

func NewFavoritesHandler(users *application.UserService, offers *application.OfferService, logger logrus.FieldLogger) *FavoritesHandler {
	return &FavoritesHandler{Users: users, Offers: offers, Logger: logger}
}

// Index handles GET /favorites.
func (h *FavoritesHandler) Index(rc *middleware.RequestContext) error {
	u, err := requireUser(rc)
	if err != nil {
		return err
	}
	offers, err := h.Offers.FindFavorites(rc.Gin.Request.Context(), u.ID)
	if err != nil {
		return serviceError(err)
	}
	out := make([]OfferResponse, 0, len(offers))
	for i := range offers {
		out = append(out, NewOfferResponse(&offers[i], true))
	}
	response.OK(rc.Gin, out)
	return nil
}

// Add handles POST /favorites/:offerId.
func (h *FavoritesHandler) Add(rc *middleware.RequestContext) error {
	return h.toggle(rc, true)
}

// Remove handles DELETE /favorites/:offerId.
func (h *FavoritesHandler) Remove(rc *middleware.RequestContext) error {
	return h.toggle(rc, false)
}

func (h *FavoritesHandler) toggle(rc *middleware.RequestContext, add bool) error {
	u, err := requireUser(rc)
	if err != nil {
		return err
	}
	offerID, err := paramID(rc, "offerId")
	if err != nil {
		return err
	}
	ctx := rc.Gin.Request.Context()
	if add {
		err = h.Users.AddToFavorites(ctx, u.ID, offerID)
	} else {
		err = h.Users.RemoveFromFavorites(ctx, u.ID, offerID)
	}
	if err != nil {
		return err
	}
	o, err := h.Offers.FindByID(ctx, offerID)
	if err != nil {
		return serviceError(err)
	}
	response.OK(rc.Gin, NewOfferResponse(o, add))
	return nil
}
