package handlers

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/six-cities-api/internal/application"
	"github.com/oksasatya/six-cities-api/internal/domain/entity"
	"github.com/oksasatya/six-cities-api/internal/interface/middleware"
	"github.com/oksasatya/six-cities-api/pkg/apperror"
	"github.com/oksasatya/six-cities-api/pkg/response"
)

type OfferHandler struct {
	Offers *application.OfferService
	Logger logrus.FieldLogger
}

func NewOfferHandler(offers *application.OfferService, logger logrus.FieldLogger) *OfferHandler {
	return &OfferHandler{Offers: offers, Logger: logger}
}

func (h *OfferHandler) Index(rc *middleware.RequestContext) error {
	limit, err := queryLimit(rc)
	if err != nil {
		return err
	}
	offers, err := h.Offers.FindMany(rc.Gin.Request.Context(), limit)
	if err != nil {
		return err
	}
	response.OK(rc.Gin, NewOfferResponses(offers, rc.User))
	return nil
}

// Search handles GET /offers/search?q=.
func (h *OfferHandler) Search(rc *middleware.RequestContext) error {
	q := strings.TrimSpace(rc.Gin.Query("q"))
	if q == "" {
		return apperror.BadRequest("query parameter q is required")
	}
	limit, err := queryLimit(rc)
	if err != nil {
		return err
	}
	offers, err := h.Offers.Search(rc.Gin.Request.Context(), q, limit)
	if err != nil {
		return err
	}
	response.OK(rc.Gin, NewOfferResponses(offers, rc.User))
	return nil
}

func (h *OfferHandler) Create(rc *middleware.RequestContext) error {
	u, err := requireUser(rc)
	if err != nil {
		return err
	}
	req, _ := middleware.BodyAs[CreateOfferRequest](rc)
	o, err := h.Offers.Create(rc.Gin.Request.Context(), u.ID, application.CreateOfferInput{
		Title:       req.Title,
		Description: req.Description,
		City:        req.City,
		Preview:     req.Preview,
		Images:      req.Images,
		IsPremium:   req.IsPremium,
		Type:        entity.HousingType(req.Type),
		Bedrooms:    req.Bedrooms,
		Guests:      req.Guests,
		Price:       req.Price,
		Amenities:   req.Amenities,
		Coordinates: entity.Coordinates{Latitude: req.Coordinates.Latitude, Longitude: req.Coordinates.Longitude},
	})
	if err != nil {
		return err
	}
	h.Logger.WithFields(logrus.Fields{"offer_id": o.ID.Hex(), "author_id": u.ID.Hex()}).Info("offer created")
	response.Created(rc.Gin, NewOfferResponse(o, false))
	return nil
}

func (h *OfferHandler) Show(rc *middleware.RequestContext) error {
	id, err := paramID(rc, "id")
	if err != nil {
		return err
	}
	o, err := h.Offers.FindByID(rc.Gin.Request.Context(), id)
	if err != nil {
		return serviceError(err)
	}
	response.OK(rc.Gin, NewOfferResponse(o, rc.User != nil && rc.User.HasFavorite(o.ID)))
	return nil
}

func (h *OfferHandler) Update(rc *middleware.RequestContext) error {
	u, err := requireUser(rc)
	if err != nil {
		return err
	}
	id, err := paramID(rc, "id")
	if err != nil {
		return err
	}
	req, _ := middleware.BodyAs[UpdateOfferRequest](rc)
	o, err := h.Offers.Update(rc.Gin.Request.Context(), id, u.ID, req.toUpdate())
	if err != nil {
		return serviceError(err)
	}
	response.OK(rc.Gin, NewOfferResponse(o, u.HasFavorite(o.ID)))
	return nil
}

func (h *OfferHandler) Delete(rc *middleware.RequestContext) error {
	u, err := requireUser(rc)
	if err != nil {
		return err
	}
	id, err := paramID(rc, "id")
	if err != nil {
		return err
	}
	if err := h.Offers.Delete(rc.Gin.Request.Context(), id, u.ID); err != nil {
		return serviceError(err)
	}
	h.Logger.WithFields(logrus.Fields{"offer_id": id.Hex(), "author_id": u.ID.Hex()}).Info("offer deleted")
	response.NoContent(rc.Gin)
	return nil
}

// Premium handles GET /offers/premium/:city.
func (h *OfferHandler) Premium(rc *middleware.RequestContext) error {
	city := rc.Gin.Param("city")
	if !isCity(city) {
		return apperror.BadRequest("unknown city " + city).WithDetails(map[string]any{"allowed": entity.Cities})
	}
	offers, err := h.Offers.FindPremiumByCity(rc.Gin.Request.Context(), city, application.DefaultPremiumCount)
	if err != nil {
		return err
	}
	response.OK(rc.Gin, NewOfferResponses(offers, rc.User))
	return nil
}

func isCity(s string) bool {
	for _, c := range entity.Cities {
		if c == s {
			return true
		}
	}
	return false
}
