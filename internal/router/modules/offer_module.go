package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/six-cities-api/internal/interface/http"
	"github.com/oksasatya/six-cities-api/internal/interface/middleware"
)

// OfferModule wires offer CRUD, premium listing, search and the comment
// sub-resource. Comments hang off /offers/:id so they share the offer checks.
type OfferModule struct {
	Offers   *handlers.OfferHandler
	Comments *handlers.CommentHandler
	Guards   Guards
}

func NewOfferModule(offers *handlers.OfferHandler, comments *handlers.CommentHandler, g Guards) *OfferModule {
	return &OfferModule{Offers: offers, Comments: comments, Guards: g}
}

func (m *OfferModule) Register(rg *gin.RouterGroup) {
	g := m.Guards
	searchLimiter := limiter(60, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/offers", middleware.Chain(m.Offers.Index, g.OptionalAuth()))
	rg.GET("/offers/search", searchLimiter, middleware.Chain(m.Offers.Search, g.OptionalAuth()))
	rg.GET("/offers/premium/:city", middleware.Chain(m.Offers.Premium, g.OptionalAuth()))
	rg.POST("/offers", middleware.Chain(m.Offers.Create,
		g.Auth(),
		middleware.ValidateDTO[handlers.CreateOfferRequest]()))

	rg.GET("/offers/:id", middleware.Chain(m.Offers.Show, steps(g.Offer("id"), one(g.OptionalAuth()))...))
	rg.PUT("/offers/:id", middleware.Chain(m.Offers.Update, steps(g.Offer("id"), one(
		g.Auth(),
		middleware.ValidateDTO[handlers.UpdateOfferRequest](),
	))...))
	rg.DELETE("/offers/:id", middleware.Chain(m.Offers.Delete, steps(g.Offer("id"), one(g.Auth()))...))

	rg.GET("/offers/:id/comments", middleware.Chain(m.Comments.Index, g.Offer("id")...))
	rg.POST("/offers/:id/comments", middleware.Chain(m.Comments.Create, steps(g.Offer("id"), one(
		g.Auth(),
		middleware.ValidateDTO[handlers.CreateCommentRequest](),
	))...))
}
