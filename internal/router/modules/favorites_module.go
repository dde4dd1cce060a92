package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/six-cities-api/internal/interface/http"
	"github.com/oksasatya/six-cities-api/internal/interface/middleware"
)

type FavoritesModule struct {
	Handler *handlers.FavoritesHandler
	Guards  Guards
}

func NewFavoritesModule(h *handlers.FavoritesHandler, g Guards) *FavoritesModule {
	return &FavoritesModule{Handler: h, Guards: g}
}

func (m *FavoritesModule) Register(rg *gin.RouterGroup) {
	g := m.Guards
	rg.GET("/favorites", middleware.Chain(m.Handler.Index, g.Auth()))
	rg.POST("/favorites/:offerId", middleware.Chain(m.Handler.Add, steps(g.Offer("offerId"), one(g.Auth()))...))
	rg.DELETE("/favorites/:offerId", middleware.Chain(m.Handler.Remove, steps(g.Offer("offerId"), one(g.Auth()))...))
}
