package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/six-cities-api/internal/interface/http"
	"github.com/oksasatya/six-cities-api/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	Guards  Guards
}

func NewAuthModule(h *handlers.AuthHandler, g Guards) *AuthModule {
	return &AuthModule{Handler: h, Guards: g}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public with rate limiting
	loginLimiter := limiter(10, time.Minute, middleware.KeyByIP(), nil) // 10 req/min per IP

	rg.POST("/auth/login", loginLimiter, middleware.Chain(m.Handler.Login,
		middleware.ValidateDTO[handlers.LoginRequest]()))

	// Protected
	rg.GET("/auth/status", middleware.Chain(m.Handler.Status, m.Guards.Auth()))
	rg.POST("/auth/logout", middleware.Chain(m.Handler.Logout, m.Guards.Auth()))
}
