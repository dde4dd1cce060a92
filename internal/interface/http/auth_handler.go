package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/six-cities-api/internal/application"
	"github.com/oksasatya/six-cities-api/internal/interface/middleware"
	"github.com/oksasatya/six-cities-api/pkg/response"
)

type AuthHandler struct {
	Auth   *application.AuthService
	Logger logrus.FieldLogger
}

func NewAuthHandler(auth *application.AuthService, logger logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{Auth: auth, Logger: logger}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(rc *middleware.RequestContext) error {
	req, _ := middleware.BodyAs[LoginRequest](rc)
	u, err := h.Auth.Login(rc.Gin.Request.Context(), req.Email, req.Password)
	if err != nil {
		return serviceError(err)
	}
	token, err := h.Auth.CreateToken(u)
	if err != nil {
		return err
	}
	response.OK(rc.Gin, LoginResponse{Token: token, User: NewUserResponse(u)})
	return nil
}

// Status handles GET /auth/status and returns the authenticated user.
func (h *AuthHandler) Status(rc *middleware.RequestContext) error {
	u, err := requireUser(rc)
	if err != nil {
		return err
	}
	response.OK(rc.Gin, NewUserResponse(u))
	return nil
}

// Logout handles POST /auth/logout. Tokens are stateless, so the client just drops it.
func (h *AuthHandler) Logout(rc *middleware.RequestContext) error {
	if rc.User != nil {
		h.Logger.WithField("user_id", rc.User.ID.Hex()).Debug("logout")
	}
	response.NoContent(rc.Gin)
	return nil
}
