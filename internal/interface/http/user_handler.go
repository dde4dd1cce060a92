package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/six-cities-api/internal/application"
	"github.com/oksasatya/six-cities-api/internal/domain/entity"
	"github.com/oksasatya/six-cities-api/internal/interface/middleware"
	"github.com/oksasatya/six-cities-api/pkg/apperror"
	"github.com/oksasatya/six-cities-api/pkg/response"
)

type UserHandler struct {
	Users  *application.UserService
	Logger logrus.FieldLogger
}

func NewUserHandler(users *application.UserService, logger logrus.FieldLogger) *UserHandler {
	return &UserHandler{Users: users, Logger: logger}
}

// Register handles POST /users.
func (h *UserHandler) Register(rc *middleware.RequestContext) error {
	req, _ := middleware.BodyAs[CreateUserRequest](rc)
	typ, _ := entity.ParseUserType(req.Type)

	u, err := h.Users.Register(rc.Gin.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Type:     typ,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return serviceError(err)
	}
	h.Logger.WithField("user_id", u.ID.Hex()).Info("user registered")
	response.Created(rc.Gin, NewUserResponse(u))
	return nil
}

// Show handles GET /users/:id.
func (h *UserHandler) Show(rc *middleware.RequestContext) error {
	id, err := paramID(rc, "id")
	if err != nil {
		return err
	}
	u, err := h.Users.FindByID(rc.Gin.Request.Context(), id)
	if err != nil {
		return serviceError(err)
	}
	response.OK(rc.Gin, NewUserResponse(u))
	return nil
}

// UploadAvatar handles POST /users/:id/avatar after UploadFile stored the image.
func (h *UserHandler) UploadAvatar(rc *middleware.RequestContext) error {
	id, err := paramID(rc, "id")
	if err != nil {
		return err
	}
	if rc.File == nil {
		return apperror.BadRequest("avatar file is required")
	}
	u, err := h.Users.UpdateAvatar(rc.Gin.Request.Context(), id, rc.File.Path)
	if err != nil {
		return serviceError(err)
	}
	h.Logger.WithFields(logrus.Fields{"user_id": id.Hex(), "avatar": rc.File.Path}).Info("avatar updated")
	response.OK(rc.Gin, NewUserResponse(u))
	return nil
}
