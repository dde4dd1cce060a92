package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/six-cities-api/internal/interface/http"
	"github.com/oksasatya/six-cities-api/internal/interface/middleware"
)

// AvatarTypes are the image types accepted for avatars.
var AvatarTypes = []string{"image/png", "image/jpeg"}

// UserModule wires registration, profile lookup and avatar upload.
// Public: POST /users, GET /users/:id
// Protected: POST /users/:id/avatar (self only)
type UserModule struct {
	Handler  *handlers.UserHandler
	Guards   Guards
	Files    middleware.FileStore
	MaxBytes int64
}

func NewUserModule(h *handlers.UserHandler, g Guards, files middleware.FileStore, maxBytes int64) *UserModule {
	return &UserModule{Handler: h, Guards: g, Files: files, MaxBytes: maxBytes}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/users", middleware.Chain(m.Handler.Register,
		middleware.ValidateDTO[handlers.CreateUserRequest]()))

	rg.GET("/users/:id", middleware.Chain(m.Handler.Show, m.Guards.User("id")...))

	rg.POST("/users/:id/avatar", middleware.Chain(m.Handler.UploadAvatar, steps(
		m.Guards.User("id"),
		one(
			m.Guards.Auth(),
			middleware.RequireSelf("id"),
			middleware.UploadFile(m.Files, "avatar", m.MaxBytes, AvatarTypes...),
		),
	)...))
}
