package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/six-cities-api/internal/domain/entity"
)

// UploadedFile describes a file accepted by UploadFile.
type UploadedFile struct {
	Path     string // public path or URL returned by the store
	Filename string
	MIME     string
	Size     int64
}

// RequestContext is the typed per-request state passed along a chain.
// It is created for every request by Chain and never shared.
type RequestContext struct {
	Gin  *gin.Context
	User *entity.User
	File *UploadedFile
	Body any
}

// Next continues the chain with the following interceptor or the handler.
type Next func() error

// Interceptor either calls next or returns an error that stops the chain.
type Interceptor interface {
	Handle(rc *RequestContext, next Next) error
}

// InterceptorFunc adapts a function to Interceptor.
type InterceptorFunc func(rc *RequestContext, next Next) error

func (f InterceptorFunc) Handle(rc *RequestContext, next Next) error { return f(rc, next) }

// Handler is the terminal step of a chain.
type Handler func(rc *RequestContext) error

// Chain runs the interceptors in order and then the handler. The first error
// aborts the request and is left for ErrorHandler to translate.
func Chain(h Handler, interceptors ...Interceptor) gin.HandlerFunc {
	return func(c *gin.Context) {
		rc := &RequestContext{Gin: c}
		if err := run(rc, h, interceptors); err != nil {
			_ = c.Error(err)
			c.Abort()
		}
	}
}

func run(rc *RequestContext, h Handler, interceptors []Interceptor) error {
	var step func(i int) error
	step = func(i int) error {
		if i == len(interceptors) {
			return h(rc)
		}
		return interceptors[i].Handle(rc, func() error { return step(i + 1) })
	}
	return step(0)
}

// BodyAs returns the DTO stored by ValidateDTO.
func BodyAs[T any](rc *RequestContext) (*T, bool) {
	b, ok := rc.Body.(*T)
	return b, ok
}
