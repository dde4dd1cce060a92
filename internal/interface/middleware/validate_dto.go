package middleware

import (
	"github.com/oksasatya/six-cities-api/pkg/apperror"
	"github.com/oksasatya/six-cities-api/pkg/validation"
)

// ValidateDTO binds the JSON body into a new T, validates it and stores it in rc.Body.
func ValidateDTO[T any]() Interceptor {
	return InterceptorFunc(func(rc *RequestContext, next Next) error {
		dto := new(T)
		if err := rc.Gin.ShouldBindJSON(dto); err != nil {
			return apperror.BadRequest("Validation failed").WithDetails(validation.ToDetails(err)).Wrap(err)
		}
		rc.Body = dto
		return next()
	})
}
