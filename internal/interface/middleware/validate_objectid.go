package middleware

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/six-cities-api/pkg/apperror"
)

// ValidateObjectID rejects a malformed id in the named path parameter with 400.
func ValidateObjectID(param string) Interceptor {
	return InterceptorFunc(func(rc *RequestContext, next Next) error {
		v := rc.Gin.Param(param)
		if !primitive.IsValidObjectID(v) {
			return apperror.BadRequest(v + " is invalid ObjectID")
		}
		return next()
	})
}
