package middleware

import (
	"context"
	"fmt"

	"github.com/oksasatya/six-cities-api/pkg/apperror"
)

// ExistsChecker reports whether a document with the given id is stored.
type ExistsChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// DocumentExists answers 404 when the named path parameter is missing or
// refers to no stored document. entity is used in the message only.
func DocumentExists(checker ExistsChecker, entity, param string) Interceptor {
	return InterceptorFunc(func(rc *RequestContext, next Next) error {
		id := rc.Gin.Param(param)
		if id == "" {
			return apperror.NotFound(fmt.Sprintf("%s id is required", entity))
		}
		ok, err := checker.Exists(rc.Gin.Request.Context(), id)
		if err != nil {
			return fmt.Errorf("check %s exists: %w", entity, err)
		}
		if !ok {
			return apperror.NotFound(fmt.Sprintf("%s with id %s not found", entity, id))
		}
		return next()
	})
}
