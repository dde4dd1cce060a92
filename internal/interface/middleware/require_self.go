package middleware

import "github.com/oksasatya/six-cities-api/pkg/apperror"

// RequireSelf lets the request through only when the named path parameter is
// the authenticated user's own id. It must follow Authenticate.
func RequireSelf(param string) Interceptor {
	return InterceptorFunc(func(rc *RequestContext, next Next) error {
		if rc.User == nil {
			return apperror.Unauthorized("Authentication required")
		}
		if rc.User.ID.Hex() != rc.Gin.Param(param) {
			return apperror.Forbidden("You can only change your own profile")
		}
		return next()
	})
}
