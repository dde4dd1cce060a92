package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/six-cities-api/internal/container"
	"github.com/oksasatya/six-cities-api/internal/interface/middleware"
)

// Guards bundles what the route chains need to check ids and tokens.
type Guards struct {
	Tokens      middleware.TokenVerifier
	Users       middleware.UserFinder
	UserExists  middleware.ExistsChecker
	OfferExists middleware.ExistsChecker
}

func (g Guards) Auth() middleware.Interceptor {
	return middleware.Authenticate(g.Tokens, g.Users)
}

func (g Guards) OptionalAuth() middleware.Interceptor {
	return middleware.OptionalAuthenticate(g.Tokens, g.Users)
}

// Offer checks the named path parameter is a stored offer, 400 then 404.
func (g Guards) Offer(param string) []middleware.Interceptor {
	return []middleware.Interceptor{
		middleware.ValidateObjectID(param),
		middleware.DocumentExists(g.OfferExists, "Offer", param),
	}
}

func (g Guards) User(param string) []middleware.Interceptor {
	return []middleware.Interceptor{
		middleware.ValidateObjectID(param),
		middleware.DocumentExists(g.UserExists, "User", param),
	}
}

// limiter returns a Redis rate limiter, or a pass-through when limiting is off.
func limiter(max int, window time.Duration, keyFn middleware.KeyFunc, allow middleware.AllowFunc) gin.HandlerFunc {
	rdb := container.GetRedis()
	if !container.GetConfig().RateLimitEnabled {
		rdb = nil
	}
	return middleware.RateLimit(rdb, max, window, keyFn, allow)
}

func steps(groups ...[]middleware.Interceptor) []middleware.Interceptor {
	var out []middleware.Interceptor
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func one(i ...middleware.Interceptor) []middleware.Interceptor { return i }
