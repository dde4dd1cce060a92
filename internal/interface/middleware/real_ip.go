package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxRealIPKey = "real_ip"

// RealIP sets the real client IP into Gin context (key: "real_ip").
// Priority: CF-Connecting-IP, left-most X-Forwarded-For, then c.ClientIP().
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxRealIPKey, realIP(c))
		c.Next()
	}
}

func realIP(c *gin.Context) string {
	if cf := strings.TrimSpace(c.GetHeader("CF-Connecting-IP")); cf != "" {
		if ip := net.ParseIP(cf); ip != nil {
			return ip.String()
		}
	}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	return c.ClientIP()
}
