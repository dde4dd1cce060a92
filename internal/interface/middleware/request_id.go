package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CtxRequestIDKey = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// RequestIDMiddleware injects a request_id into the Gin context and echoes it
// back. A well-formed incoming X-Request-ID is kept.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		c.Set(CtxRequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
