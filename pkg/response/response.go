package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the envelope for every failed request.
type ErrorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// OK writes data as the JSON body with status 200.
func OK[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, data)
}

func Created[T any](c *gin.Context, data T) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error writes the error envelope and aborts the remaining handlers.
func Error(c *gin.Context, status int, message string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, ErrorBody{Error: message, Details: details})
}
