package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/six-cities-api/pkg/apperror"
	"github.com/oksasatya/six-cities-api/pkg/response"
	"github.com/oksasatya/six-cities-api/pkg/validation"
)

const internalErrorMessage = "Internal Server Error"

// ErrorHandler is the single place where errors collected on the gin context
// are turned into responses. Typed errors keep their status and are logged at
// debug; driver and binding errors are reclassified; anything else is a 500.
func ErrorHandler(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		he := classify(err)

		fields := requestFields(c)
		if he == nil {
			logger.WithFields(fields).WithError(err).Error("unhandled error")
			response.Error(c, http.StatusInternalServerError, internalErrorMessage, nil)
			return
		}
		fields["status"] = he.Status
		logger.WithFields(fields).WithError(err).Debug("request failed")
		response.Error(c, he.Status, he.Message, he.Details)
	}
}

func classify(err error) *apperror.HTTPError {
	if he, ok := apperror.As(err); ok {
		return he
	}
	if mongo.IsDuplicateKeyError(err) {
		return apperror.Conflict("Resource already exists")
	}
	if validation.IsBindingError(err) {
		return apperror.BadRequest("Validation failed").WithDetails(validation.ToDetails(err))
	}
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return apperror.BadRequest("Request body too large")
	}
	return nil
}

// Recovery turns a panic into a logged 500 with the stack attached.
func Recovery(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				fields := requestFields(c)
				fields["panic"] = r
				fields["stack"] = string(debug.Stack())
				logger.WithFields(fields).Error("panic recovered")
				if !c.Writer.Written() {
					response.Error(c, http.StatusInternalServerError, internalErrorMessage, nil)
				} else {
					c.Abort()
				}
			}
		}()
		c.Next()
	}
}

func requestFields(c *gin.Context) logrus.Fields {
	return logrus.Fields{
		"request_id": c.GetString(CtxRequestIDKey),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"ip":         ipFromCtx(c),
		"user_id":    c.GetString(CtxUserIDKey),
	}
}
