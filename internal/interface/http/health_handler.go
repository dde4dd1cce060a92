package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Pinger checks a dependency; Ready fails when any pinger does.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	Checks map[string]Pinger
	Logger logrus.FieldLogger
}

func NewHealthHandler(checks map[string]Pinger, logger logrus.FieldLogger) *HealthHandler {
	return &HealthHandler{Checks: checks, Logger: logger}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	result := gin.H{}
	for name, ping := range h.Checks {
		if err := ping(ctx); err != nil {
			h.Logger.WithError(err).WithField("check", name).Warn("readiness check failed")
			result[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		result[name] = "up"
	}
	state := "ready"
	if status != http.StatusOK {
		state = "not ready"
	}
	c.JSON(status, gin.H{"status": state, "checks": result})
}
