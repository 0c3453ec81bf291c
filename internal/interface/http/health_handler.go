package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	Checks  map[string]HealthCheck
	Timeout time.Duration
	Logger  logrus.FieldLogger
}

func NewHealthHandler(checks map[string]HealthCheck, logger logrus.FieldLogger) *HealthHandler {
	return &HealthHandler{Checks: checks, Timeout: 2 * time.Second, Logger: logger}
}

// Health answers {"status":"healthy"} when every check passes, 503 otherwise.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.Timeout)
	defer cancel()

	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	failed := map[string]string{}
	for _, name := range names {
		if err := h.Checks[name](ctx); err != nil {
			failed[name] = "unavailable"
			if h.Logger != nil {
				h.Logger.WithError(err).WithField("dependency", name).Warn("health check failed")
			}
		}
	}
	if len(failed) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "checks": failed})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
