// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"job_backend/internal/api"
	"job_backend/internal/shared/apperr"
)

// Health handles /healthz liveness checks. It never touches dependencies
// and disables caching.
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
	}
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// defaultReadinessTimeout bounds a single readiness probe.
const defaultReadinessTimeout = 3 * time.Second

// Readiness returns the /health handler, which answers 503 while p is unreachable.
func Readiness(p Pinger, timeout time.Duration) gin.HandlerFunc {
	if timeout <= 0 {
		timeout = defaultReadinessTimeout
	}
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		if err := p.Ping(ctx); err != nil {
			apperr.Respond(c, apperr.Wrap(apperr.KindUnavailable, "Database unavailable", err))
			return
		}
		connected := "connected"
		c.JSON(http.StatusOK, api.HealthResponse{Status: "ok", Database: &connected})
	}
}
