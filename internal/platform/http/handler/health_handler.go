// Package handler serves the platform endpoints used by probes.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is anything whose connectivity the readiness probe checks.
// *sql.DB and *redis.Client adapters satisfy it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// PingContext calls f.
func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

const readyTimeout = 2 * time.Second

// Health handles /healthz. It only reports that the process is serving.
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Ready returns a /readyz handler that answers 503 while any dependency
// fails to respond. Keys of deps name the dependencies in the body.
func Ready(deps map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		checks := make(gin.H, len(deps))
		status := http.StatusOK
		for name, dep := range deps {
			if err := dep.PingContext(ctx); err != nil {
				slog.Warn("readiness check failed", "dependency", name, "error", err)
				checks[name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "unavailable"
		}
		c.JSON(status, gin.H{"status": overall, "checks": checks})
	}
}
