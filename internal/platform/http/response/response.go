// Package response writes the JSON error bodies shared by all handlers.
package response

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"news_backend/internal/shared/apperr"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is returned by endpoints that have nothing else to report.
type MessageResponse struct {
	Message string `json:"message"`
}

// Error maps err to its status and writes it. Server-side failures are logged
// with the route; their details never reach the client.
func Error(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"error", err,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", c.GetString(RequestIDKey),
		)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: apperr.PublicMessage(err)})
}

// BadRequest answers 400 for a body or query that failed to bind.
func BadRequest(c *gin.Context, err error) {
	slog.Warn("request validation failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
}
