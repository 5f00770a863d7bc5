package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	errorspkg "climaterisk.app/pkg/errors"
)

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleError maps application errors to HTTP status codes. Messages of
// server-side failures are not exposed to clients.
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	var appErr *errorspkg.AppError
	if !errors.As(err, &appErr) {
		slog.Error("Unhandled error", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	var statusCode int
	var message string

	switch appErr.Kind {
	case errorspkg.Validation:
		statusCode = http.StatusBadRequest
		message = appErr.Message
	case errorspkg.NotFound:
		statusCode = http.StatusNotFound
		message = appErr.Message
	case errorspkg.AlreadyExists:
		statusCode = http.StatusConflict
		message = appErr.Message
	case errorspkg.ExternalAPI:
		statusCode = http.StatusServiceUnavailable
		message = "External service unavailable"
	default:
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, ErrorResponse{Error: message})
}
