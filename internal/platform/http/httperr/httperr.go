// Package httperr maps application errors to JSON error responses.
package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"watchlist_backend/internal/api"
	"watchlist_backend/internal/shared/apperror"
)

// MsgInternal is the only message a client sees for a server-side failure.
const MsgInternal = "internal server error"

// Status returns the HTTP status code for err.
func Status(err error) int {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes {"error": "..."} with the status matching err.
// Client errors are logged at Warn; server errors at Error with full detail,
// while the response body only carries MsgInternal.
func Respond(c *gin.Context, err error) {
	status := Status(err)
	msg, ok := apperror.PublicMessage(err)

	if status >= http.StatusInternalServerError || !ok {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"error", err,
		)
		if status < http.StatusInternalServerError {
			msg = http.StatusText(status)
		} else {
			msg = MsgInternal
		}
	} else {
		slog.WarnContext(c.Request.Context(), "request rejected",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"error", msg,
		)
	}

	c.AbortWithStatusJSON(status, api.ErrorResponse{Error: msg})
}
