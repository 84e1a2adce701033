package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/repairshop/technotes/internal/api/metrics"
	"github.com/repairshop/technotes/internal/core/domain"
)

// messageResponse is the canonical envelope for all API errors. Successful
// mutations reuse the same shape for their confirmation messages.
type messageResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their status codes and canonical
//     messages (the exact wording clients match on).
//   - Logs unexpected errors internally without leaking details.
//   - Renders a consistent JSON envelope: {"message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, messageResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic codes and wording. Not-found
	// conditions are reported as 400, not 404: the original API shipped
	// that way and the wording is part of the contract.
	switch {
	case errors.Is(err, domain.ErrAllFieldsRequired):
		return http.StatusBadRequest, "All fields are required"
	case errors.Is(err, domain.ErrNoUsers):
		return http.StatusBadRequest, "No users found"
	case errors.Is(err, domain.ErrNoNotes):
		return http.StatusBadRequest, "No notes found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusBadRequest, "User is not found"
	case errors.Is(err, domain.ErrNoteNotFound):
		return http.StatusBadRequest, "Note is not found"
	case errors.Is(err, domain.ErrDuplicateUsername):
		metrics.DuplicateRejectionsTotal.WithLabelValues(domain.AuditEntityUser).Inc()
		return http.StatusConflict, "Duplicate username"
	case errors.Is(err, domain.ErrDuplicateNoteTitle):
		metrics.DuplicateRejectionsTotal.WithLabelValues(domain.AuditEntityNote).Inc()
		return http.StatusConflict, "Duplicate note title"
	case errors.Is(err, domain.ErrNoteOwnerMissing):
		// Conflict, not not-found: preserved from the original contract.
		return http.StatusConflict, "user is not found"
	case errors.Is(err, domain.ErrUserHasNotes):
		metrics.DeleteConflictsTotal.Inc()
		return http.StatusConflict, "User has assigned notes"
	case errors.Is(err, domain.ErrInvalidUserData):
		return http.StatusBadRequest, "Invalid user data received"
	case errors.Is(err, domain.ErrInvalidNoteData):
		return http.StatusBadRequest, "Invalid note data received"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
