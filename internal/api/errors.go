package api

import (
	"errors"
	"net/http"

	"github.com/LuckyFay12/shareit/internal/database"
	"github.com/LuckyFay12/shareit/internal/service"
)

// statusFromError maps service and store errors onto HTTP status codes.
// Anything unrecognized is a 500.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, database.ErrUserNotFound),
		errors.Is(err, database.ErrItemNotFound),
		errors.Is(err, database.ErrBookingNotFound),
		errors.Is(err, database.ErrRequestNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmailExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *HTTPServer) writeServiceError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("internal error")
		writeError(w, status, "internal server error")
		return
	}
	writeError(w, status, err.Error())
}
