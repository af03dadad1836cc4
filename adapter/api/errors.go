package api

import (
	"errors"
	"net/http"

	"github.com/felixgeelhaar/todolist/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/todolist/internal/shared/domain"
)

// errBadRequest marks malformed input detected by the handlers themselves.
var errBadRequest = errors.New("bad request")

// statusFor maps error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, errBadRequest),
		errors.Is(err, value_objects.ErrInvalidPriority),
		errors.Is(err, value_objects.ErrInvalidDeadline):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// messageFor hides internal errors from clients.
func messageFor(status int, err error) string {
	if status == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}

func (s *Server) apiError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed", "error", err)
	}
	writeError(w, status, messageFor(status, err))
}
