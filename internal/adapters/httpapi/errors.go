package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"sortable/internal/application"
)

// statusFor maps application errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, application.ErrInvalidOperation),
		errors.Is(err, application.ErrPageOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrPermission):
		return http.StatusForbidden
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrCapacity):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with a short text body. Unexpected errors are logged
// and hidden from the client; inconsistent rankings keep their operator
// message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError && !errors.Is(err, application.ErrInconsistent) {
		s.log.ErrorContext(r.Context(), "internal error", "path", r.URL.Path, "error", err)
		msg = "Internal server error"
	}
	http.Error(w, msg, status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json;charset=UTF-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
