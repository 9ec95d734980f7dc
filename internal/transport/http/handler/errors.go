package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/internship-api/internal/domain"
)

// httpError maps domain sentinel errors to status codes. Anything unmapped
// is a 500 with a generic message; the detail goes to the log, not the
// client.
func httpError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrBadRequest), errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	default:
		slog.Error("unhandled error", "err", err)
		writeJSON(w, http.StatusInternalServerError, Envelope{
			Success: false,
			Message: "internal server error",
		})
		return
	}
	writeJSON(w, status, Envelope{Success: false, Message: err.Error()})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: msg})
}
