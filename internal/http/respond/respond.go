// Package respond owns the JSON wire format of the API: success bodies,
// message envelopes, and the translation from domain errors to status codes.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ptorrado/predio/internal/apperr"
)

// JSON writes v as the response body with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type messageBody struct {
	Message string `json:"message"`
}

// Message writes a {"message": ...} envelope, used by delete confirmations.
func Message(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, messageBody{Message: msg})
}

// Error maps a service error onto its status code. Validation and conflict
// errors are both client mistakes and both map to 400; missing entities map
// to 404. Anything else is an internal failure whose detail stays in the
// log, not the response.
func Error(w http.ResponseWriter, err error) {
	var (
		notFound   *apperr.NotFoundError
		conflict   *apperr.ConflictError
		validation *apperr.ValidationError
	)

	switch {
	case errors.As(err, &notFound):
		Message(w, http.StatusNotFound, err.Error())
	case errors.As(err, &conflict), errors.As(err, &validation):
		Message(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "error", err)
		Message(w, http.StatusInternalServerError, "internal error")
	}
}
