// Package web holds the JSON response helpers shared by all module handlers.
package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
)

// Respond writes body as JSON with the given status.
func Respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Decode reads a JSON request body into dst. A malformed body is ErrInvalid.
func Decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Invalid("malformed request body: %s", err.Error())
	}
	return nil
}

// StatusOf maps an error to its HTTP status code.
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.ErrNotFound:
		return http.StatusNotFound
	case apperr.ErrInvalid:
		return http.StatusBadRequest
	case apperr.ErrConflict:
		return http.StatusConflict
	case apperr.ErrInvalidTransition:
		return http.StatusUnprocessableEntity
	case apperr.ErrUnavailable:
		return http.StatusServiceUnavailable
	case apperr.ErrUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err using the taxonomy in apperr. Unexpected errors are logged
// and replaced with a generic message.
func Error(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status := StatusOf(err)
	msg := err.Error()
	switch {
	case status == http.StatusInternalServerError:
		log.ErrorContext(r.Context(), "unexpected error",
			"action", "http_error",
			"request_id", middleware.GetReqID(r.Context()),
			"path", r.URL.Path,
			"error", err)
		msg = "internal error"
	case status == http.StatusServiceUnavailable && !errors.Is(err, apperr.ErrUnavailable):
		msg = "request deadline exceeded, retry later"
	}
	Respond(w, status, map[string]string{"error": msg})
}
