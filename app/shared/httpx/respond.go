// Package httpx holds the JSON response helpers and middleware shared by the
// module HTTP handlers.
package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/apperrors"
)

// ErrorBody is the wire shape of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the error kind and message.
type ErrorDetail struct {
	Kind    apperrors.Kind `json:"kind"`
	Message string         `json:"message"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps err to a status code by kind. Internal errors are logged
// and their message is not exposed.
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	kind := apperrors.KindOf(err)
	status := StatusFor(kind)
	message := err.Error()

	if kind == apperrors.KindInternal {
		logger.ErrorContext(r.Context(), "Request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		message = http.StatusText(http.StatusInternalServerError)
	}

	WriteJSON(w, status, ErrorBody{Error: ErrorDetail{Kind: kind, Message: message}})
}

// StatusFor returns the HTTP status for an error kind.
func StatusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// ErrMalformedBody is returned when a request body is not valid JSON.
var ErrMalformedBody = apperrors.Validation("malformed request body")

// DecodeJSON decodes the request body into v.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.Wrap(ErrMalformedBody, "malformed request body: %v", err)
	}
	return nil
}

// ErrInvalidID is returned for a path parameter that is not a UUID.
var ErrInvalidID = apperrors.Validation("invalid id")

// UUIDParam parses a chi URL parameter as a UUID.
func UUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.Wrap(ErrInvalidID, "invalid %s %q", name, raw)
	}
	return id, nil
}

// IntQuery reads an integer query parameter, returning def when absent or
// not a number.
func IntQuery(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

