// Package response provides the JSON envelope spoken by the library API and helpers to write it.
//
// Success: {"success":true,"message":"...","data":...}
// Failure: {"success":false,"message":"...","error":{"name":"ValidationError","errors":{"title":{"message":"..."}}}}
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	domainerrors "github.com/boibazaar/boibazaar/internal/errors"
)

// Envelope provides a consistent JSON response structure.
type Envelope struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Data    any        `json:"data"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody names the failure and carries per-field messages.
type ErrorBody struct {
	Name   string                `json:"name"`
	Errors map[string]FieldError `json:"errors,omitempty"`
}

// FieldError is a single field's message.
type FieldError struct {
	Message string `json:"message"`
}

// FromError converts err into a status code and failure envelope.
// Errors that are not *errors.Error become a 500 without leaking details.
func FromError(err error) (int, Envelope) {
	var derr *domainerrors.Error
	if !errors.As(err, &derr) {
		return http.StatusInternalServerError, Envelope{
			Message: "internal server error",
			Error:   &ErrorBody{Name: domainerrors.CodeInternal.Name()},
		}
	}

	body := &ErrorBody{Name: derr.Code.Name()}
	if len(derr.Fields) > 0 {
		body.Errors = make(map[string]FieldError, len(derr.Fields))
		for field, msg := range derr.Fields {
			body.Errors[field] = FieldError{Message: msg}
		}
	}

	return derr.HTTPStatus(), Envelope{Message: derr.Message, Error: body}
}

// JSON writes a JSON envelope with the given status code.
func JSON(w http.ResponseWriter, status int, env Envelope, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(env); err != nil && logger != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

// Success writes a 200 OK envelope around data.
func Success(w http.ResponseWriter, data any, logger *slog.Logger) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data}, logger)
}

// Error writes the failure envelope for err. 5xx errors are logged.
func Error(w http.ResponseWriter, err error, logger *slog.Logger) {
	status, env := FromError(err)
	if status >= 500 && logger != nil {
		logger.Error("Unhandled error", "error", err)
	}
	JSON(w, status, env, logger)
}

// NotFound writes a 404 envelope.
func NotFound(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, domainerrors.NotFound(message), logger)
}

// TooManyRequests writes a 429 envelope.
func TooManyRequests(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, &domainerrors.Error{Code: domainerrors.CodeRateLimited, Message: message}, logger)
}
