package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/boibazaar/boibazaar/internal/errors"
	"github.com/boibazaar/boibazaar/internal/http/response"
	"github.com/boibazaar/boibazaar/internal/store"
)

// APIError is the failure body of every operation. It implements huma.StatusError.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status  int
	Success bool                `json:"success" doc:"Always false"`
	Message string              `json:"message" doc:"Human-readable error message"`
	Detail  *response.ErrorBody `json:"error" doc:"Error name and per-field messages"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

func fromDomain(err error) *APIError {
	status, env := response.FromError(err)
	return &APIError{status: status, Message: env.Message, Detail: env.Error}
}

// toAPIError routes a service error through huma.NewError so it is rendered
// as the error envelope.
func toAPIError(err error) error {
	return huma.NewError(domainerrors.CodeOf(err).HTTPStatus(), err.Error(), err)
}

// RegisterErrorHandler configures huma to emit the library's error envelope.
// Call this after creating the huma.API but before registering routes.
func RegisterErrorHandler(logger *slog.Logger) {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		for _, err := range errs {
			var domainErr *domainerrors.Error
			if errors.As(err, &domainErr) {
				if domainErr.HTTPStatus() >= http.StatusInternalServerError && logger != nil {
					logger.Error("request failed", "error", err)
				}
				return fromDomain(domainErr)
			}

			if isNotFoundError(err) {
				return fromDomain(domainerrors.NotFound("Resource not found"))
			}
		}

		// Request validation performed by huma itself.
		if fields := detailFields(errs); len(fields) > 0 {
			return fromDomain(domainerrors.ValidationWithFields("Validation failed", fields))
		}

		code := statusToCode(status)
		if code == domainerrors.CodeInternal && logger != nil {
			logger.Error("request failed", "status", status, "message", message, "errors", errs)
			message = "internal server error"
		}
		return fromDomain(&domainerrors.Error{Code: code, Message: message})
	}
}

// detailFields collects huma's per-location messages, keyed by field name
// ("body.title" becomes "title").
func detailFields(errs []error) domainerrors.FieldErrors {
	fields := domainerrors.FieldErrors{}
	for _, err := range errs {
		var detail *huma.ErrorDetail
		if !errors.As(err, &detail) {
			continue
		}
		field := detail.Location
		if i := strings.LastIndex(field, "."); i >= 0 {
			field = field[i+1:]
		}
		if field == "" {
			field = "body"
		}
		if _, seen := fields[field]; !seen {
			fields[field] = detail.Message
		}
	}
	return fields
}

// isNotFoundError checks if the error is a "not found" error from the store.
func isNotFoundError(err error) bool {
	var storeErr *store.Error
	return errors.As(err, &storeErr) && storeErr.HTTPCode() == http.StatusNotFound
}

// statusToCode maps HTTP status codes to domain error codes.
func statusToCode(status int) domainerrors.Code {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domainerrors.CodeValidation
	case http.StatusNotFound:
		return domainerrors.CodeNotFound
	case http.StatusConflict:
		return domainerrors.CodeDuplicateKey
	case http.StatusTooManyRequests:
		return domainerrors.CodeRateLimited
	case http.StatusServiceUnavailable:
		return domainerrors.CodeUnavailable
	default:
		return domainerrors.CodeInternal
	}
}
