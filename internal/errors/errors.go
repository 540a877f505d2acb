// Package errors provides coded domain errors shared by the library API and the web front end.
//
// Usage:
//
//	// In services - return typed errors
//	if copies < quantity {
//	    return errors.InsufficientCopiesf("cannot borrow more than %d copies", copies)
//	}
//
//	// In handlers - check with errors.Is
//	if errors.Is(err, errors.ErrDuplicateKey) {
//	    ...
//	}
//
// Every code carries the HTTP status it maps to and the error name the
// remote contract reports (ValidationError, DuplicateKeyError, ...).
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
	New    = errors.New
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeNotFound           Code = "NOT_FOUND"
	CodeValidation         Code = "VALIDATION"
	CodeDuplicateKey       Code = "DUPLICATE_KEY"
	CodeInsufficientCopies Code = "INSUFFICIENT_COPIES"
	CodeRateLimited        Code = "RATE_LIMITED"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeInternal           Code = "INTERNAL"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation, CodeInsufficientCopies:
		return http.StatusBadRequest
	case CodeDuplicateKey:
		return http.StatusConflict
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Name returns the error name reported on the wire.
// Insufficient copies is reported as a validation failure on the quantity field.
func (c Code) Name() string {
	switch c {
	case CodeNotFound:
		return "NotFoundError"
	case CodeValidation, CodeInsufficientCopies:
		return "ValidationError"
	case CodeDuplicateKey:
		return "DuplicateKeyError"
	case CodeRateLimited:
		return "RateLimitError"
	case CodeUnavailable:
		return "ServiceUnavailableError"
	default:
		return "InternalError"
	}
}

// CodeFromName maps a wire error name back to a Code.
func CodeFromName(name string) Code {
	switch name {
	case "NotFoundError", "CastError":
		return CodeNotFound
	case "ValidationError":
		return CodeValidation
	case "DuplicateKeyError":
		return CodeDuplicateKey
	case "RateLimitError":
		return CodeRateLimited
	case "ServiceUnavailableError":
		return CodeUnavailable
	default:
		return CodeInternal
	}
}

// FieldErrors maps a field name to a human-readable message.
type FieldErrors map[string]string

// Fields returns the field names in a stable order.
func (f FieldErrors) Fields() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Messages returns the messages ordered by field name.
func (f FieldErrors) Messages() []string {
	msgs := make([]string, 0, len(f))
	for _, name := range f.Fields() {
		msgs = append(msgs, f[name])
	}
	return msgs
}

// Error is a domain error with a code, message, and optional field details.
type Error struct {
	Code    Code        `json:"code"`
	Message string      `json:"message"`
	Fields  FieldErrors `json:"fields,omitempty"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithField returns a copy of the error with one more field message.
func (e *Error) WithField(field, message string) *Error {
	fields := make(FieldErrors, len(e.Fields)+1)
	for k, v := range e.Fields {
		fields[k] = v
	}
	fields[field] = message
	return &Error{Code: e.Code, Message: e.Message, Fields: fields, cause: e.cause}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Fields: e.Fields, cause: err}
}

// Sentinel errors for use with errors.Is().
var (
	ErrNotFound           = &Error{Code: CodeNotFound, Message: "not found"}
	ErrValidation         = &Error{Code: CodeValidation, Message: "validation error"}
	ErrDuplicateKey       = &Error{Code: CodeDuplicateKey, Message: "duplicate key"}
	ErrInsufficientCopies = &Error{Code: CodeInsufficientCopies, Message: "insufficient copies"}
	ErrRateLimited        = &Error{Code: CodeRateLimited, Message: "rate limited"}
	ErrUnavailable        = &Error{Code: CodeUnavailable, Message: "service unavailable"}
	ErrInternal           = &Error{Code: CodeInternal, Message: "internal error"}
)

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// ValidationWithFields creates a validation error carrying per-field messages.
func ValidationWithFields(msg string, fields FieldErrors) *Error {
	return &Error{Code: CodeValidation, Message: msg, Fields: fields}
}

// DuplicateKey creates a duplicate key error.
func DuplicateKey(msg string) *Error {
	return &Error{Code: CodeDuplicateKey, Message: msg}
}

// InsufficientCopiesf creates an insufficient copies error with formatted message.
func InsufficientCopiesf(format string, args ...any) *Error {
	return &Error{Code: CodeInsufficientCopies, Message: fmt.Sprintf(format, args...)}
}

// Unavailable creates a service unavailable error.
func Unavailable(msg string) *Error {
	return &Error{Code: CodeUnavailable, Message: msg}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
