// Package store defines the persistence interface and errors of the library service.
package store

import (
	"fmt"
	"net/http"
)

// Error is a storage error with an HTTP status code.
type Error struct {
	Code    int    // HTTP status code
	Message string // User-facing message
	Err     error  // Underlying error (optional)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinels by status code and message so WithCause copies still match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// HTTPCode returns the HTTP status code associated with this error.
func (e *Error) HTTPCode() int { return e.Code }

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// Sentinel errors.
var (
	ErrNotFound = &Error{
		Code:    http.StatusNotFound,
		Message: "resource not found",
	}

	ErrAlreadyExists = &Error{
		Code:    http.StatusConflict,
		Message: "resource already exists",
	}

	// ErrInsufficientCopies is returned when a borrow asks for more copies than are on the shelf.
	ErrInsufficientCopies = &Error{
		Code:    http.StatusBadRequest,
		Message: "insufficient copies",
	}
)

// InsufficientCopiesError reports how many copies were left when a borrow failed.
type InsufficientCopiesError struct {
	Available int
}

func (e *InsufficientCopiesError) Error() string {
	return fmt.Sprintf("only %d copies available", e.Available)
}

// Is matches ErrInsufficientCopies.
func (e *InsufficientCopiesError) Is(target error) bool {
	return target == ErrInsufficientCopies
}
