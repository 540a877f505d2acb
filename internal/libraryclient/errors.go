package libraryclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	domainerrors "github.com/boibazaar/boibazaar/internal/errors"
)

// OpError wraps any failure of one API call with the call's context.
type OpError struct {
	Op     string // "listBooks", "createBook", ...
	Method string
	Path   string
	Err    error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("library api %s [%s %s]: %v", e.Op, e.Method, e.Path, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// APIError is a rejected call: the API answered with a status of 400 or more.
type APIError struct {
	Status  int
	Name    string // e.g. "ValidationError", "DuplicateKeyError"
	Message string
	Fields  domainerrors.FieldErrors
}

func (e *APIError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Name, e.Message)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Code classifies the rejection. The error name decides; without a name only
// a few statuses are recognised.
func (e *APIError) Code() domainerrors.Code {
	if e.Name != "" {
		return domainerrors.CodeFromName(e.Name)
	}
	switch e.Status {
	case http.StatusNotFound:
		return domainerrors.CodeNotFound
	case http.StatusTooManyRequests:
		return domainerrors.CodeRateLimited
	case http.StatusServiceUnavailable:
		return domainerrors.CodeUnavailable
	default:
		return domainerrors.CodeInternal
	}
}

// Is lets errors.Is match APIError against the domain sentinels.
func (e *APIError) Is(target error) bool {
	var t *domainerrors.Error
	if errors.As(target, &t) {
		return e.Code() == t.Code
	}
	return false
}

// Messages returns the per-field messages ordered by field name.
func (e *APIError) Messages() []string {
	return e.Fields.Messages()
}

// JoinedMessages joins the field messages with ", ", or returns fallback when there are none.
func (e *APIError) JoinedMessages(fallback string) string {
	if msgs := e.Messages(); len(msgs) > 0 {
		return strings.Join(msgs, ", ")
	}
	return fallback
}

// AsAPIError extracts the *APIError from err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// IsValidation reports whether err is a ValidationError rejection.
func IsValidation(err error) bool {
	return errors.Is(err, domainerrors.ErrValidation)
}

// IsDuplicateKey reports whether err is a DuplicateKeyError rejection.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, domainerrors.ErrDuplicateKey)
}

// IsNotFound reports whether err is a not found rejection.
func IsNotFound(err error) bool {
	return errors.Is(err, domainerrors.ErrNotFound)
}

type fieldMessages map[string]struct {
	Message string `json:"message"`
}

type errorDetail struct {
	Name    string        `json:"name"`
	Message string        `json:"message"`
	Errors  fieldMessages `json:"errors"`
}

// parseAPIError decodes the error shapes the API is known to send:
//
//	{"name":"ValidationError","errors":{"title":{"message":"..."}}}
//	{"message":"...","error":{"name":"...","errors":{...}}}
//	{"message":"...","error":"..."}
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var top struct {
		errorDetail
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &top); err != nil {
		apiErr.Message = http.StatusText(status)
		return apiErr
	}

	apiErr.Name = top.Name
	apiErr.Message = top.Message
	fields := top.Errors

	if raw := strings.TrimSpace(string(top.Error)); raw != "" && raw != "null" {
		var nested errorDetail
		var text string
		switch {
		case json.Unmarshal(top.Error, &nested) == nil:
			if apiErr.Name == "" {
				apiErr.Name = nested.Name
			}
			if apiErr.Message == "" {
				apiErr.Message = nested.Message
			}
			if len(fields) == 0 {
				fields = nested.Errors
			}
		case json.Unmarshal(top.Error, &text) == nil:
			if apiErr.Message == "" {
				apiErr.Message = text
			}
		}
	}

	if len(fields) > 0 {
		apiErr.Fields = make(domainerrors.FieldErrors, len(fields))
		for name, f := range fields {
			apiErr.Fields[name] = f.Message
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}

	return apiErr
}
