// Package validation provides declarative struct validation using the validator/v10 library.
//
// Field names in errors come from the `form` tag, then the `json` tag.
// A field may override the default wording per rule with a `msg` tag:
//
//	Title string `form:"title" validate:"required,min=3" msg:"required=Title is required;min=Title must be at least 3 characters"`
//
// Messages may reference {param}; for cross-field rules (ltefield, ...)
// it resolves to the referenced field's value.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/boibazaar/boibazaar/internal/errors"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v   *validator.Validate
	now func() time.Time
	loc *time.Location
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock overrides the clock used by date rules.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// WithLocation sets the time zone whose calendar day is "today" for date
// rules. The default is the process's local zone.
func WithLocation(loc *time.Location) Option {
	return func(v *Validator) {
		if loc != nil {
			v.loc = loc
		}
	}
}

// New creates a validator with the catalog rules registered.
func New(opts ...Option) *Validator {
	val := &Validator{v: validator.New(validator.WithRequiredStructEnabled()), now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(val)
	}

	val.v.RegisterTagNameFunc(fieldName)
	registerRules(val)

	return val
}

// today is the current time in the validator's location.
func (v *Validator) today() time.Time {
	return v.now().In(v.loc)
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// Validate validates a struct and returns a *errors.Error with field messages.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(s, err)
	}
	return nil
}

func (v *Validator) formatError(s any, err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	root := reflect.Indirect(reflect.ValueOf(s))

	fields := make(domainerrors.FieldErrors, len(validationErrs))
	for _, e := range validationErrs {
		if _, seen := fields[e.Field()]; seen {
			continue
		}
		fields[e.Field()] = v.message(root, e)
	}

	return domainerrors.ValidationWithFields("Validation failed", fields)
}

func (v *Validator) message(root reflect.Value, e validator.FieldError) string {
	param := e.Param()
	if strings.HasSuffix(e.Tag(), "field") && root.Kind() == reflect.Struct {
		if ref := root.FieldByName(param); ref.IsValid() {
			param = fmt.Sprint(reflect.Indirect(ref).Interface())
		}
	}

	if root.Kind() == reflect.Struct {
		if sf, ok := root.Type().FieldByName(e.StructField()); ok {
			if custom, ok := lookupMessage(sf.Tag.Get("msg"), e.Tag()); ok {
				return strings.ReplaceAll(custom, "{param}", param)
			}
		}
	}

	return e.Field() + " " + friendlyMessage(e.Tag(), param)
}

// lookupMessage finds the message for rule in a "rule=message;rule=message" tag.
func lookupMessage(tag, rule string) (string, bool) {
	for _, entry := range strings.Split(tag, ";") {
		key, msg, ok := strings.Cut(entry, "=")
		if ok && strings.TrimSpace(key) == rule {
			return strings.TrimSpace(msg), true
		}
	}
	return "", false
}

//nolint:gocyclo // Switch statement covering validation tags is intentionally exhaustive.
func friendlyMessage(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + param
	case "max":
		return "must not exceed " + param
	case "oneof":
		return "must be one of: " + param
	case "gte":
		return "must be greater than or equal to " + param
	case "lte", "ltefield":
		return "must be less than or equal to " + param
	case "gt":
		return "must be greater than " + param
	case "lt":
		return "must be less than " + param
	case TagISBN:
		return "must be a valid ISBN (10 or 13 digits)"
	case TagISBNLoose:
		return "must contain only digits and dashes"
	case TagPersonName:
		return "should only contain letters and spaces"
	case TagNotPast:
		return "cannot be in the past"
	case TagGenre:
		return "must be a known genre"
	default:
		return "is invalid"
	}
}
