package validation

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/boibazaar/boibazaar/internal/domain"
)

// Custom rule tags.
const (
	TagISBN       = "isbn10or13"
	TagISBNLoose  = "isbn_loose"
	TagPersonName = "person_name"
	TagNotPast    = "not_past"
	TagGenre      = "genre"
)

var (
	isbnPattern       = regexp.MustCompile(`^(?:\d{9}[\dXx]|\d{13})$`)
	isbnLoosePattern  = regexp.MustCompile(`^[\d-]+$`)
	personNamePattern = regexp.MustCompile(`^[A-Za-z\s]+$`)
)

func registerRules(val *Validator) {
	mustRegister(val.v, TagISBN, func(fl validator.FieldLevel) bool {
		return isbnPattern.MatchString(fl.Field().String())
	})
	mustRegister(val.v, TagISBNLoose, func(fl validator.FieldLevel) bool {
		return isbnLoosePattern.MatchString(fl.Field().String())
	})
	mustRegister(val.v, TagPersonName, func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	})
	mustRegister(val.v, TagGenre, func(fl validator.FieldLevel) bool {
		return domain.Genre(fl.Field().String()).IsValid()
	})
	mustRegister(val.v, TagNotPast, func(fl validator.FieldLevel) bool {
		due, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return !domain.BeforeDay(due, val.today())
	})
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("register validation " + tag + ": " + err.Error())
	}
}
