package validation_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/boibazaar/boibazaar/internal/errors"
	"github.com/boibazaar/boibazaar/internal/validation"
)

type newBook struct {
	Title  string `json:"title" validate:"required,min=3,max=100" msg:"required=Title is required;min=Title must be at least 3 characters"`
	Author string `json:"author" validate:"required,person_name"`
	ISBN   string `form:"isbn" json:"isbn_code" validate:"required,isbn10or13"`
	Genre  string `json:"genre" validate:"required,genre"`
}

type borrowRequest struct {
	Quantity *int       `form:"quantity" validate:"required,min=1,ltefield=Copies" msg:"ltefield=Cannot borrow more than {param} copies"`
	DueDate  *time.Time `form:"dueDate" validate:"required,not_past"`
	Copies   int        `form:"-"`
}

func fieldsOf(t *testing.T, err error) domainerrors.FieldErrors {
	t.Helper()
	var derr *domainerrors.Error
	require.True(t, errors.As(err, &derr), "expected *errors.Error, got %T", err)
	assert.Equal(t, http.StatusBadRequest, derr.HTTPStatus())
	return derr.Fields
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	err := v.Validate(newBook{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441172719", Genre: "FANTASY"})
	assert.NoError(t, err)
}

func TestValidator_CustomMessages(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name  string
		req   newBook
		field string
		want  string
	}{
		{
			name:  "required uses msg tag",
			req:   newBook{Author: "Frank Herbert", ISBN: "0441172717", Genre: "FANTASY"},
			field: "title",
			want:  "Title is required",
		},
		{
			name:  "min uses msg tag",
			req:   newBook{Title: "Du", Author: "Frank Herbert", ISBN: "0441172717", Genre: "FANTASY"},
			field: "title",
			want:  "Title must be at least 3 characters",
		},
		{
			name:  "max falls back to default wording",
			req:   newBook{Title: string(make([]byte, 101)), Author: "Frank Herbert", ISBN: "0441172717", Genre: "FANTASY"},
			field: "title",
			want:  "title must not exceed 100",
		},
		{
			name:  "person name rejects digits",
			req:   newBook{Title: "Dune", Author: "Frank 2", ISBN: "0441172717", Genre: "FANTASY"},
			field: "author",
			want:  "author should only contain letters and spaces",
		},
		{
			name:  "form tag wins over json tag",
			req:   newBook{Title: "Dune", Author: "Frank Herbert", ISBN: "12345", Genre: "FANTASY"},
			field: "isbn",
			want:  "isbn must be a valid ISBN (10 or 13 digits)",
		},
		{
			name:  "unknown genre",
			req:   newBook{Title: "Dune", Author: "Frank Herbert", ISBN: "044117271X", Genre: "POETRY"},
			field: "genre",
			want:  "genre must be a known genre",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := fieldsOf(t, v.Validate(tt.req))
			assert.Equal(t, tt.want, fields[tt.field])
		})
	}
}

func TestValidator_ISBNFormats(t *testing.T) {
	v := validation.New()

	valid := []string{"0441172717", "044117271X", "044117271x", "9780441172719"}
	invalid := []string{"", "044117271", "04411727171", "978044117271X", "978-0441172719", "abcdefghij"}

	for _, isbn := range valid {
		err := v.Validate(newBook{Title: "Dune", Author: "Frank Herbert", ISBN: isbn, Genre: "FANTASY"})
		assert.NoError(t, err, isbn)
	}
	for _, isbn := range invalid {
		err := v.Validate(newBook{Title: "Dune", Author: "Frank Herbert", ISBN: isbn, Genre: "FANTASY"})
		assert.Error(t, err, isbn)
	}
}

func TestValidator_CrossFieldAndDates(t *testing.T) {
	now := time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC)
	v := validation.New(validation.WithClock(func() time.Time { return now }), validation.WithLocation(time.UTC))

	qty := func(n int) *int { return &n }
	day := func(d int) *time.Time {
		ts := time.Date(2026, 5, d, 0, 0, 0, 0, time.UTC)
		return &ts
	}

	t.Run("valid with due date today", func(t *testing.T) {
		assert.NoError(t, v.Validate(borrowRequest{Quantity: qty(2), DueDate: day(10), Copies: 2}))
	})

	t.Run("quantity above copies names the limit", func(t *testing.T) {
		fields := fieldsOf(t, v.Validate(borrowRequest{Quantity: qty(3), DueDate: day(11), Copies: 2}))
		assert.Equal(t, "Cannot borrow more than 2 copies", fields["quantity"])
	})

	t.Run("missing quantity and date", func(t *testing.T) {
		fields := fieldsOf(t, v.Validate(borrowRequest{Copies: 2}))
		assert.Equal(t, "quantity is required", fields["quantity"])
		assert.Equal(t, "dueDate is required", fields["dueDate"])
	})

	t.Run("due date in the past", func(t *testing.T) {
		fields := fieldsOf(t, v.Validate(borrowRequest{Quantity: qty(1), DueDate: day(9), Copies: 2}))
		assert.Equal(t, "dueDate cannot be in the past", fields["dueDate"])
	})
}

func TestValidator_NotPastUsesLocation(t *testing.T) {
	// 01:00 UTC on the 10th is 07:00 on the 10th in Dhaka and 20:00 on the 9th in New York.
	now := time.Date(2025, 6, 10, 1, 0, 0, 0, time.UTC)
	clock := validation.WithClock(func() time.Time { return now })
	qty := 1
	day := func(d int) *time.Time {
		ts := time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
		return &ts
	}

	dhaka := validation.New(clock, validation.WithLocation(time.FixedZone("BDT", 6*60*60)))
	assert.NoError(t, dhaka.Validate(borrowRequest{Quantity: &qty, DueDate: day(10), Copies: 1}))
	assert.Error(t, dhaka.Validate(borrowRequest{Quantity: &qty, DueDate: day(9), Copies: 1}))

	newYork := validation.New(clock, validation.WithLocation(time.FixedZone("EDT", -4*60*60)))
	assert.NoError(t, newYork.Validate(borrowRequest{Quantity: &qty, DueDate: day(9), Copies: 1}))
}
