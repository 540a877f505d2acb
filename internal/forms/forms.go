// Package forms parses the catalog's HTML forms and checks their field rules.
//
// Forms are validated before any API call. A failed rule yields a message per
// form field, worded for display next to the input.
package forms

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/boibazaar/boibazaar/internal/domain"
	domainerrors "github.com/boibazaar/boibazaar/internal/errors"
	"github.com/boibazaar/boibazaar/internal/validation"
)

// BookForm is the "Add Book" form.
type BookForm struct {
	Title       string       `form:"title" validate:"required,min=3,max=100" msg:"required=Title is required;min=Title must be at least 3 characters;max=Title cannot exceed 100 characters"`
	Description string       `form:"description" validate:"required,min=20,max=1000" msg:"required=Description is required;min=Description must be at least 20 characters;max=Description cannot exceed 1000 characters"`
	Author      string       `form:"author" validate:"required,person_name" msg:"required=Author is required;person_name=Author name should only contain letters and spaces"`
	ISBN        string       `form:"isbn" validate:"required,isbn10or13" msg:"required=ISBN is required;isbn10or13=Please enter a valid ISBN (10 or 13 digits)"`
	Copies      *int         `form:"copies" validate:"required,min=1,max=1000" msg:"required=Number of copies is required;min=Must have at least 1 copy;max=Cannot exceed 1000 copies"`
	Genre       domain.Genre `form:"genre" validate:"required,genre" msg:"required=Genre is required;genre=Genre is required"`
}

// ParseBookForm reads a BookForm from posted values.
func ParseBookForm(values url.Values) BookForm {
	return BookForm{
		Title:       text(values, "title"),
		Description: text(values, "description"),
		Author:      text(values, "author"),
		ISBN:        text(values, "isbn"),
		Copies:      integer(values, "copies"),
		Genre:       domain.Genre(text(values, "genre")),
	}
}

// Input converts a validated form. New books start out available.
func (f BookForm) Input() domain.BookInput {
	return domain.BookInput{
		Title:       f.Title,
		Author:      f.Author,
		Genre:       f.Genre,
		ISBN:        f.ISBN,
		Description: f.Description,
		Copies:      deref(f.Copies),
		Available:   true,
	}
}

// UpdateBookForm is the edit form. Its rules are looser than BookForm's.
type UpdateBookForm struct {
	Title       string       `form:"title" validate:"required" msg:"required=Title is required"`
	Description string       `form:"description" validate:"required" msg:"required=Description is required"`
	Author      string       `form:"author" validate:"required" msg:"required=Author name is required"`
	ISBN        string       `form:"isbn" validate:"required,isbn_loose" msg:"required=ISBN is required;isbn_loose=Invalid ISBN format"`
	Copies      *int         `form:"copies" validate:"required,min=0" msg:"required=Number of copies is required;min=Copies cannot be negative"`
	Genre       domain.Genre `form:"genre" validate:"required,genre" msg:"required=Genre is required;genre=Genre is required"`
}

// ParseUpdateBookForm reads an UpdateBookForm from posted values.
func ParseUpdateBookForm(values url.Values) UpdateBookForm {
	return UpdateBookForm{
		Title:       text(values, "title"),
		Description: text(values, "description"),
		Author:      text(values, "author"),
		ISBN:        text(values, "isbn"),
		Copies:      integer(values, "copies"),
		Genre:       domain.Genre(text(values, "genre")),
	}
}

// Input converts a validated form. Availability follows the copy count.
func (f UpdateBookForm) Input() domain.BookInput {
	copies := deref(f.Copies)
	return domain.BookInput{
		Title:       f.Title,
		Author:      f.Author,
		Genre:       f.Genre,
		ISBN:        f.ISBN,
		Description: f.Description,
		Copies:      copies,
		Available:   domain.AvailableFor(copies),
	}
}

// BookValues pre-fills a book form from an existing book.
func BookValues(b *domain.Book) url.Values {
	return url.Values{
		"title":       {b.Title},
		"description": {b.Description},
		"author":      {b.Author},
		"isbn":        {b.ISBN},
		"copies":      {strconv.Itoa(b.Copies)},
		"genre":       {string(b.Genre)},
	}
}

// BorrowForm is the borrow form. Copies is the count the form was rendered
// with and bounds Quantity.
type BorrowForm struct {
	Quantity *int       `form:"quantity" validate:"required,min=1,ltefield=Copies" msg:"required=Quantity is required;min=Quantity must be at least 1;ltefield=Cannot borrow more than {param} copies"`
	DueDate  *time.Time `form:"dueDate" validate:"required,not_past" msg:"required=Due date is required;not_past=Due date cannot be in the past"`
	Copies   int        `form:"-"`
}

// ParseBorrowForm reads a BorrowForm. The due date is a calendar day held as
// midnight UTC. When the form carries no copy count, fallbackCopies is used.
func ParseBorrowForm(values url.Values, fallbackCopies int) BorrowForm {
	f := BorrowForm{
		Quantity: integer(values, "quantity"),
		Copies:   fallbackCopies,
	}
	if shown := integer(values, "copies"); shown != nil {
		f.Copies = *shown
	}
	if due, err := domain.ParseDate(text(values, "dueDate")); err == nil {
		f.DueDate = &due
	}
	return f
}

// Input converts a validated form into a borrow request for bookID.
func (f BorrowForm) Input(bookID string) domain.BorrowInput {
	in := domain.BorrowInput{BookID: bookID, Quantity: deref(f.Quantity)}
	if f.DueDate != nil {
		in.DueDate = *f.DueDate
	}
	return in
}

// Check validates form and returns its field messages, or nil when every rule passes.
func Check(v *validation.Validator, form any) domainerrors.FieldErrors {
	err := v.Validate(form)
	if err == nil {
		return nil
	}
	var derr *domainerrors.Error
	if errors.As(err, &derr) && len(derr.Fields) > 0 {
		return derr.Fields
	}
	return domainerrors.FieldErrors{"form": err.Error()}
}

func text(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

// integer parses a whole number. Anything else reads as missing.
func integer(values url.Values, key string) *int {
	n, err := strconv.Atoi(text(values, key))
	if err != nil {
		return nil
	}
	return &n
}

func deref(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
