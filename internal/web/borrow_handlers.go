package web

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/boibazaar/boibazaar/internal/domain"
	domainerrors "github.com/boibazaar/boibazaar/internal/errors"
	"github.com/boibazaar/boibazaar/internal/forms"
)

type borrowView struct {
	layout
	Book    *domain.Book
	Values  url.Values
	Errors  domainerrors.FieldErrors
	MinDate string
}

// Value returns the submitted value of a field.
func (v *borrowView) Value(field string) string {
	return v.Values.Get(field)
}

type summaryRow struct {
	N int
	domain.BorrowSummary
	Badge domain.BorrowStatus
}

type summaryView struct {
	layout
	Rows []summaryRow
}

func (s *Server) today() string {
	return s.now().In(s.loc).Format(domain.DateLayout)
}

func (s *Server) borrowView(book *domain.Book, values url.Values) *borrowView {
	return &borrowView{
		layout:  layout{Title: "Borrow " + book.Title, Nav: navBooks},
		Book:    book,
		Values:  values,
		MinDate: s.today(),
	}
}

// handleBorrowForm renders the borrow form for one book.
// GET /books/{id}/borrow
func (s *Server) handleBorrowForm(w http.ResponseWriter, r *http.Request) {
	book, err := s.library.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	values := url.Values{
		"quantity": {"1"},
		"copies":   {strconv.Itoa(book.Copies)},
	}
	s.render(w, r, http.StatusOK, "borrow", s.borrowView(book, values))
}

// handleBorrowBook lends copies of a book.
// The form is checked against the copy count it was rendered with, then the
// request is checked again against a fresh read of the book.
// POST /books/{id}/borrow
func (s *Server) handleBorrowBook(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	book, err := s.library.GetBook(r.Context(), bookID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	view := s.borrowView(book, r.PostForm)

	form := forms.ParseBorrowForm(r.PostForm, book.Copies)
	if fields := forms.Check(s.validator, form); fields != nil {
		view.Errors = fields
		s.render(w, r, http.StatusUnprocessableEntity, "borrow", view)
		return
	}

	in := form.Input(book.ID)
	if in.Quantity > book.Copies {
		s.redirect(w, r, "/books", invalidQuantity(book.Copies))
		return
	}

	if _, err := s.library.BorrowBook(r.Context(), in); err != nil {
		s.logger.Warn("borrow rejected", "book_id", book.ID, "quantity", in.Quantity, "error", err)
		s.render(w, r, failureStatus(err), "borrow", view, borrowFailure(err))
		return
	}

	s.logger.Info("book borrowed", "book_id", book.ID, "quantity", in.Quantity)
	s.redirect(w, r, "/borrow-summary", toastBookBorrowed)
}

// handleBorrowSummary renders what is out, one row per book.
// GET /borrow-summary
func (s *Server) handleBorrowSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.library.BorrowSummary(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	now := s.now().In(s.loc)
	rows := make([]summaryRow, len(summary))
	for i, item := range summary {
		rows[i] = summaryRow{N: i + 1, BorrowSummary: item, Badge: item.DisplayStatus(now)}
	}

	s.render(w, r, http.StatusOK, "summary", &summaryView{
		layout: layout{Title: "Borrow Summary", Nav: navSummary},
		Rows:   rows,
	})
}
