package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/boibazaar/boibazaar/internal/catalog"
	"github.com/boibazaar/boibazaar/internal/domain"
	domainerrors "github.com/boibazaar/boibazaar/internal/errors"
	"github.com/boibazaar/boibazaar/internal/flash"
	"github.com/boibazaar/boibazaar/internal/forms"
	"github.com/boibazaar/boibazaar/internal/genre"
	"github.com/boibazaar/boibazaar/internal/libraryclient"
)

// filteredListLimit asks the API for every match when a filter is applied.
// Without it the API cuts filtered listings to its default of 10.
const filteredListLimit = 1000

type bookRow struct {
	N int
	domain.Book
}

type booksView struct {
	layout
	Rows  []bookRow
	Page  catalog.Page
	Query string
	Genre domain.Genre
}

// PageURL links to page n with the current search kept.
func (v *booksView) PageURL(n int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(n))
	if v.Query != "" {
		q.Set("q", v.Query)
	}
	if v.Genre != "" {
		q.Set("genre", string(v.Genre))
	}
	return "/books?" + q.Encode()
}

// Filtered reports whether the listing is narrowed by a search or genre.
func (v *booksView) Filtered() bool {
	return v.Query != "" || v.Genre != ""
}

type bookView struct {
	layout
	Book *domain.Book
}

type bookFormView struct {
	layout
	Heading string
	Action  string
	Submit  string
	Values  url.Values
	Errors  domainerrors.FieldErrors
	Edit    bool
	BookID  string
}

// Value returns the submitted value of a field.
func (v *bookFormView) Value(field string) string {
	return v.Values.Get(field)
}

// Availability previews the status an edit will store.
func (v *bookFormView) Availability() string {
	copies, err := strconv.Atoi(strings.TrimSpace(v.Values.Get("copies")))
	if err == nil && domain.AvailableFor(copies) {
		return "Available"
	}
	return "Unavailable"
}

type deleteView struct {
	layout
	Book *domain.Book
}

// handleListBooks renders the paginated catalog table.
// GET /books?page=N&q=text&genre=GENRE
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	// Unknown genres are dropped rather than rejected.
	g, _ := genre.Parse(r.URL.Query().Get("genre"))

	params := libraryclient.ListParams{Query: query, Genre: g}
	if query != "" || g != "" {
		params.Limit = filteredListLimit
	}

	books, err := s.library.ListBooks(r.Context(), params)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	page := catalog.Paginate(len(books), queryInt(r, "page"), s.perPage)
	rows := make([]bookRow, 0, page.End-page.Start)
	for i, b := range catalog.Slice(books, page) {
		rows = append(rows, bookRow{N: page.Offset() + i, Book: b})
	}

	s.render(w, r, http.StatusOK, "books", &booksView{
		layout: layout{Title: "All Books", Nav: navBooks},
		Rows:   rows,
		Page:   page,
		Query:  query,
		Genre:  g,
	})
}

// handleBookDetails renders one book.
// GET /books/{id}
func (s *Server) handleBookDetails(w http.ResponseWriter, r *http.Request) {
	book, err := s.library.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "book", &bookView{
		layout: layout{Title: book.Title, Nav: navBooks},
		Book:   book,
	})
}

func newBookFormView() *bookFormView {
	return &bookFormView{
		layout:  layout{Title: "Add Book", Nav: navAdd},
		Heading: "Contribute to Our Library",
		Action:  "/create-book",
		Submit:  "Add Book",
		Values:  url.Values{},
	}
}

func editBookFormView(book *domain.Book, values url.Values) *bookFormView {
	return &bookFormView{
		layout:  layout{Title: "Edit " + book.Title, Nav: navBooks},
		Heading: "Edit Book Details",
		Action:  "/books/" + url.PathEscape(book.ID) + "/edit",
		Submit:  "Update Book",
		Values:  values,
		Edit:    true,
		BookID:  book.ID,
	}
}

// handleCreateBookForm renders the empty "Add Book" form.
// GET /create-book
func (s *Server) handleCreateBookForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "book_form", newBookFormView())
}

// handleCreateBook validates the form and adds the book.
// POST /create-book
func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	view := newBookFormView()
	view.Values = r.PostForm

	form := forms.ParseBookForm(r.PostForm)
	if fields := forms.Check(s.validator, form); fields != nil {
		view.Errors = fields
		s.render(w, r, http.StatusUnprocessableEntity, "book_form", view)
		return
	}

	book, err := s.library.CreateBook(r.Context(), form.Input())
	if err != nil {
		s.logger.Warn("create book rejected", "isbn", form.ISBN, "error", err)
		s.render(w, r, failureStatus(err), "book_form", view, createFailure(err))
		return
	}

	s.logger.Info("book added", "book_id", book.ID)
	s.redirect(w, r, "/books", toastBookAdded)
}

// handleEditBookForm renders the edit form pre-filled with the book.
// GET /books/{id}/edit
func (s *Server) handleEditBookForm(w http.ResponseWriter, r *http.Request) {
	book, err := s.library.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "book_form", editBookFormView(book, forms.BookValues(book)))
}

// handleUpdateBook validates the edit form and saves it.
// POST /books/{id}/edit
func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	view := editBookFormView(&domain.Book{ID: bookID, Title: r.PostForm.Get("title")}, r.PostForm)

	form := forms.ParseUpdateBookForm(r.PostForm)
	if fields := forms.Check(s.validator, form); fields != nil {
		view.Errors = fields
		s.render(w, r, http.StatusUnprocessableEntity, "book_form", view)
		return
	}

	if _, err := s.library.UpdateBook(r.Context(), bookID, form.Input()); err != nil {
		s.logger.Warn("update book rejected", "book_id", bookID, "error", err)
		s.render(w, r, failureStatus(err), "book_form", view, updateFailure(err))
		return
	}

	s.redirect(w, r, "/books/"+url.PathEscape(bookID), toastBookUpdated)
}

// handleDeleteConfirm asks before deleting.
// GET /books/{id}/delete
func (s *Server) handleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	book, err := s.library.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "delete", &deleteView{
		layout: layout{Title: "Delete " + book.Title, Nav: navBooks},
		Book:   book,
	})
}

// handleDeleteBook deletes the book once confirmed.
// POST /books/{id}/delete
func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "id")

	var toast flash.Toast
	if err := s.library.DeleteBook(r.Context(), bookID); err != nil {
		s.logger.Warn("delete book failed", "book_id", bookID, "error", err)
		toast = toastDeleteFailed
	} else {
		toast = toastBookDeleted
	}

	s.redirect(w, r, "/books", toast)
}

// failureStatus is the status of a form page re-rendered after the API
// rejected it: 422 when the input was at fault, 502 otherwise.
func failureStatus(err error) int {
	if libraryclient.IsValidation(err) || libraryclient.IsDuplicateKey(err) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}
