// Package service holds the library service's business rules between the
// HTTP layer and the store.
package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/boibazaar/boibazaar/internal/domain"
	domainerrors "github.com/boibazaar/boibazaar/internal/errors"
	"github.com/boibazaar/boibazaar/internal/genre"
	"github.com/boibazaar/boibazaar/internal/id"
	"github.com/boibazaar/boibazaar/internal/store"
	"github.com/boibazaar/boibazaar/internal/validation"
)

// DefaultListLimit applies when a listing has query parameters but no limit.
const DefaultListLimit = 10

// Searcher keeps the full-text index in sync and answers text queries.
type Searcher interface {
	IndexBook(b *domain.Book) error
	DeleteBook(bookID string) error
	SearchBooks(ctx context.Context, text string, limit int) ([]string, error)
}

// createRules are the constraints on a new book. They match the "Add Book" form.
type createRules struct {
	Title       string       `json:"title" validate:"required,min=3,max=100" msg:"required=Title is required;min=Title must be at least 3 characters;max=Title cannot exceed 100 characters"`
	Author      string       `json:"author" validate:"required,person_name" msg:"required=Author is required;person_name=Author name should only contain letters and spaces"`
	Genre       domain.Genre `json:"genre" validate:"required,genre" msg:"required=Genre is required;genre=Genre must be one of FICTION, NON_FICTION, SCIENCE, HISTORY, BIOGRAPHY, FANTASY"`
	ISBN        string       `json:"isbn" validate:"required,isbn10or13" msg:"required=ISBN is required;isbn10or13=Please enter a valid ISBN (10 or 13 digits)"`
	Description string       `json:"description" validate:"required,min=20,max=1000" msg:"required=Description is required;min=Description must be at least 20 characters;max=Description cannot exceed 1000 characters"`
	Copies      int          `json:"copies" validate:"min=1,max=1000" msg:"min=Must have at least 1 copy;max=Cannot exceed 1000 copies"`
}

// bookRules are the constraints every stored book satisfies. Updates are
// checked against these looser rules.
type bookRules struct {
	Title       string       `json:"title" validate:"required,max=100" msg:"required=Title is required;max=Title cannot exceed 100 characters"`
	Author      string       `json:"author" validate:"required" msg:"required=Author is required"`
	Genre       domain.Genre `json:"genre" validate:"required,genre" msg:"required=Genre is required;genre=Genre must be one of FICTION, NON_FICTION, SCIENCE, HISTORY, BIOGRAPHY, FANTASY"`
	ISBN        string       `json:"isbn" validate:"required,isbn_loose" msg:"required=ISBN is required;isbn_loose=Invalid ISBN format"`
	Description string       `json:"description" validate:"max=1000" msg:"max=Description cannot exceed 1000 characters"`
	Copies      int          `json:"copies" validate:"min=0,max=1000" msg:"min=Copies cannot be negative;max=Cannot exceed 1000 copies"`
}

func rulesFor(in domain.BookInput) bookRules {
	return bookRules{
		Title:       in.Title,
		Author:      in.Author,
		Genre:       in.Genre,
		ISBN:        in.ISBN,
		Description: in.Description,
		Copies:      in.Copies,
	}
}

// ListOptions narrows a catalog listing. Empty values are ignored.
type ListOptions struct {
	Filter string
	SortBy string
	Sort   string
	Limit  int
	Query  string
}

func (o ListOptions) empty() bool {
	return o == ListOptions{}
}

// BookService manages the catalog.
type BookService struct {
	store     store.Store
	search    Searcher
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewBookService creates a new book service.
func NewBookService(st store.Store, search Searcher, v *validation.Validator, logger *slog.Logger) *BookService {
	return &BookService{
		store:     st,
		search:    search,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

// ListBooks returns the catalog narrowed by opts.
// A text query restricts the listing to search hits, ordered by relevance
// unless a sort key is given.
func (s *BookService) ListBooks(ctx context.Context, opts ListOptions) ([]*domain.Book, error) {
	q, err := s.buildQuery(opts)
	if err != nil {
		return nil, err
	}

	var hits []string
	if opts.Query != "" {
		hits, err = s.search.SearchBooks(ctx, opts.Query, 0)
		if err != nil {
			return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "search failed")
		}
		q.IDs = hits
		if opts.SortBy == "" {
			// Rank first, limit after.
			q.Limit = 0
		}
	}

	books, err := s.store.ListBooks(ctx, q)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to list books")
	}

	if opts.Query != "" && opts.SortBy == "" {
		books = orderByRank(books, hits)
		if limit := s.limitFor(opts); limit > 0 && len(books) > limit {
			books = books[:limit]
		}
	}

	return books, nil
}

func (s *BookService) buildQuery(opts ListOptions) (store.BookQuery, error) {
	fields := domainerrors.FieldErrors{}

	q := store.BookQuery{Limit: s.limitFor(opts)}

	if opts.Filter != "" {
		g, ok := genre.Parse(opts.Filter)
		if !ok {
			fields["filter"] = "Unknown genre " + opts.Filter
		}
		q.Genre = g
	}

	switch opts.SortBy {
	case "", store.SortCreatedAt, store.SortTitle, store.SortAuthor, store.SortCopies:
		q.SortBy = opts.SortBy
	default:
		fields["sortBy"] = "sortBy must be one of createdAt, title, author, copies"
	}

	switch opts.Sort {
	case "", "asc":
	case "desc":
		q.Desc = true
	default:
		fields["sort"] = "sort must be asc or desc"
	}

	if opts.Limit < 0 {
		fields["limit"] = "limit must be a positive number"
	}

	if len(fields) > 0 {
		return q, domainerrors.ValidationWithFields("Invalid query parameters", fields)
	}
	return q, nil
}

func (s *BookService) limitFor(opts ListOptions) int {
	switch {
	case opts.Limit > 0:
		return opts.Limit
	case opts.empty():
		return 0
	default:
		return DefaultListLimit
	}
}

func orderByRank(books []*domain.Book, ids []string) []*domain.Book {
	rank := make(map[string]int, len(ids))
	for i, id := range ids {
		rank[id] = i
	}
	slices.SortStableFunc(books, func(a, b *domain.Book) int {
		return rank[a.ID] - rank[b.ID]
	})
	return books
}

// GetBook returns one book.
func (s *BookService) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	b, err := s.store.GetBook(ctx, bookID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domainerrors.NotFound("Book not found")
	}
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to get book")
	}
	return b, nil
}

// CreateBook validates and stores a new book. Availability follows the copy count.
func (s *BookService) CreateBook(ctx context.Context, in domain.BookInput) (*domain.Book, error) {
	if err := s.validator.Validate(createRules(rulesFor(in))); err != nil {
		return nil, err
	}

	bookID, err := id.Generate(id.PrefixBook)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to create book")
	}

	now := s.now().UTC()
	b := &domain.Book{ID: bookID, CreatedAt: now, UpdatedAt: now}
	in.Apply(b)
	b.Available = domain.AvailableFor(b.Copies)

	if err := s.store.CreateBook(ctx, b); err != nil {
		return nil, s.mapWriteError(err, "failed to create book")
	}

	s.reindex(b)
	s.logger.Info("book created", "book_id", b.ID, "isbn", b.ISBN)

	return b, nil
}

// UpdateBook replaces a book's writable fields. Availability follows the copy count.
func (s *BookService) UpdateBook(ctx context.Context, bookID string, in domain.BookInput) (*domain.Book, error) {
	if err := s.validator.Validate(rulesFor(in)); err != nil {
		return nil, err
	}

	b, err := s.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	in.Apply(b)
	b.Available = domain.AvailableFor(b.Copies)
	b.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateBook(ctx, b); err != nil {
		return nil, s.mapWriteError(err, "failed to update book")
	}

	s.reindex(b)
	s.logger.Info("book updated", "book_id", b.ID)

	return b, nil
}

// DeleteBook removes a book and its borrows.
func (s *BookService) DeleteBook(ctx context.Context, bookID string) error {
	err := s.store.DeleteBook(ctx, bookID)
	if errors.Is(err, store.ErrNotFound) {
		return domainerrors.NotFound("Book not found")
	}
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to delete book")
	}

	if err := s.search.DeleteBook(bookID); err != nil {
		s.logger.Warn("failed to remove book from search index", "book_id", bookID, "error", err)
	}
	s.logger.Info("book deleted", "book_id", bookID)

	return nil
}

func (s *BookService) mapWriteError(err error, msg string) error {
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		return domainerrors.DuplicateKey("Book with this ISBN already exists").
			WithField("isbn", "ISBN must be unique").
			WithCause(err)
	case errors.Is(err, store.ErrNotFound):
		return domainerrors.NotFound("Book not found")
	default:
		return domainerrors.Wrap(err, domainerrors.CodeInternal, msg)
	}
}

// reindex updates the search index. Search lag never fails a write.
func (s *BookService) reindex(b *domain.Book) {
	if err := s.search.IndexBook(b); err != nil {
		s.logger.Warn("failed to index book", "book_id", b.ID, "error", err)
	}
}
