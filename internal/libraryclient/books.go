package libraryclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/boibazaar/boibazaar/internal/domain"
)

// Sort keys accepted by ListBooks.
const (
	SortByCreatedAt = "createdAt"
	SortByTitle     = "title"
	SortByAuthor    = "author"
	SortByCopies    = "copies"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListParams narrows a book listing. Zero values are omitted from the query.
type ListParams struct {
	Genre  domain.Genre
	SortBy string
	Sort   string
	Limit  int
	Query  string
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Genre != "" {
		q.Set("filter", string(p.Genre))
	}
	if p.SortBy != "" {
		q.Set("sortBy", p.SortBy)
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Query != "" {
		q.Set("q", p.Query)
	}
	return q
}

// ListBooks fetches the catalog.
func (c *Client) ListBooks(ctx context.Context, params ListParams) ([]domain.Book, error) {
	var books []domain.Book
	if err := c.do(ctx, "listBooks", http.MethodGet, "/api/books", params.values(), nil, &books); err != nil {
		return nil, err
	}
	if books == nil {
		books = []domain.Book{}
	}
	return books, nil
}

// GetBook fetches one book by ID.
func (c *Client) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	var book domain.Book
	if err := c.do(ctx, "getBook", http.MethodGet, "/api/books/"+url.PathEscape(id), nil, nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook adds a book and returns it as stored.
func (c *Client) CreateBook(ctx context.Context, in domain.BookInput) (*domain.Book, error) {
	var book domain.Book
	if err := c.do(ctx, "createBook", http.MethodPost, "/api/books", nil, in, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateBook replaces the writable fields of a book.
func (c *Client) UpdateBook(ctx context.Context, id string, in domain.BookInput) (*domain.Book, error) {
	var book domain.Book
	if err := c.do(ctx, "updateBook", http.MethodPut, "/api/books/"+url.PathEscape(id), nil, in, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// DeleteBook removes a book.
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.do(ctx, "deleteBook", http.MethodDelete, "/api/books/"+url.PathEscape(id), nil, nil, nil)
}

// Ping checks that the API answers a minimal listing.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "ping", http.MethodGet, "/api/books", url.Values{"limit": {"1"}}, nil, nil)
}
