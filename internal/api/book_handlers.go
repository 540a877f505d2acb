package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/boibazaar/boibazaar/internal/domain"
	"github.com/boibazaar/boibazaar/internal/http/response"
	"github.com/boibazaar/boibazaar/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/books",
		Summary:     "List books",
		Description: "Lists the catalog, optionally filtered by genre, sorted, limited and searched",
		Tags:        []string{"Books"},
		Metadata:    successMessage("Books retrieved successfully"),
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createBook",
		Method:        http.MethodPost,
		Path:          "/api/books",
		Summary:       "Create book",
		Description:   "Adds a book to the catalog",
		Tags:          []string{"Books"},
		DefaultStatus: http.StatusCreated,
		Metadata:      successMessage("Book created successfully"),
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/books/{id}",
		Summary:     "Get book",
		Description: "Returns a single book",
		Tags:        []string{"Books"},
		Metadata:    successMessage("Book retrieved successfully"),
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPut,
		Path:        "/api/books/{id}",
		Summary:     "Update book",
		Description: "Replaces the writable fields of a book. Availability follows the copy count.",
		Tags:        []string{"Books"},
		Metadata:    successMessage("Book updated successfully"),
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/api/books/{id}",
		Summary:     "Delete book",
		Description: "Removes a book and its borrow records",
		Tags:        []string{"Books"},
	}, s.handleDeleteBook)
}

// ListBooksInput contains parameters for listing books.
type ListBooksInput struct {
	Filter string `query:"filter" doc:"Genre to filter by" example:"SCIENCE"`
	SortBy string `query:"sortBy" doc:"Sort key: createdAt, title, author or copies"`
	Sort   string `query:"sort" doc:"Sort direction: asc or desc"`
	Limit  int    `query:"limit" doc:"Maximum number of books (default 10 when any parameter is set)"`
	Q      string `query:"q" doc:"Full-text search over title, author, description and ISBN"`
}

// BookBody is the writable part of a book. Every field is optional at the
// schema level so the service can report friendly messages.
type BookBody struct {
	_           struct{} `json:"-" additionalProperties:"true"`
	Title       string   `json:"title" required:"false" doc:"Book title" example:"The Theory of Everything"`
	Author      string   `json:"author" required:"false" doc:"Author name"`
	Genre       string   `json:"genre" required:"false" doc:"One of FICTION, NON_FICTION, SCIENCE, HISTORY, BIOGRAPHY, FANTASY"`
	ISBN        string   `json:"isbn" required:"false" doc:"ISBN-10 or ISBN-13 digits; dashes are accepted on update"`
	Description string   `json:"description" required:"false" doc:"20 to 1000 characters on create, up to 1000 on update"`
	Copies      int      `json:"copies" required:"false" doc:"Copies on the shelf"`
	Available   *bool    `json:"available,omitempty" required:"false" doc:"Ignored: derived from copies"`
}

func (b BookBody) input() domain.BookInput {
	return domain.BookInput{
		Title:       b.Title,
		Author:      b.Author,
		Genre:       domain.Genre(b.Genre),
		ISBN:        b.ISBN,
		Description: b.Description,
		Copies:      b.Copies,
		Available:   domain.AvailableFor(b.Copies),
	}
}

// BookIDInput identifies a book by path.
type BookIDInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// CreateBookInput wraps the create request for Huma.
type CreateBookInput struct {
	Body BookBody
}

// UpdateBookInput wraps the update request for Huma.
type UpdateBookInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body BookBody
}

// BookOutput wraps a single book for Huma.
type BookOutput struct {
	Body *domain.Book
}

// ListBooksOutput wraps a list of books for Huma.
type ListBooksOutput struct {
	Body []*domain.Book
}

// DeleteBookOutput carries the delete confirmation envelope.
type DeleteBookOutput struct {
	Body response.Envelope
}

func (s *Server) handleListBooks(ctx context.Context, input *ListBooksInput) (*ListBooksOutput, error) {
	books, err := s.books.ListBooks(ctx, service.ListOptions{
		Filter: input.Filter,
		SortBy: input.SortBy,
		Sort:   input.Sort,
		Limit:  input.Limit,
		Query:  input.Q,
	})
	if err != nil {
		return nil, toAPIError(err)
	}
	if books == nil {
		books = []*domain.Book{}
	}
	return &ListBooksOutput{Body: books}, nil
}

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	book, err := s.books.CreateBook(ctx, input.Body.input())
	if err != nil {
		return nil, toAPIError(err)
	}
	return &BookOutput{Body: book}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *BookIDInput) (*BookOutput, error) {
	book, err := s.books.GetBook(ctx, input.ID)
	if err != nil {
		return nil, toAPIError(err)
	}
	return &BookOutput{Body: book}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	book, err := s.books.UpdateBook(ctx, input.ID, input.Body.input())
	if err != nil {
		return nil, toAPIError(err)
	}
	return &BookOutput{Body: book}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *BookIDInput) (*DeleteBookOutput, error) {
	if err := s.books.DeleteBook(ctx, input.ID); err != nil {
		return nil, toAPIError(err)
	}
	return &DeleteBookOutput{
		Body: response.Envelope{Success: true, Message: "Book deleted successfully"},
	}, nil
}
