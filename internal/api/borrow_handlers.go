package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/boibazaar/boibazaar/internal/domain"
	domainerrors "github.com/boibazaar/boibazaar/internal/errors"
)

func (s *Server) registerBorrowRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "borrowBook",
		Method:        http.MethodPost,
		Path:          "/api/borrow",
		Summary:       "Borrow book",
		Description:   "Lends copies of a book until a due date",
		Tags:          []string{"Borrow"},
		DefaultStatus: http.StatusCreated,
		Metadata:      successMessage("Book borrowed successfully"),
	}, s.handleBorrowBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "borrowSummary",
		Method:      http.MethodGet,
		Path:        "/api/borrow",
		Summary:     "Borrow summary",
		Description: "Aggregates outstanding borrows per book",
		Tags:        []string{"Borrow"},
		Metadata:    successMessage("Borrowed books summary retrieved successfully"),
	}, s.handleBorrowSummary)
}

// BorrowBody is a borrow request.
type BorrowBody struct {
	_        struct{} `json:"-" additionalProperties:"true"`
	Book     string   `json:"book" required:"false" doc:"ID of the book to borrow"`
	Quantity int      `json:"quantity" required:"false" doc:"Number of copies, at least 1"`
	DueDate  string   `json:"dueDate" required:"false" doc:"RFC 3339 timestamp or YYYY-MM-DD date, not in the past" example:"2030-01-02"`
}

// BorrowInput wraps the borrow request for Huma.
type BorrowInput struct {
	Body BorrowBody
}

// BorrowOutput wraps the created borrow for Huma.
type BorrowOutput struct {
	Body *domain.Borrow
}

// BorrowSummaryOutput wraps the summary rows for Huma.
type BorrowSummaryOutput struct {
	Body []domain.BorrowSummary
}

// parseDueDate accepts RFC 3339 timestamps and bare dates. Either becomes the
// calendar day it names, as midnight UTC: a timestamp is read in its own
// offset. Empty input yields the zero time.
func parseDueDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return domain.DayOf(t), nil
	}
	t, err := domain.ParseDate(raw)
	if err != nil {
		return time.Time{}, domainerrors.ValidationWithFields("Validation failed", domainerrors.FieldErrors{
			"dueDate": "Invalid due date",
		})
	}
	return t, nil
}

func (s *Server) handleBorrowBook(ctx context.Context, input *BorrowInput) (*BorrowOutput, error) {
	due, err := parseDueDate(input.Body.DueDate)
	if err != nil {
		return nil, toAPIError(err)
	}

	borrow, err := s.borrows.Borrow(ctx, domain.BorrowInput{
		BookID:   input.Body.Book,
		Quantity: input.Body.Quantity,
		DueDate:  due,
	})
	if err != nil {
		return nil, toAPIError(err)
	}
	return &BorrowOutput{Body: borrow}, nil
}

func (s *Server) handleBorrowSummary(ctx context.Context, _ *struct{}) (*BorrowSummaryOutput, error) {
	rows, err := s.borrows.Summary(ctx)
	if err != nil {
		return nil, toAPIError(err)
	}
	if rows == nil {
		rows = []domain.BorrowSummary{}
	}
	return &BorrowSummaryOutput{Body: rows}, nil
}
