package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/boibazaar/boibazaar/internal/domain"
	domainerrors "github.com/boibazaar/boibazaar/internal/errors"
	"github.com/boibazaar/boibazaar/internal/id"
	"github.com/boibazaar/boibazaar/internal/store"
	"github.com/boibazaar/boibazaar/internal/validation"
)

type borrowRules struct {
	BookID   string    `json:"book" validate:"required" msg:"required=Book is required"`
	Quantity int       `json:"quantity" validate:"min=1" msg:"min=Quantity must be at least 1"`
	DueDate  time.Time `json:"dueDate" validate:"required,not_past" msg:"required=Due date is required;not_past=Due date cannot be in the past"`
}

// BorrowService lends books and reports what is out.
type BorrowService struct {
	store     store.Store
	search    Searcher
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewBorrowService creates a new borrow service.
func NewBorrowService(st store.Store, search Searcher, v *validation.Validator, logger *slog.Logger) *BorrowService {
	return &BorrowService{
		store:     st,
		search:    search,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

// Borrow lends in.Quantity copies of a book until in.DueDate.
// Only the due date's calendar day is kept.
// The copy count drops and availability is recomputed atomically with the
// borrow record.
func (s *BorrowService) Borrow(ctx context.Context, in domain.BorrowInput) (*domain.Borrow, error) {
	if !in.DueDate.IsZero() {
		in.DueDate = domain.DayOf(in.DueDate)
	}
	if err := s.validator.Validate(borrowRules{BookID: in.BookID, Quantity: in.Quantity, DueDate: in.DueDate}); err != nil {
		return nil, err
	}

	borrowID, err := id.Generate(id.PrefixBorrow)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to borrow book")
	}

	br := &domain.Borrow{
		ID:        borrowID,
		BookID:    in.BookID,
		Quantity:  in.Quantity,
		DueDate:   in.DueDate,
		Status:    domain.BorrowStatusBorrowed,
		CreatedAt: s.now().UTC(),
	}

	book, err := s.store.Borrow(ctx, br)
	if err != nil {
		var ice *store.InsufficientCopiesError
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, domainerrors.NotFound("Book not found")
		case errors.As(err, &ice):
			return nil, domainerrors.InsufficientCopiesf("Not enough copies available").
				WithField("quantity", fmt.Sprintf("Only %d copies available", ice.Available))
		default:
			return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to borrow book")
		}
	}

	if err := s.search.IndexBook(book); err != nil {
		s.logger.Warn("failed to index book", "book_id", book.ID, "error", err)
	}

	s.logger.Info("book borrowed",
		"borrow_id", br.ID,
		"book_id", br.BookID,
		"quantity", br.Quantity,
		"copies_left", book.Copies,
	)

	return br, nil
}

// Summary aggregates outstanding borrows per book.
func (s *BorrowService) Summary(ctx context.Context) ([]domain.BorrowSummary, error) {
	rows, err := s.store.BorrowSummary(ctx)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to summarize borrows")
	}
	return rows, nil
}
