package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boibazaar/boibazaar/internal/domain"
	domainerrors "github.com/boibazaar/boibazaar/internal/errors"
	"github.com/boibazaar/boibazaar/internal/id"
)

func TestBorrowService_Borrow(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	b, err := svc.books.CreateBook(ctx, bookInput("Dune", "9780441172719", 3))
	require.NoError(t, err)

	due := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	br, err := svc.borrows.Borrow(ctx, domain.BorrowInput{BookID: b.ID, Quantity: 3, DueDate: due})
	require.NoError(t, err)

	assert.True(t, id.Valid(id.PrefixBorrow, br.ID))
	assert.Equal(t, domain.BorrowStatusBorrowed, br.Status)

	after, err := svc.books.GetBook(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.Copies)
	assert.False(t, after.Available)
}

func TestBorrowService_Borrow_DueToday(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	b, err := svc.books.CreateBook(ctx, bookInput("Dune", "9780441172719", 3))
	require.NoError(t, err)

	today := time.Date(fixedNow.Year(), fixedNow.Month(), fixedNow.Day(), 0, 0, 0, 0, time.UTC)
	_, err = svc.borrows.Borrow(ctx, domain.BorrowInput{BookID: b.ID, Quantity: 1, DueDate: today})
	assert.NoError(t, err)
}

func TestBorrowService_Borrow_KeepsCalendarDay(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	b, err := svc.books.CreateBook(ctx, bookInput("Dune", "9780441172719", 3))
	require.NoError(t, err)

	// Today in Dhaka, which is still the previous day in UTC at midnight.
	bdt := time.FixedZone("BDT", 6*60*60)
	due := time.Date(fixedNow.Year(), fixedNow.Month(), fixedNow.Day(), 0, 0, 0, 0, bdt)
	br, err := svc.borrows.Borrow(ctx, domain.BorrowInput{BookID: b.ID, Quantity: 1, DueDate: due})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), br.DueDate)

	rows, err := svc.borrows.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].DueDate)
	assert.True(t, rows[0].DueDate.Equal(br.DueDate))
}

func TestBorrowService_Borrow_Rejections(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	b, err := svc.books.CreateBook(ctx, bookInput("Dune", "9780441172719", 2))
	require.NoError(t, err)
	future := fixedNow.AddDate(0, 0, 7)

	tests := []struct {
		name     string
		in       domain.BorrowInput
		wantCode domainerrors.Code
		field    string
		message  string
	}{
		{
			name:     "too many copies",
			in:       domain.BorrowInput{BookID: b.ID, Quantity: 3, DueDate: future},
			wantCode: domainerrors.CodeInsufficientCopies,
			field:    "quantity",
			message:  "Only 2 copies available",
		},
		{
			name:     "zero quantity",
			in:       domain.BorrowInput{BookID: b.ID, Quantity: 0, DueDate: future},
			wantCode: domainerrors.CodeValidation,
			field:    "quantity",
			message:  "Quantity must be at least 1",
		},
		{
			name:     "past due date",
			in:       domain.BorrowInput{BookID: b.ID, Quantity: 1, DueDate: fixedNow.AddDate(0, 0, -1)},
			wantCode: domainerrors.CodeValidation,
			field:    "dueDate",
			message:  "Due date cannot be in the past",
		},
		{
			name:     "missing due date",
			in:       domain.BorrowInput{BookID: b.ID, Quantity: 1},
			wantCode: domainerrors.CodeValidation,
			field:    "dueDate",
			message:  "Due date is required",
		},
		{
			name:     "unknown book",
			in:       domain.BorrowInput{BookID: "book-missing", Quantity: 1, DueDate: future},
			wantCode: domainerrors.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.borrows.Borrow(ctx, tt.in)
			require.Error(t, err)

			var derr *domainerrors.Error
			require.True(t, errors.As(err, &derr))
			assert.Equal(t, tt.wantCode, derr.Code)
			if tt.field != "" {
				assert.Equal(t, tt.message, derr.Fields[tt.field])
			}
		})
	}

	// Insufficient copies is reported on the wire as a validation failure.
	_, err = svc.borrows.Borrow(ctx, tests[0].in)
	var derr *domainerrors.Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "ValidationError", derr.Code.Name())
	assert.Equal(t, http.StatusBadRequest, derr.HTTPStatus())

	stored, err := svc.books.GetBook(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Copies, "rejected borrows leave copies untouched")
}

func TestBorrowService_Summary(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	b, err := svc.books.CreateBook(ctx, bookInput("Dune", "9780441172719", 10))
	require.NoError(t, err)

	first := fixedNow.AddDate(0, 0, 3)
	second := fixedNow.AddDate(0, 0, 9)
	for _, in := range []domain.BorrowInput{
		{BookID: b.ID, Quantity: 2, DueDate: second},
		{BookID: b.ID, Quantity: 4, DueDate: first},
	} {
		_, err := svc.borrows.Borrow(ctx, in)
		require.NoError(t, err)
	}

	rows, err := svc.borrows.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Dune", rows[0].Book.Title)
	assert.Equal(t, 6, rows[0].TotalQuantity)
	require.NotNil(t, rows[0].DueDate)
	assert.True(t, rows[0].DueDate.Equal(domain.DayOf(first)))
}
