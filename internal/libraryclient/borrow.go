package libraryclient

import (
	"context"
	"net/http"

	"github.com/boibazaar/boibazaar/internal/domain"
)

// BorrowBook records a borrow of in.Quantity copies.
func (c *Client) BorrowBook(ctx context.Context, in domain.BorrowInput) (*domain.Borrow, error) {
	var borrow domain.Borrow
	if err := c.do(ctx, "borrowBook", http.MethodPost, "/api/borrow", nil, in, &borrow); err != nil {
		return nil, err
	}
	return &borrow, nil
}

// BorrowSummary fetches the per-book borrow aggregate.
func (c *Client) BorrowSummary(ctx context.Context) ([]domain.BorrowSummary, error) {
	var rows []domain.BorrowSummary
	if err := c.do(ctx, "borrowSummary", http.MethodGet, "/api/borrow", nil, nil, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.BorrowSummary{}
	}
	return rows, nil
}
