package store

import (
	"context"

	"github.com/boibazaar/boibazaar/internal/domain"
)

// Store defines the persistence operations of the library service.
type Store interface {
	// Lifecycle
	Close() error
	Ping() error

	// Books
	CreateBook(ctx context.Context, b *domain.Book) error
	GetBook(ctx context.Context, bookID string) (*domain.Book, error)
	ListBooks(ctx context.Context, q BookQuery) ([]*domain.Book, error)
	UpdateBook(ctx context.Context, b *domain.Book) error
	DeleteBook(ctx context.Context, bookID string) error
	CountBooks(ctx context.Context) (int, error)

	// Borrows
	Borrow(ctx context.Context, br *domain.Borrow) (*domain.Book, error)
	BorrowSummary(ctx context.Context) ([]domain.BorrowSummary, error)
}
