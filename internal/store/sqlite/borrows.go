package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/boibazaar/boibazaar/internal/domain"
	"github.com/boibazaar/boibazaar/internal/store"
)

// Borrow records br and takes its copies off the shelf in one transaction.
// It returns the book as updated.
//
// Returns store.ErrNotFound when the book does not exist and a
// *store.InsufficientCopiesError when fewer than br.Quantity copies remain.
func (s *Store) Borrow(ctx context.Context, br *domain.Borrow) (*domain.Book, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	book, err := scanBook(tx.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, br.BookID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if !book.CanBorrow(br.Quantity) {
		available := book.Copies
		if !book.Available {
			available = 0
		}
		return nil, &store.InsufficientCopiesError{Available: available}
	}

	book.Lend(br.Quantity)
	book.UpdatedAt = br.CreatedAt

	_, err = tx.ExecContext(ctx,
		`UPDATE books SET copies = ?, available = ?, updated_at = ? WHERE id = ?`,
		book.Copies, boolToInt(book.Available), formatTime(book.UpdatedAt), book.ID)
	if err != nil {
		return nil, fmt.Errorf("update copies: %w", err)
	}

	if br.Status == "" {
		br.Status = domain.BorrowStatusBorrowed
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO borrows (id, book_id, quantity, due_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		br.ID,
		br.BookID,
		br.Quantity,
		formatDueDate(br.DueDate),
		string(br.Status),
		formatTime(br.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("insert borrow: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return book, nil
}

// BorrowSummary aggregates the outstanding borrows per book: total quantity
// and the earliest due date, ordered by book title.
func (s *Store) BorrowSummary(ctx context.Context) ([]domain.BorrowSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.title, b.isbn, SUM(r.quantity), MIN(r.due_date)
		FROM borrows r
		JOIN books b ON b.id = r.book_id
		WHERE r.status = ?
		GROUP BY b.id, b.title, b.isbn
		ORDER BY b.title COLLATE NOCASE, b.id`,
		string(domain.BorrowStatusBorrowed))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := []domain.BorrowSummary{}
	for rows.Next() {
		var (
			row domain.BorrowSummary
			due sql.NullString
		)
		if err := rows.Scan(&row.ID, &row.Book.Title, &row.Book.ISBN, &row.TotalQuantity, &due); err != nil {
			return nil, err
		}
		if due.Valid {
			t, err := time.Parse(time.RFC3339, due.String)
			if err != nil {
				return nil, fmt.Errorf("parse due date: %w", err)
			}
			row.DueDate = &t
		}
		row.Status = domain.BorrowStatusBorrowed
		summary = append(summary, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summary, nil
}
