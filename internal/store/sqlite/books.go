package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/boibazaar/boibazaar/internal/domain"
	"github.com/boibazaar/boibazaar/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, title, author, genre, isbn, description, copies, available, created_at, updated_at`

var sortColumns = map[string]string{
	store.SortCreatedAt: "created_at",
	store.SortTitle:     "title COLLATE NOCASE",
	store.SortAuthor:    "author COLLATE NOCASE",
	store.SortCopies:    "copies",
}

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book

	var (
		genre     string
		available int
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&genre,
		&b.ISBN,
		&b.Description,
		&b.Copies,
		&available,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Genre = domain.Genre(genre)
	b.Available = available != 0

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// CreateBook inserts a new book.
// Returns store.ErrAlreadyExists when the ISBN is taken.
func (s *Store) CreateBook(ctx context.Context, b *domain.Book) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (`+bookColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID,
		b.Title,
		b.Author,
		string(b.Genre),
		b.ISBN,
		b.Description,
		b.Copies,
		boolToInt(b.Available),
		formatTime(b.CreatedAt),
		formatTime(b.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists.WithCause(err)
	}
	return err
}

// GetBook retrieves a book by ID.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, bookID)

	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBooks returns the books matching q.
func (s *Store) ListBooks(ctx context.Context, q store.BookQuery) ([]*domain.Book, error) {
	if q.IDs != nil && len(q.IDs) == 0 {
		return []*domain.Book{}, nil
	}

	var (
		where []string
		args  []any
	)
	if q.Genre != "" {
		where = append(where, "genre = ?")
		args = append(args, string(q.Genre))
	}
	if len(q.IDs) > 0 {
		where = append(where, "id IN (?"+strings.Repeat(", ?", len(q.IDs)-1)+")")
		for _, id := range q.IDs {
			args = append(args, id)
		}
	}

	query := `SELECT ` + bookColumns + ` FROM books`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = sortColumns[store.SortCreatedAt]
	}
	direction := "ASC"
	if q.Desc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s, id %s", column, direction, direction)

	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []*domain.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// UpdateBook replaces a book's writable fields.
// Returns store.ErrNotFound if the book does not exist and
// store.ErrAlreadyExists when the new ISBN belongs to another book.
func (s *Store) UpdateBook(ctx context.Context, b *domain.Book) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE books SET
			title = ?,
			author = ?,
			genre = ?,
			isbn = ?,
			description = ?,
			copies = ?,
			available = ?,
			updated_at = ?
		WHERE id = ?`,
		b.Title,
		b.Author,
		string(b.Genre),
		b.ISBN,
		b.Description,
		b.Copies,
		boolToInt(b.Available),
		formatTime(b.UpdatedAt),
		b.ID,
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists.WithCause(err)
	}
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteBook removes a book and, through the foreign key, its borrows.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) DeleteBook(ctx context.Context, bookID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, bookID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// CountBooks returns the number of books in the catalog.
func (s *Store) CountBooks(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n)
	return n, err
}
