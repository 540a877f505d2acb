package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boibazaar/boibazaar/internal/domain"
	domainerrors "github.com/boibazaar/boibazaar/internal/errors"
	"github.com/boibazaar/boibazaar/internal/id"
)

func bookInput(title, isbn string, copies int) domain.BookInput {
	return domain.BookInput{
		Title:       title,
		Author:      "Test Author",
		Genre:       domain.GenreFiction,
		ISBN:        isbn,
		Description: "A description long enough for the form rules.",
		Copies:      copies,
		Available:   true,
	}
}

func TestBookService_CreateBook(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	in := bookInput("Dune", "9780441172719", 3)
	in.Available = false
	b, err := svc.books.CreateBook(ctx, in)
	require.NoError(t, err)

	assert.True(t, id.Valid(id.PrefixBook, b.ID))
	assert.True(t, b.Available, "availability follows copies, not the input flag")
	assert.Equal(t, fixedNow, b.CreatedAt)

	count, err := svc.index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestBookService_CreateBook_Validation(t *testing.T) {
	svc := newTestServices(t)

	in := bookInput("", "not an isbn", -1)
	in.Genre = "POETRY"
	_, err := svc.books.CreateBook(context.Background(), in)
	require.Error(t, err)

	var derr *domainerrors.Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, domainerrors.CodeValidation, derr.Code)
	assert.Equal(t, "Title is required", derr.Fields["title"])
	assert.Equal(t, "Please enter a valid ISBN (10 or 13 digits)", derr.Fields["isbn"])
	assert.Equal(t, "Must have at least 1 copy", derr.Fields["copies"])
	assert.Contains(t, derr.Fields["genre"], "Genre must be one of")
}

func TestBookService_CreateBook_FormRules(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.books.CreateBook(context.Background(), domain.BookInput{
		Title:  "X",
		Author: "R2-D2 #1",
		Genre:  domain.GenreFiction,
		ISBN:   "1-2",
		Copies: 0,
	})
	require.Error(t, err)

	var derr *domainerrors.Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, domainerrors.FieldErrors{
		"title":       "Title must be at least 3 characters",
		"author":      "Author name should only contain letters and spaces",
		"isbn":        "Please enter a valid ISBN (10 or 13 digits)",
		"description": "Description is required",
		"copies":      "Must have at least 1 copy",
	}, derr.Fields)

	books, err := svc.books.ListBooks(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestBookService_UpdateBook_LooseRules(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	b, err := svc.books.CreateBook(ctx, bookInput("Dune", "9780441172719", 3))
	require.NoError(t, err)

	in := bookInput("Du", "978-0-441", -1)
	_, err = svc.books.UpdateBook(ctx, b.ID, in)
	var derr *domainerrors.Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, domainerrors.FieldErrors{"copies": "Copies cannot be negative"}, derr.Fields)

	in.Copies = 0
	updated, err := svc.books.UpdateBook(ctx, b.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Du", updated.Title)
	assert.False(t, updated.Available)
}

func TestBookService_CreateBook_DuplicateISBN(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	_, err := svc.books.CreateBook(ctx, bookInput("Dune", "9780441172719", 1))
	require.NoError(t, err)

	_, err = svc.books.CreateBook(ctx, bookInput("Dune 2", "9780441172719", 1))
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateKey)
	assert.Equal(t, "DuplicateKeyError", domainerrors.CodeOf(err).Name())
}

func TestBookService_UpdateBook(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	b, err := svc.books.CreateBook(ctx, bookInput("Dune", "9780441172719", 3))
	require.NoError(t, err)

	updated, err := svc.books.UpdateBook(ctx, b.ID, bookInput("Dune Messiah", "978-0-441-17269-6", 0))
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", updated.Title)
	assert.False(t, updated.Available)

	ids, err := svc.index.SearchBooks(ctx, "messiah", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, ids)

	_, err = svc.books.UpdateBook(ctx, "book-missing", bookInput("X title", "123", 1))
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestBookService_DeleteBook(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	b, err := svc.books.CreateBook(ctx, bookInput("Dune", "9780441172719", 3))
	require.NoError(t, err)

	require.NoError(t, svc.books.DeleteBook(ctx, b.ID))
	assert.ErrorIs(t, svc.books.DeleteBook(ctx, b.ID), domainerrors.ErrNotFound)

	_, err = svc.books.GetBook(ctx, b.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	count, err := svc.index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestBookService_ListBooks(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	for i, title := range []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf", "Hotel", "India", "Juliet", "Kilo", "Lima"} {
		in := bookInput(title, fmt.Sprintf("97800000000%02d", i), i+1)
		if i%2 == 0 {
			in.Genre = domain.GenreScience
		}
		_, err := svc.books.CreateBook(ctx, in)
		require.NoError(t, err)
	}

	all, err := svc.books.ListBooks(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 12, "no parameters returns everything")

	science, err := svc.books.ListBooks(ctx, ListOptions{Filter: "SCIENCE"})
	require.NoError(t, err)
	assert.Len(t, science, 6)

	lenient, err := svc.books.ListBooks(ctx, ListOptions{Filter: "popular science"})
	require.NoError(t, err)
	assert.Len(t, lenient, 6)

	byCopies, err := svc.books.ListBooks(ctx, ListOptions{SortBy: "copies", Sort: "desc"})
	require.NoError(t, err)
	require.Len(t, byCopies, DefaultListLimit, "any parameter applies the default limit")
	assert.Equal(t, "Lima", byCopies[0].Title)

	limited, err := svc.books.ListBooks(ctx, ListOptions{SortBy: "title", Limit: 3})
	require.NoError(t, err)
	require.Len(t, limited, 3)
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, []string{limited[0].Title, limited[1].Title, limited[2].Title})

	found, err := svc.books.ListBooks(ctx, ListOptions{Query: "juliet"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Juliet", found[0].Title)
}

func TestBookService_ListBooks_InvalidParams(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.books.ListBooks(context.Background(), ListOptions{Filter: "POETRY", SortBy: "price", Sort: "up", Limit: -1})
	require.Error(t, err)

	var derr *domainerrors.Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, domainerrors.CodeValidation, derr.Code)
	assert.ElementsMatch(t, []string{"filter", "limit", "sort", "sortBy"}, derr.Fields.Fields())
}
