package service

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/boibazaar/boibazaar/internal/search"
	"github.com/boibazaar/boibazaar/internal/store/sqlite"
	"github.com/boibazaar/boibazaar/internal/validation"
)

// fixedNow is the clock used by every service test.
var fixedNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

type testServices struct {
	books   *BookService
	borrows *BorrowService
	index   *search.Index
	store   *sqlite.Store
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "library.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	idx, err := search.New(logger)
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	v := validation.New(validation.WithClock(func() time.Time { return fixedNow }), validation.WithLocation(time.UTC))

	books := NewBookService(st, idx, v, logger)
	books.now = func() time.Time { return fixedNow }
	borrows := NewBorrowService(st, idx, v, logger)
	borrows.now = func() time.Time { return fixedNow }

	return &testServices{books: books, borrows: borrows, index: idx, store: st}
}
