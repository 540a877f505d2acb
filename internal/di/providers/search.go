package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/boibazaar/boibazaar/internal/logger"
	"github.com/boibazaar/boibazaar/internal/search"
	"github.com/boibazaar/boibazaar/internal/store"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the in-memory Bleve index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.New(log.Logger)
	if err != nil {
		return nil, err
	}

	return &SearchIndexHandle{Index: index}, nil
}

// RebuildSearchIndex fills the index from the store. The index lives in
// memory, so this runs on every start.
func RebuildSearchIndex(ctx context.Context, i do.Injector) error {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	books, err := storeHandle.ListBooks(ctx, store.BookQuery{})
	if err != nil {
		return err
	}
	if err := indexHandle.Rebuild(books); err != nil {
		return err
	}

	count, _ := indexHandle.DocumentCount()
	log.Info("Search index rebuilt", "documents", count)
	return nil
}
