package store

import "github.com/boibazaar/boibazaar/internal/domain"

// Sort columns accepted by BookQuery.SortBy.
const (
	SortCreatedAt = "createdAt"
	SortTitle     = "title"
	SortAuthor    = "author"
	SortCopies    = "copies"
)

// BookQuery narrows and orders a book listing.
type BookQuery struct {
	Genre  domain.Genre
	SortBy string // one of the Sort* constants; empty means createdAt
	Desc   bool
	Limit  int // 0 means no limit

	// IDs restricts the listing to these books when non-nil.
	IDs []string
}
