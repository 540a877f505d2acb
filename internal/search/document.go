// Package search provides full-text catalog search using Bleve.
//
// The index lives in memory and is rebuilt from the store at start-up; the
// store stays the source of truth and search only narrows listings to IDs.
package search

import (
	"strings"

	"github.com/boibazaar/boibazaar/internal/domain"
)

// BookDocument is the indexed view of a book.
type BookDocument struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description,omitempty"`
	ISBN        string `json:"isbn"`
	Genre       string `json:"genre"`
}

// BookToDocument converts a book for indexing.
func BookToDocument(b *domain.Book) *BookDocument {
	return &BookDocument{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		ISBN:        normalizeISBN(b.ISBN),
		Genre:       string(b.Genre),
	}
}

// ToMap converts the document to a map whose keys match the index mapping.
func (d *BookDocument) ToMap() map[string]any {
	return map[string]any{
		"id":          d.ID,
		"title":       d.Title,
		"author":      d.Author,
		"description": d.Description,
		"isbn":        d.ISBN,
		"genre":       d.Genre,
	}
}

// normalizeISBN drops dashes and spaces so "978-0-441-17271-9" matches "9780441172719".
func normalizeISBN(isbn string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, strings.ToUpper(isbn))
}
