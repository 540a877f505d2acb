// Package domain contains the catalog records shared by the web front end,
// the library API client and the reference library service.
package domain

import "time"

// Book is a catalog entry. JSON names follow the library API.
type Book struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Genre       Genre     `json:"genre"`
	ISBN        string    `json:"isbn"`
	Description string    `json:"description"`
	Copies      int       `json:"copies"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// AvailableFor derives availability from a copy count.
func AvailableFor(copies int) bool {
	return copies > 0
}

// CanBorrow reports whether quantity copies can be lent right now.
func (b *Book) CanBorrow(quantity int) bool {
	return b.Available && quantity >= 1 && quantity <= b.Copies
}

// Lend removes quantity copies and recomputes availability.
// Callers check CanBorrow first.
func (b *Book) Lend(quantity int) {
	b.Copies -= quantity
	b.Available = AvailableFor(b.Copies)
}

// BookInput is the writable part of a book, sent on create and update.
type BookInput struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       Genre  `json:"genre"`
	ISBN        string `json:"isbn"`
	Description string `json:"description"`
	Copies      int    `json:"copies"`
	Available   bool   `json:"available"`
}

// Apply copies the input onto b.
func (in BookInput) Apply(b *Book) {
	b.Title = in.Title
	b.Author = in.Author
	b.Genre = in.Genre
	b.ISBN = in.ISBN
	b.Description = in.Description
	b.Copies = in.Copies
	b.Available = in.Available
}
