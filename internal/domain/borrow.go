package domain

import (
	"encoding/json"
	"time"
)

// DateLayout is the wire and form format for due dates.
// A due date is a calendar day, carried as midnight UTC.
const DateLayout = "2006-01-02"

// BorrowStatus is the lifecycle state of a borrow.
type BorrowStatus string

// Borrow statuses.
const (
	BorrowStatusBorrowed BorrowStatus = "BORROWED"
	BorrowStatusReturned BorrowStatus = "RETURNED"
	BorrowStatusOverdue  BorrowStatus = "OVERDUE"
)

// Borrow records copies of one book lent until a due date.
type Borrow struct {
	ID        string       `json:"_id"`
	BookID    string       `json:"book"`
	Quantity  int          `json:"quantity"`
	DueDate   time.Time    `json:"dueDate"`
	Status    BorrowStatus `json:"status,omitempty"`
	CreatedAt time.Time    `json:"createdAt,omitzero"`
}

// BorrowInput is the request to borrow copies of a book.
type BorrowInput struct {
	BookID   string    `json:"book"`
	Quantity int       `json:"quantity"`
	DueDate  time.Time `json:"dueDate"`
}

// MarshalJSON sends the due date as a bare YYYY-MM-DD day so that client
// and server agree on it whatever their time zones.
func (in BorrowInput) MarshalJSON() ([]byte, error) {
	wire := struct {
		BookID   string `json:"book"`
		Quantity int    `json:"quantity"`
		DueDate  string `json:"dueDate,omitempty"`
	}{BookID: in.BookID, Quantity: in.Quantity}
	if !in.DueDate.IsZero() {
		wire.DueDate = in.DueDate.Format(DateLayout)
	}
	return json.Marshal(wire)
}

// SummaryBook is the slice of a book shown in the borrow summary.
type SummaryBook struct {
	Title      string `json:"title"`
	ISBN       string `json:"isbn"`
	CoverImage string `json:"coverImage,omitempty"`
}

// BorrowSummary aggregates every borrow of one book.
type BorrowSummary struct {
	ID            string       `json:"_id,omitempty"`
	Book          SummaryBook  `json:"book"`
	TotalQuantity int          `json:"totalQuantity"`
	DueDate       *time.Time   `json:"dueDate,omitempty"`
	Status        BorrowStatus `json:"status,omitempty"`
}

// DisplayStatus is the badge shown for a summary row.
// No status means no badge. A due date before today overrides the status.
// Unknown statuses render no badge.
func (s BorrowSummary) DisplayStatus(now time.Time) BorrowStatus {
	if s.Status == "" {
		return ""
	}
	if s.DueDate != nil && BeforeDay(*s.DueDate, now) {
		return BorrowStatusOverdue
	}
	switch s.Status {
	case BorrowStatusBorrowed, BorrowStatusReturned, BorrowStatusOverdue:
		return s.Status
	default:
		return ""
	}
}

// DayOf returns the calendar day of t, read in t's own location, as
// midnight UTC.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// BeforeDay reports whether t falls on a calendar day before ref's day.
// Each is read in its own location: a due date is a day, not an instant.
func BeforeDay(t, ref time.Time) bool {
	return DayOf(t).Before(DayOf(ref))
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
