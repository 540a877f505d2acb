package domain

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenre_IsValidAndLabel(t *testing.T) {
	tests := []struct {
		genre Genre
		valid bool
		label string
	}{
		{GenreFiction, true, "Fiction"},
		{GenreNonFiction, true, "Non Fiction"},
		{GenreScience, true, "Science"},
		{GenreHistory, true, "History"},
		{GenreBiography, true, "Biography"},
		{GenreFantasy, true, "Fantasy"},
		{Genre("POETRY"), false, "Poetry"},
		{Genre(""), false, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.genre), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.genre.IsValid())
			assert.Equal(t, tt.label, tt.genre.Label())
		})
	}

	assert.Len(t, Genres(), 6)
}

func TestGenre_LabelConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				for _, g := range append(Genres(), Genre("SCI_FI")) {
					_ = g.Label()
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, "Non Fiction", GenreNonFiction.Label())
	assert.Equal(t, "Sci Fi", Genre("SCI_FI").Label())
}

func TestBook_CanBorrowAndLend(t *testing.T) {
	b := &Book{Copies: 3, Available: true}

	assert.False(t, b.CanBorrow(0))
	assert.True(t, b.CanBorrow(1))
	assert.True(t, b.CanBorrow(3))
	assert.False(t, b.CanBorrow(4))

	b.Lend(3)
	assert.Equal(t, 0, b.Copies)
	assert.False(t, b.Available)
	assert.False(t, b.CanBorrow(1))
}

func TestAvailableFor(t *testing.T) {
	assert.False(t, AvailableFor(0))
	assert.False(t, AvailableFor(-1))
	assert.True(t, AvailableFor(1))
}

func TestBookJSON_UsesAPIFieldNames(t *testing.T) {
	b := Book{ID: "book-1", Title: "Dune", Genre: GenreFantasy, Copies: 2, Available: true}

	data, err := json.Marshal(b)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"_id":"book-1"`)
	assert.Contains(t, string(data), `"genre":"FANTASY"`)
	assert.NotContains(t, string(data), "createdAt")
}

func TestBeforeDay(t *testing.T) {
	loc := time.FixedZone("BDT", 6*60*60)
	now := time.Date(2026, 3, 15, 9, 30, 0, 0, loc)

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"yesterday", time.Date(2026, 3, 14, 23, 59, 0, 0, loc), true},
		{"earlier today", time.Date(2026, 3, 15, 0, 0, 0, 0, loc), false},
		{"later today", time.Date(2026, 3, 15, 23, 0, 0, 0, loc), false},
		{"tomorrow", time.Date(2026, 3, 16, 0, 0, 0, 0, loc), false},
		{"last year same day", time.Date(2025, 3, 15, 12, 0, 0, 0, loc), true},
		{"earlier month later day", time.Date(2026, 2, 28, 12, 0, 0, 0, loc), true},
		// A due date is the day it names, not an instant shifted into ref's zone.
		{"utc day before ref day", time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC), true},
		{"utc day equal to ref day", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BeforeDay(tt.t, now))
		})
	}

	// West of UTC, midnight UTC of the 15th is the evening of the 14th.
	west := time.Date(2026, 3, 15, 9, 30, 0, 0, time.FixedZone("EST", -5*60*60))
	assert.False(t, BeforeDay(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), west))
}

func TestDayOf(t *testing.T) {
	bdt := time.FixedZone("BDT", 6*60*60)
	assert.Equal(t, time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC), DayOf(time.Date(2025, 6, 20, 0, 0, 0, 0, bdt)))
	assert.Equal(t, time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC), DayOf(time.Date(2025, 6, 19, 23, 59, 0, 0, time.UTC)))
}

func TestBorrowInput_MarshalJSON(t *testing.T) {
	bdt := time.FixedZone("BDT", 6*60*60)
	in := BorrowInput{BookID: "b1", Quantity: 2, DueDate: time.Date(2025, 6, 20, 0, 0, 0, 0, bdt)}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"book":"b1","quantity":2,"dueDate":"2025-06-20"}`, string(data))

	data, err = json.Marshal(BorrowInput{BookID: "b1", Quantity: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"book":"b1","quantity":1}`, string(data))
}

func TestBorrowSummary_DisplayStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 7)

	tests := []struct {
		name    string
		summary BorrowSummary
		want    BorrowStatus
	}{
		{"no status renders nothing", BorrowSummary{DueDate: &past}, ""},
		{"past due is overdue", BorrowSummary{Status: BorrowStatusBorrowed, DueDate: &past}, BorrowStatusOverdue},
		{"returned but past due is overdue", BorrowSummary{Status: BorrowStatusReturned, DueDate: &past}, BorrowStatusOverdue},
		{"future due is borrowed", BorrowSummary{Status: BorrowStatusBorrowed, DueDate: &future}, BorrowStatusBorrowed},
		{"due today is not overdue", BorrowSummary{Status: BorrowStatusBorrowed, DueDate: &now}, BorrowStatusBorrowed},
		{"no due date keeps status", BorrowSummary{Status: BorrowStatusReturned}, BorrowStatusReturned},
		{"unknown status renders nothing", BorrowSummary{Status: "LOST", DueDate: &future}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.summary.DisplayStatus(now))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-04-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("04/01/2026")
	assert.Error(t, err)
}
