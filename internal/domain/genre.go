package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Genre classifies a book.
type Genre string

// Known genres.
const (
	GenreFiction    Genre = "FICTION"
	GenreNonFiction Genre = "NON_FICTION"
	GenreScience    Genre = "SCIENCE"
	GenreHistory    Genre = "HISTORY"
	GenreBiography  Genre = "BIOGRAPHY"
	GenreFantasy    Genre = "FANTASY"
)

// Genres lists every known genre in display order.
func Genres() []Genre {
	return []Genre{GenreFiction, GenreNonFiction, GenreScience, GenreHistory, GenreBiography, GenreFantasy}
}

// IsValid reports whether g is a known genre.
func (g Genre) IsValid() bool {
	for _, known := range Genres() {
		if g == known {
			return true
		}
	}
	return false
}

// labels is filled once at init. A cases.Caser is stateful and cannot be
// shared between goroutines.
var labels = map[Genre]string{}

func init() {
	for _, g := range Genres() {
		labels[g] = titleCase(g)
	}
}

func titleCase(g Genre) string {
	return cases.Title(language.English).String(strings.ReplaceAll(strings.ToLower(string(g)), "_", " "))
}

// Label renders the genre for people: NON_FICTION becomes "Non Fiction".
func (g Genre) Label() string {
	if l, ok := labels[g]; ok {
		return l
	}
	return titleCase(g)
}
