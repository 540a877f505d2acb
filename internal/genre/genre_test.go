package genre

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boibazaar/boibazaar/internal/domain"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Science Fiction", "science-fiction"},
		{"Biographies & Memoirs", "biographies-memoirs"},
		{"NON_FICTION", "non-fiction"},
		{"  --Fantasy--  ", "fantasy"},
		{"Histoire de l'été", "histoire-de-l-ete"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   domain.Genre
		wantOK bool
	}{
		{"SCIENCE", domain.GenreScience, true},
		{"science", domain.GenreScience, true},
		{"Non-Fiction", domain.GenreNonFiction, true},
		{"nonfiction", domain.GenreNonFiction, true},
		{"non fiction", domain.GenreNonFiction, true},
		{"Biographies & Memoirs", domain.GenreBiography, true},
		{"Memoir", domain.GenreBiography, true},
		{"Épic Fantasy", domain.GenreFantasy, true},
		{"poetry", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		assert.Equal(t, tt.wantOK, ok, "Parse(%q)", tt.in)
		assert.Equal(t, tt.want, got, "Parse(%q)", tt.in)
	}
}
