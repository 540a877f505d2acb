package genre

import "github.com/boibazaar/boibazaar/internal/domain"

// aliases maps slugs to catalog genres. Every genre's own slug is added in init.
var aliases = map[string]domain.Genre{
	"fiction":             domain.GenreFiction,
	"novel":               domain.GenreFiction,
	"novels":              domain.GenreFiction,
	"literature":          domain.GenreFiction,
	"literature-fiction":  domain.GenreFiction,
	"literary-fiction":    domain.GenreFiction,
	"nonfiction":          domain.GenreNonFiction,
	"non-fiction":         domain.GenreNonFiction,
	"self-help":           domain.GenreNonFiction,
	"essays":              domain.GenreNonFiction,
	"science":             domain.GenreScience,
	"sci":                 domain.GenreScience,
	"popular-science":     domain.GenreScience,
	"science-technology":  domain.GenreScience,
	"history":             domain.GenreHistory,
	"historical":          domain.GenreHistory,
	"world-history":       domain.GenreHistory,
	"biography":           domain.GenreBiography,
	"biographies":         domain.GenreBiography,
	"biographies-memoirs": domain.GenreBiography,
	"memoir":              domain.GenreBiography,
	"memoirs":             domain.GenreBiography,
	"autobiography":       domain.GenreBiography,
	"fantasy":             domain.GenreFantasy,
	"epic-fantasy":        domain.GenreFantasy,
	"high-fantasy":        domain.GenreFantasy,
	"urban-fantasy":       domain.GenreFantasy,
	"sword-and-sorcery":   domain.GenreFantasy,
}

func init() {
	for _, g := range domain.Genres() {
		aliases[Slugify(string(g))] = g
		aliases[Slugify(g.Label())] = g
	}
}

// Parse maps a free-form genre name to a catalog genre.
// Empty or unrecognised input reports false.
func Parse(raw string) (domain.Genre, bool) {
	if g := domain.Genre(raw); g.IsValid() {
		return g, true
	}
	g, ok := aliases[Slugify(raw)]
	return g, ok
}
