package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// SearchBooks returns the IDs of books matching text, best match first.
// A limit of 0 returns every match.
func (s *Index) SearchBooks(ctx context.Context, text string, limit int) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		count, err := s.index.DocCount()
		if err != nil {
			return nil, fmt.Errorf("count documents: %w", err)
		}
		limit = max(int(count), 1)
	}

	req := bleve.NewSearchRequestOptions(buildBookQuery(text), limit, 0, false)
	result, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	ids := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

// buildBookQuery matches title (boosted), author and description, tolerates
// one typo in the title, supports title prefixes and exact ISBNs.
func buildBookQuery(text string) query.Query {
	titleMatch := bleve.NewMatchQuery(text)
	titleMatch.SetField("title")
	titleMatch.SetBoost(3.0)

	authorMatch := bleve.NewMatchQuery(text)
	authorMatch.SetField("author")
	authorMatch.SetBoost(2.0)

	descMatch := bleve.NewMatchQuery(text)
	descMatch.SetField("description")

	fuzzy := bleve.NewFuzzyQuery(strings.ToLower(text))
	fuzzy.SetFuzziness(1)
	fuzzy.SetField("title")
	fuzzy.SetBoost(0.8)

	isbn := bleve.NewTermQuery(normalizeISBN(text))
	isbn.SetField("isbn")
	isbn.SetBoost(5.0)

	queries := []query.Query{titleMatch, authorMatch, descMatch, fuzzy, isbn}

	if len(text) >= 2 {
		prefix := bleve.NewPrefixQuery(strings.ToLower(text))
		prefix.SetField("title")
		prefix.SetBoost(0.5)
		queries = append(queries, prefix)
	}

	return bleve.NewDisjunctionQuery(queries...)
}
