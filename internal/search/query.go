package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a catalog search. Zero-valued filters are skipped, so
// an empty Params matches the whole catalog.
type Params struct {
	Term   string // Case-insensitive substring over title, author, and tags
	Tag    string // Exact, case-sensitive tag membership
	Rating *int   // Exact rating match when set

	Skip  int
	Limit int
}

// Result holds one page of matches plus the total before paging.
type Result struct {
	IDs   []string
	Total int
}

// Search executes a catalog query. Results are ordered newest first with
// document ID as the tiebreak. Total reflects the full match count, not
// the page size.
func (s *Index) Search(ctx context.Context, params Params) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	searchQuery := buildQuery(params)

	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Skip, false)
	searchRequest.SortBy([]string{"-created_at", "_id"})

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		IDs:   make([]string, 0, len(searchResult.Hits)),
		Total: int(searchResult.Total),
	}
	for _, hit := range searchResult.Hits {
		result.IDs = append(result.IDs, hit.ID)
	}
	return result, nil
}

// buildQuery constructs the Bleve query from params. Filters combine with
// AND; the term matches when title, author, or any tag contains it.
func buildQuery(params Params) query.Query {
	var queries []query.Query

	if params.Term != "" {
		pattern := "*" + escapeWildcard(strings.ToLower(params.Term)) + "*"

		titleQuery := bleve.NewWildcardQuery(pattern)
		titleQuery.SetField("title")

		authorQuery := bleve.NewWildcardQuery(pattern)
		authorQuery.SetField("author")

		tagQuery := bleve.NewWildcardQuery(pattern)
		tagQuery.SetField("tags_folded")

		queries = append(queries, bleve.NewDisjunctionQuery(titleQuery, authorQuery, tagQuery))
	}

	if params.Tag != "" {
		tagQuery := bleve.NewTermQuery(params.Tag)
		tagQuery.SetField("tags")
		queries = append(queries, tagQuery)
	}

	if params.Rating != nil {
		r := float64(*params.Rating)
		incl := true
		ratingQuery := bleve.NewNumericRangeInclusiveQuery(&r, &r, &incl, &incl)
		ratingQuery.SetField("rating")
		queries = append(queries, ratingQuery)
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	return bleve.NewConjunctionQuery(queries...)
}

// escapeWildcard neutralizes wildcard metacharacters in user input so the
// term matches literally.
func escapeWildcard(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)
	return r.Replace(term)
}
