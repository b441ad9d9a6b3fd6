package search

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/single"
	"github.com/blevesearch/bleve/v2/mapping"
)

// keywordLowerName is a custom analyzer that keeps each field value as a
// single token, lowercased. Wildcard queries against these fields behave
// like case-insensitive substring matches over the whole value.
const keywordLowerName = "keyword_lower"

// buildIndexMapping creates the Bleve index mapping for edit documents.
//
// The mapping is designed with these priorities:
//  1. Case-insensitive substring search on title and author
//  2. Exact, case-sensitive tag membership
//  3. Rating equality via numeric range queries
//  4. Newest-first sorting on created_at
func buildIndexMapping() (mapping.IndexMapping, error) {
	indexMapping := bleve.NewIndexMapping()

	err := indexMapping.AddCustomAnalyzer(keywordLowerName, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     single.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, fmt.Errorf("register analyzer: %w", err)
	}

	docMapping := bleve.NewDocumentMapping()

	// ID - stored but not analyzed
	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	// Title - primary search target
	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = keywordLowerName
	titleFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("title", titleFieldMapping)

	// Author - second search target
	authorFieldMapping := bleve.NewTextFieldMapping()
	authorFieldMapping.Analyzer = keywordLowerName
	authorFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("author", authorFieldMapping)

	// Tags - keyword analyzer keeps values intact, case preserved
	tagsFieldMapping := bleve.NewTextFieldMapping()
	tagsFieldMapping.Analyzer = keyword.Name
	tagsFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("tags", tagsFieldMapping)

	// Tags again, folded, so the free-text term can substring-match them
	tagsFoldedFieldMapping := bleve.NewTextFieldMapping()
	tagsFoldedFieldMapping.Analyzer = keywordLowerName
	docMapping.AddFieldMappingsAt("tags_folded", tagsFoldedFieldMapping)

	// Rating - equality filter via inclusive range
	ratingFieldMapping := bleve.NewNumericFieldMapping()
	ratingFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("rating", ratingFieldMapping)

	// Timestamp - for newest-first sorting
	createdAtFieldMapping := bleve.NewNumericFieldMapping()
	createdAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("created_at", createdAtFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping, nil
}
