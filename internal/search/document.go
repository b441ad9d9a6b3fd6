// Package search provides the Bleve-backed catalog index. It supports
// case-insensitive substring matching on title, author, and tags, exact
// tag membership, and rating equality, with newest-first ordering.
package search

import (
	"github.com/editdropapp/editdrop-server/internal/domain"
)

// EditDocument is the document structure for the Bleve index.
//
// Title and author are indexed whole and lowercased, so wildcard queries
// give substring semantics without tokenization artifacts. Tags are
// indexed twice: original case for exact membership, and folded under
// tags_folded so the free-text term can match inside them.
type EditDocument struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Tags      []string `json:"tags,omitempty"`
	Rating    int      `json:"rating"`
	CreatedAt int64    `json:"created_at"` // Unix millis
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *EditDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"title":      d.Title,
		"author":     d.Author,
		"rating":     d.Rating,
		"created_at": d.CreatedAt,
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
		m["tags_folded"] = d.Tags
	}
	return m
}

// EditToDocument converts a domain Edit to its index document.
func EditToDocument(edit *domain.Edit) *EditDocument {
	return &EditDocument{
		ID:        edit.ID,
		Title:     edit.Title,
		Author:    edit.Author,
		Tags:      edit.Tags,
		Rating:    edit.Rating,
		CreatedAt: edit.CreatedAt.UnixMilli(),
	}
}
