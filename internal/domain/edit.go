package domain

import "fmt"

// Source identifies where an edit's video lives.
type Source string

const (
	// SourceExternal means the video locator is an external platform ID.
	SourceExternal Source = "external-platform"
	// SourceInternal means the video locator is a path in our own blob storage.
	SourceInternal Source = "internal-storage"
)

// Valid reports whether s is a known source kind.
func (s Source) Valid() bool {
	return s == SourceExternal || s == SourceInternal
}

// Rating bounds. Inclusive on both ends, an homage to amps that go to eleven.
const (
	MinRating = 0
	MaxRating = 11
)

// Edit is a single catalog entry: one submitted video plus its metadata.
//
// Author is the submitter's display name, denormalized from the owning
// account at creation time. UserID references the owning account and is
// immutable after creation. Tags are a multiset: duplicates are permitted
// at write time and counted individually by aggregation.
type Edit struct {
	Record
	Title  string   `json:"title"`
	Author string   `json:"author"`
	UserID string   `json:"user_id"`
	Video  string   `json:"video"`
	Source Source   `json:"source"`
	Tags   []string `json:"tags,omitempty"`
	Rating int      `json:"rating"`
}

// Validate checks the invariants that must hold for every stored edit.
func (e *Edit) Validate() error {
	if e.Title == "" {
		return fmt.Errorf("title is required")
	}
	if e.UserID == "" {
		return fmt.Errorf("owning account reference is required")
	}
	if e.Video == "" {
		return fmt.Errorf("video locator is required")
	}
	if !e.Source.Valid() {
		return fmt.Errorf("unknown video source %q", e.Source)
	}
	if e.Rating < MinRating || e.Rating > MaxRating {
		return fmt.Errorf("rating %d outside [%d,%d]", e.Rating, MinRating, MaxRating)
	}
	return nil
}

// HasTag reports whether the edit carries the exact tag.
func (e *Edit) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// TagCount is a derived aggregation row: one tag and the number of edits
// carrying it. Never persisted; recomputed per request.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
