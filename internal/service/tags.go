package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/editdropapp/editdrop-server/internal/domain"
)

// TagStats holds the aggregated tag counts for the whole catalog. Total is
// the number of edits in the catalog, including untagged ones, not a tag
// count.
type TagStats struct {
	Tags  []domain.TagCount
	Total int
}

// TagStats aggregates tag usage across every edit in the store. Tags
// compare exactly, so "VHS" and "vhs" count separately, and an edit
// carrying the same tag twice contributes two occurrences. Results are
// ordered by count descending with tag name ascending as the tiebreak.
func (s *CatalogService) TagStats(ctx context.Context) (*TagStats, error) {
	edits, err := s.store.ListEdits(ctx)
	if err != nil {
		return nil, fmt.Errorf("list edits: %w", err)
	}

	counts := make(map[string]int)
	for _, edit := range edits {
		for _, tag := range edit.Tags {
			counts[tag]++
		}
	}

	tags := make([]domain.TagCount, 0, len(counts))
	for tag, count := range counts {
		tags = append(tags, domain.TagCount{Tag: tag, Count: count})
	}

	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})

	return &TagStats{Tags: tags, Total: len(edits)}, nil
}
