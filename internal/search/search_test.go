package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/editdropapp/editdrop-server/internal/domain"
)

// setupTestIndex creates an in-memory search index for testing.
func setupTestIndex(t *testing.T) *Index {
	t.Helper()

	index, err := NewIndex(Options{})
	require.NoError(t, err)

	t.Cleanup(func() { _ = index.Close() })
	return index
}

func indexEdit(t *testing.T, index *Index, id, title, author string, rating int, createdAt time.Time, tags ...string) {
	t.Helper()

	edit := &domain.Edit{
		Title:  title,
		Author: author,
		UserID: "usr-1",
		Video:  "videos/" + id + ".mp4",
		Source: domain.SourceInternal,
		Tags:   tags,
		Rating: rating,
	}
	edit.ID = id
	edit.CreatedAt = createdAt
	edit.UpdatedAt = createdAt

	require.NoError(t, index.IndexEdit(EditToDocument(edit)))
}

func TestNewIndex(t *testing.T) {
	index := setupTestIndex(t)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearch_TermIsCaseInsensitiveSubstring(t *testing.T) {
	index := setupTestIndex(t)
	now := time.Now()

	indexEdit(t, index, "edt-1", "Midnight Run", "Casey", 5, now)
	indexEdit(t, index, "edt-2", "Sunset Drive", "Morgan", 5, now)

	for _, term := range []string{"night", "NIGHT", "Midnight run"} {
		result, err := index.Search(context.Background(), Params{Term: term, Limit: 10})
		require.NoError(t, err)
		require.Equal(t, 1, result.Total, "term %q", term)
		assert.Equal(t, "edt-1", result.IDs[0])
	}
}

func TestSearch_TermMatchesAuthor(t *testing.T) {
	index := setupTestIndex(t)
	now := time.Now()

	indexEdit(t, index, "edt-1", "Midnight Run", "Casey", 5, now)
	indexEdit(t, index, "edt-2", "Sunset Drive", "Morgan", 5, now)

	result, err := index.Search(context.Background(), Params{Term: "morg", Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "edt-2", result.IDs[0])
}

func TestSearch_TermMatchesTag(t *testing.T) {
	index := setupTestIndex(t)
	now := time.Now()

	indexEdit(t, index, "edt-1", "Midnight Run", "Casey", 5, now, "Cinematic")
	indexEdit(t, index, "edt-2", "Sunset Drive", "Morgan", 5, now, "vlog")

	result, err := index.Search(context.Background(), Params{Term: "cine", Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "edt-1", result.IDs[0])
}

func TestSearch_TagIsExactAndCaseSensitive(t *testing.T) {
	index := setupTestIndex(t)
	now := time.Now()

	indexEdit(t, index, "edt-1", "One", "a", 5, now, "slow-motion", "vhs")
	indexEdit(t, index, "edt-2", "Two", "b", 5, now, "Slow-Motion")

	result, err := index.Search(context.Background(), Params{Tag: "slow-motion", Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "edt-1", result.IDs[0])

	// Partial tag values must not match.
	result, err = index.Search(context.Background(), Params{Tag: "slow", Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, result.Total)
}

func TestSearch_RatingEquality(t *testing.T) {
	index := setupTestIndex(t)
	now := time.Now()

	indexEdit(t, index, "edt-1", "One", "a", 0, now)
	indexEdit(t, index, "edt-2", "Two", "b", 11, now)

	rating := 11
	result, err := index.Search(context.Background(), Params{Rating: &rating, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "edt-2", result.IDs[0])

	zero := 0
	result, err = index.Search(context.Background(), Params{Rating: &zero, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "edt-1", result.IDs[0])
}

func TestSearch_FiltersCombineWithAnd(t *testing.T) {
	index := setupTestIndex(t)
	now := time.Now()

	indexEdit(t, index, "edt-1", "Midnight Run", "Casey", 7, now, "vhs")
	indexEdit(t, index, "edt-2", "Midnight Sky", "Casey", 3, now, "vhs")
	indexEdit(t, index, "edt-3", "Midnight Sun", "Casey", 7, now)

	rating := 7
	result, err := index.Search(context.Background(), Params{
		Term:   "midnight",
		Tag:    "vhs",
		Rating: &rating,
		Limit:  10,
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "edt-1", result.IDs[0])
}

func TestSearch_NewestFirstWithIDTiebreak(t *testing.T) {
	index := setupTestIndex(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	indexEdit(t, index, "edt-old", "One", "a", 5, base)
	indexEdit(t, index, "edt-b", "Two", "b", 5, base.Add(time.Hour))
	indexEdit(t, index, "edt-a", "Three", "c", 5, base.Add(time.Hour))

	result, err := index.Search(context.Background(), Params{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 3, result.Total)
	assert.Equal(t, []string{"edt-a", "edt-b", "edt-old"}, result.IDs)
}

func TestSearch_PaginationAndTotal(t *testing.T) {
	index := setupTestIndex(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := range 5 {
		indexEdit(t, index, string(rune('a'+i)), "Clip", "x", 5, base.Add(time.Duration(i)*time.Minute))
	}

	result, err := index.Search(context.Background(), Params{Skip: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, result.Total)
	assert.Len(t, result.IDs, 2)
	assert.Equal(t, []string{"c", "b"}, result.IDs)
}

func TestSearch_WildcardCharactersInTermAreLiteral(t *testing.T) {
	index := setupTestIndex(t)
	now := time.Now()

	indexEdit(t, index, "edt-1", "What? A Clip", "a", 5, now)
	indexEdit(t, index, "edt-2", "Whats A Clip", "b", 5, now)

	result, err := index.Search(context.Background(), Params{Term: "what?", Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "edt-1", result.IDs[0])
}

func TestDeleteEdit(t *testing.T) {
	index := setupTestIndex(t)

	indexEdit(t, index, "edt-1", "One", "a", 5, time.Now())
	require.NoError(t, index.DeleteEdit("edt-1"))

	result, err := index.Search(context.Background(), Params{Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, result.Total)
}

func TestIndexEdits_Batch(t *testing.T) {
	index := setupTestIndex(t)
	now := time.Now()

	docs := make([]*EditDocument, 0, 3)
	for _, id := range []string{"edt-1", "edt-2", "edt-3"} {
		edit := &domain.Edit{Title: "Clip " + id, Author: "a", Rating: 5}
		edit.ID = id
		edit.CreatedAt = now
		docs = append(docs, EditToDocument(edit))
	}

	require.NoError(t, index.IndexEdits(docs))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}
