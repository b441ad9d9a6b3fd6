package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/editdropapp/editdrop-server/internal/errors"
)

func TestCreateEdit_Validation(t *testing.T) {
	env := setupTestEnv(t)
	userID := registerTestUser(t, env, "ada@example.com")

	tests := []struct {
		name string
		req  CreateEditRequest
	}{
		{
			name: "missing title",
			req: CreateEditRequest{
				Author: "Ada",
				Video:  "https://example.com/v.mp4",
				Source: "external-platform",
			},
		},
		{
			name: "missing author",
			req: CreateEditRequest{
				Title:  "Clip",
				Video:  "https://example.com/v.mp4",
				Source: "external-platform",
			},
		},
		{
			name: "bad source",
			req: CreateEditRequest{
				Title:  "Clip",
				Author: "Ada",
				Video:  "https://example.com/v.mp4",
				Source: "youtube",
			},
		},
		{
			name: "rating above range",
			req: CreateEditRequest{
				Title:  "Clip",
				Author: "Ada",
				Video:  "https://example.com/v.mp4",
				Source: "external-platform",
				Rating: 12,
			},
		},
		{
			name: "rating below range",
			req: CreateEditRequest{
				Title:  "Clip",
				Author: "Ada",
				Video:  "https://example.com/v.mp4",
				Source: "external-platform",
				Rating: -1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.catalog.CreateEdit(context.Background(), userID, tt.req)
			require.Error(t, err)
			assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation), "want validation error, got %v", err)
		})
	}
}

func TestCreateEdit_RatingBoundaries(t *testing.T) {
	env := setupTestEnv(t)
	userID := registerTestUser(t, env, "ada@example.com")

	for _, rating := range []int{0, 11} {
		_, err := env.catalog.CreateEdit(context.Background(), userID, CreateEditRequest{
			Title:  "Clip",
			Author: "Ada",
			Video:  "https://example.com/v.mp4",
			Source: "external-platform",
			Rating: rating,
		})
		require.NoError(t, err, "rating %d", rating)
	}
}

func TestCreateEdit_NormalizesTags(t *testing.T) {
	env := setupTestEnv(t)
	userID := registerTestUser(t, env, "ada@example.com")

	edit, err := env.catalog.CreateEdit(context.Background(), userID, CreateEditRequest{
		Title:  "Clip",
		Author: "Ada",
		Video:  "https://example.com/v.mp4",
		Source: "external-platform",
		Tags:   []string{" vhs ", "vhs", "slow-motion", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"vhs", "vhs", "slow-motion"}, edit.Tags)
}

func TestSearch_FindsNewlyCreatedEdit(t *testing.T) {
	env := setupTestEnv(t)
	userID := registerTestUser(t, env, "ada@example.com")

	editID := createTestEdit(t, env, userID, "Midnight Run", "vhs")

	result, err := env.catalog.Search(context.Background(), SearchParams{Term: "midnight"})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, editID, result.Edits[0].ID)
}

func TestSearch_DeletedEditDisappears(t *testing.T) {
	env := setupTestEnv(t)
	userID := registerTestUser(t, env, "ada@example.com")

	editID := createTestEdit(t, env, userID, "Midnight Run")
	require.NoError(t, env.catalog.DeleteEdit(context.Background(), userID, false, editID))

	result, err := env.catalog.Search(context.Background(), SearchParams{Term: "midnight"})
	require.NoError(t, err)
	assert.Zero(t, result.Total)
}

func TestSearch_InvalidPagination(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.catalog.Search(context.Background(), SearchParams{Skip: -1})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	_, err = env.catalog.Search(context.Background(), SearchParams{Limit: -5})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestSearch_DefaultLimit(t *testing.T) {
	env := setupTestEnv(t)
	userID := registerTestUser(t, env, "ada@example.com")

	for range 10 {
		createTestEdit(t, env, userID, "Clip")
	}

	result, err := env.catalog.Search(context.Background(), SearchParams{})
	require.NoError(t, err)
	assert.Equal(t, 10, result.Total)
	assert.Len(t, result.Edits, DefaultPageLimit)
}

func TestUpdateEdit_Ownership(t *testing.T) {
	env := setupTestEnv(t)
	owner := registerTestUser(t, env, "owner@example.com")
	other := registerTestUser(t, env, "other@example.com")

	editID := createTestEdit(t, env, owner, "Clip")

	newTitle := "Renamed"
	_, err := env.catalog.UpdateEdit(context.Background(), other, false, editID, UpdateEditRequest{Title: &newTitle})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrForbidden))

	// Admin can update someone else's edit.
	updated, err := env.catalog.UpdateEdit(context.Background(), other, true, editID, UpdateEditRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestDeleteEdit_Ownership(t *testing.T) {
	env := setupTestEnv(t)
	owner := registerTestUser(t, env, "owner@example.com")
	other := registerTestUser(t, env, "other@example.com")

	editID := createTestEdit(t, env, owner, "Clip")

	err := env.catalog.DeleteEdit(context.Background(), other, false, editID)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrForbidden))

	require.NoError(t, env.catalog.DeleteEdit(context.Background(), owner, false, editID))

	_, err = env.catalog.GetEdit(context.Background(), editID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestDeleteEdit_RemovesComments(t *testing.T) {
	env := setupTestEnv(t)
	userID := registerTestUser(t, env, "ada@example.com")

	editID := createTestEdit(t, env, userID, "Clip")
	_, err := env.commentsS.Create(context.Background(), userID, editID, "nice")
	require.NoError(t, err)

	require.NoError(t, env.catalog.DeleteEdit(context.Background(), userID, false, editID))

	comments, err := env.comments.ListCommentsByEdit(context.Background(), editID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestPaginated(t *testing.T) {
	env := setupTestEnv(t)
	userID := registerTestUser(t, env, "ada@example.com")

	for range 12 {
		createTestEdit(t, env, userID, "Clip")
	}

	result, err := env.catalog.Paginated(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 12, result.Total)
	assert.Len(t, result.Edits, DefaultPageLimit)

	result, err = env.catalog.Paginated(context.Background(), 8, 8)
	require.NoError(t, err)
	assert.Len(t, result.Edits, 4)
}

func TestRandomMany(t *testing.T) {
	env := setupTestEnv(t)
	userID := registerTestUser(t, env, "ada@example.com")

	// Empty catalog gives an empty sample.
	edits, err := env.catalog.RandomMany(context.Background())
	require.NoError(t, err)
	assert.Empty(t, edits)

	createTestEdit(t, env, userID, "Clip A")
	createTestEdit(t, env, userID, "Clip B")

	edits, err = env.catalog.RandomMany(context.Background())
	require.NoError(t, err)
	assert.Len(t, edits, 16)
}

func TestTagStats(t *testing.T) {
	env := setupTestEnv(t)
	userID := registerTestUser(t, env, "ada@example.com")

	createTestEdit(t, env, userID, "One", "a", "b")
	createTestEdit(t, env, userID, "Two", "a")
	createTestEdit(t, env, userID, "Three")

	stats, err := env.catalog.TagStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	require.Len(t, stats.Tags, 2)
	assert.Equal(t, "a", stats.Tags[0].Tag)
	assert.Equal(t, 2, stats.Tags[0].Count)
	assert.Equal(t, "b", stats.Tags[1].Tag)
	assert.Equal(t, 1, stats.Tags[1].Count)
}

func TestTagStats_TotalIsEditCount(t *testing.T) {
	env := setupTestEnv(t)
	userID := registerTestUser(t, env, "ada@example.com")

	createTestEdit(t, env, userID, "One", "a", "b")

	stats, err := env.catalog.TagStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
}

func TestTagStats_RepeatedTagCountsPerOccurrence(t *testing.T) {
	env := setupTestEnv(t)
	userID := registerTestUser(t, env, "ada@example.com")

	createTestEdit(t, env, userID, "One", "vhs", "vhs")

	stats, err := env.catalog.TagStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats.Tags, 1)
	assert.Equal(t, 2, stats.Tags[0].Count)
	assert.Equal(t, 1, stats.Total)
}

func TestTagStats_CaseSensitive(t *testing.T) {
	env := setupTestEnv(t)
	userID := registerTestUser(t, env, "ada@example.com")

	createTestEdit(t, env, userID, "One", "VHS")
	createTestEdit(t, env, userID, "Two", "vhs")

	stats, err := env.catalog.TagStats(context.Background())
	require.NoError(t, err)
	assert.Len(t, stats.Tags, 2)
}

func TestReindexAll(t *testing.T) {
	env := setupTestEnv(t)
	userID := registerTestUser(t, env, "ada@example.com")

	editID := createTestEdit(t, env, userID, "Midnight Run")

	// Wipe the index, then rebuild from the store.
	require.NoError(t, env.index.Clear())
	result, err := env.catalog.Search(context.Background(), SearchParams{Term: "midnight"})
	require.NoError(t, err)
	require.Zero(t, result.Total)

	require.NoError(t, env.catalog.ReindexAll(context.Background()))

	result, err = env.catalog.Search(context.Background(), SearchParams{Term: "midnight"})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, editID, result.Edits[0].ID)
}
