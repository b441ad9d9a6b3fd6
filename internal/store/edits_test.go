package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/editdropapp/editdrop-server/internal/domain"
	"github.com/editdropapp/editdrop-server/internal/store"
)

func seedEdit(t *testing.T, s *store.Store, id string, createdAt time.Time, tags ...string) *domain.Edit {
	t.Helper()

	edit := &domain.Edit{
		Title:  "Edit " + id,
		Author: "author",
		UserID: "user-1",
		Video:  "videos/" + id + ".mp4",
		Source: domain.SourceInternal,
		Tags:   tags,
		Rating: 5,
	}
	edit.ID = id
	edit.CreatedAt = createdAt
	edit.UpdatedAt = createdAt

	require.NoError(t, s.CreateEdit(context.Background(), edit))
	return edit
}

func TestCreateEdit_Duplicate(t *testing.T) {
	s := setupTestStore(t)

	edit := seedEdit(t, s, "edt-1", time.Now())
	err := s.CreateEdit(context.Background(), edit)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestGetEdit_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetEdit(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateEdit(t *testing.T) {
	s := setupTestStore(t)

	edit := seedEdit(t, s, "edt-1", time.Now())
	edit.Title = "Renamed"
	require.NoError(t, s.UpdateEdit(context.Background(), edit))

	got, err := s.GetEdit(context.Background(), "edt-1")
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Title)
}

func TestDeleteEdit(t *testing.T) {
	s := setupTestStore(t)

	seedEdit(t, s, "edt-1", time.Now())
	require.NoError(t, s.DeleteEdit(context.Background(), "edt-1"))

	_, err := s.GetEdit(context.Background(), "edt-1")
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.DeleteEdit(context.Background(), "edt-1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCountEdits(t *testing.T) {
	s := setupTestStore(t)

	count, err := s.CountEdits(context.Background())
	require.NoError(t, err)
	require.Zero(t, count)

	for i := range 5 {
		seedEdit(t, s, fmt.Sprintf("edt-%d", i), time.Now())
	}

	count, err = s.CountEdits(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, count)
}

func TestEditAt(t *testing.T) {
	s := setupTestStore(t)

	for i := range 3 {
		seedEdit(t, s, fmt.Sprintf("edt-%d", i), time.Now())
	}

	// Ordinals follow key order, which for these IDs is lexicographic.
	for i := range 3 {
		edit, err := s.EditAt(context.Background(), i)
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("edt-%d", i), edit.ID)
	}

	_, err := s.EditAt(context.Background(), 3)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.EditAt(context.Background(), -1)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestPageEdits_NewestFirst(t *testing.T) {
	s := setupTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedEdit(t, s, "edt-old", base)
	seedEdit(t, s, "edt-mid", base.Add(time.Hour))
	seedEdit(t, s, "edt-new", base.Add(2*time.Hour))

	page, total, err := s.PageEdits(context.Background(), 0, 2)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, page, 2)
	require.Equal(t, "edt-new", page[0].ID)
	require.Equal(t, "edt-mid", page[1].ID)

	page, total, err = s.PageEdits(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, page, 1)
	require.Equal(t, "edt-old", page[0].ID)
}

func TestPageEdits_TiebreakByID(t *testing.T) {
	s := setupTestStore(t)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedEdit(t, s, "edt-b", at)
	seedEdit(t, s, "edt-a", at)

	page, _, err := s.PageEdits(context.Background(), 0, 10)
	require.NoError(t, err)
	require.Equal(t, "edt-a", page[0].ID)
	require.Equal(t, "edt-b", page[1].ID)
}

func TestPageEdits_SkipPastEnd(t *testing.T) {
	s := setupTestStore(t)

	seedEdit(t, s, "edt-1", time.Now())

	page, total, err := s.PageEdits(context.Background(), 10, 5)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Empty(t, page)
}

func TestSampleEdits(t *testing.T) {
	s := setupTestStore(t)

	sample, err := s.SampleEdits(context.Background(), 4)
	require.NoError(t, err)
	require.Empty(t, sample)

	seedEdit(t, s, "edt-1", time.Now())
	seedEdit(t, s, "edt-2", time.Now())

	sample, err = s.SampleEdits(context.Background(), 16)
	require.NoError(t, err)
	require.Len(t, sample, 16)
	for _, e := range sample {
		require.Contains(t, []string{"edt-1", "edt-2"}, e.ID)
	}
}
