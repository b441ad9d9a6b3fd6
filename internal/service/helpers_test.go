package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/editdropapp/editdrop-server/internal/auth"
	"github.com/editdropapp/editdrop-server/internal/media/videos"
	"github.com/editdropapp/editdrop-server/internal/search"
	"github.com/editdropapp/editdrop-server/internal/store"
	"github.com/editdropapp/editdrop-server/internal/store/sqlite"
	"github.com/editdropapp/editdrop-server/internal/validation"
)

const testAdminSecret = "test-admin-secret"

// testEnv bundles the services and stores used across service tests.
type testEnv struct {
	store    *store.Store
	comments *sqlite.Store
	index    *search.Index

	catalog   *CatalogService
	rotation  *RotationService
	auth      *AuthService
	favorites *FavoritesService
	commentsS *CommentsService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tmpDir := t.TempDir()
	logger := slog.New(slog.DiscardHandler)

	st, err := store.New(filepath.Join(tmpDir, "badger"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	comments, err := sqlite.Open(filepath.Join(tmpDir, "comments.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = comments.Close() })

	index, err := search.NewIndex(search.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	vids, err := videos.NewStorage(tmpDir)
	require.NoError(t, err)

	validator := validation.New()

	tokenService, err := auth.NewTokenService(
		"000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f",
		time.Hour,
	)
	require.NoError(t, err)

	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	env := &testEnv{
		store:    st,
		comments: comments,
		index:    index,
	}
	env.catalog = NewCatalogService(st, comments, index, vids, validator, 16, logger)
	env.rotation = NewRotationService(st, loc, logger)
	env.auth = NewAuthService(st, tokenService, validator, testAdminSecret, logger)
	env.favorites = NewFavoritesService(st, logger)
	env.commentsS = NewCommentsService(comments, st, logger)

	return env
}

// registerTestUser creates a user and returns its ID.
func registerTestUser(t *testing.T, env *testEnv, email string) string {
	t.Helper()

	resp, err := env.auth.Register(context.Background(), RegisterRequest{
		Email:    email,
		Nickname: "tester",
		Password: "password-123",
	})
	require.NoError(t, err)
	return resp.User.ID
}

// createTestEdit creates an edit owned by userID and returns it.
func createTestEdit(t *testing.T, env *testEnv, userID, title string, tags ...string) string {
	t.Helper()

	edit, err := env.catalog.CreateEdit(context.Background(), userID, CreateEditRequest{
		Title:  title,
		Author: "author",
		Video:  "https://example.com/clip.mp4",
		Source: "external-platform",
		Tags:   tags,
		Rating: 5,
	})
	require.NoError(t, err)
	return edit.ID
}
