package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/editdropapp/editdrop-server/internal/errors"
)

func TestComments_CreateAndList(t *testing.T) {
	env := setupTestEnv(t)
	userID := registerTestUser(t, env, "ada@example.com")
	editID := createTestEdit(t, env, userID, "Clip")

	comment, err := env.commentsS.Create(context.Background(), userID, editID, "  great cut  ")
	require.NoError(t, err)
	assert.Equal(t, "great cut", comment.Text)
	assert.Equal(t, "tester", comment.AuthorNickname)

	comments, err := env.commentsS.List(context.Background(), editID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, comment.ID, comments[0].ID)
	assert.Equal(t, "tester", comments[0].AuthorNickname)
}

func TestComments_CreateValidation(t *testing.T) {
	env := setupTestEnv(t)
	userID := registerTestUser(t, env, "ada@example.com")
	editID := createTestEdit(t, env, userID, "Clip")

	_, err := env.commentsS.Create(context.Background(), userID, editID, "   ")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	_, err = env.commentsS.Create(context.Background(), userID, "edt-missing", "text")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestComments_UpdateOwnership(t *testing.T) {
	env := setupTestEnv(t)
	author := registerTestUser(t, env, "author@example.com")
	other := registerTestUser(t, env, "other@example.com")
	editID := createTestEdit(t, env, author, "Clip")

	comment, err := env.commentsS.Create(context.Background(), author, editID, "original")
	require.NoError(t, err)

	_, err = env.commentsS.Update(context.Background(), other, comment.ID, "hijacked")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrForbidden))

	updated, err := env.commentsS.Update(context.Background(), author, comment.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)
}

func TestComments_DeleteOwnershipAndAdmin(t *testing.T) {
	env := setupTestEnv(t)
	author := registerTestUser(t, env, "author@example.com")
	other := registerTestUser(t, env, "other@example.com")
	editID := createTestEdit(t, env, author, "Clip")

	comment, err := env.commentsS.Create(context.Background(), author, editID, "text")
	require.NoError(t, err)

	err = env.commentsS.Delete(context.Background(), other, false, comment.ID)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrForbidden))

	// Admins can moderate anyone's comment.
	require.NoError(t, env.commentsS.Delete(context.Background(), other, true, comment.ID))

	err = env.commentsS.Delete(context.Background(), author, false, comment.ID)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestComments_NicknameResolvedAtReadTime(t *testing.T) {
	env := setupTestEnv(t)
	author := registerTestUser(t, env, "author@example.com")
	editID := createTestEdit(t, env, author, "Clip")

	_, err := env.commentsS.Create(context.Background(), author, editID, "text")
	require.NoError(t, err)

	// Rename the author; listings pick up the new nickname.
	user, err := env.store.Users.Get(context.Background(), author)
	require.NoError(t, err)
	user.Nickname = "renamed"
	require.NoError(t, env.store.Users.Update(context.Background(), author, user))

	comments, err := env.commentsS.List(context.Background(), editID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "renamed", comments[0].AuthorNickname)
}
