package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/editdropapp/editdrop-server/internal/domain"
	domainerrors "github.com/editdropapp/editdrop-server/internal/errors"
)

func TestRegister_AndLogin(t *testing.T) {
	env := setupTestEnv(t)

	resp, err := env.auth.Register(context.Background(), RegisterRequest{
		Email:    "Ada@Example.com",
		Nickname: "ada",
		Password: "password-123",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.Equal(t, domain.RoleUser, resp.User.Role)
	assert.NotEmpty(t, resp.Token)

	claims, err := env.auth.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	// Login works regardless of email case.
	login, err := env.auth.Login(context.Background(), LoginRequest{
		Email:    "ADA@example.com",
		Password: "password-123",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	registerTestUser(t, env, "ada@example.com")

	_, err := env.auth.Register(context.Background(), RegisterRequest{
		Email:    "ada@example.com",
		Nickname: "other",
		Password: "password-123",
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrAlreadyExists))
}

func TestRegister_AdminSecret(t *testing.T) {
	env := setupTestEnv(t)

	resp, err := env.auth.Register(context.Background(), RegisterRequest{
		Email:       "admin@example.com",
		Nickname:    "admin",
		Password:    "password-123",
		AdminSecret: testAdminSecret,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, resp.User.Role)
	assert.True(t, resp.User.IsAdmin())

	_, err = env.auth.Register(context.Background(), RegisterRequest{
		Email:       "wannabe@example.com",
		Nickname:    "wannabe",
		Password:    "password-123",
		AdminSecret: "wrong",
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrForbidden))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := setupTestEnv(t)
	registerTestUser(t, env, "ada@example.com")

	// Same error for a wrong password and an unknown email.
	_, badPassword := env.auth.Login(context.Background(), LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password",
	})
	require.Error(t, badPassword)

	_, badEmail := env.auth.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "password-123",
	})
	require.Error(t, badEmail)

	var pwErr, emailErr *domainerrors.Error
	require.ErrorAs(t, badPassword, &pwErr)
	require.ErrorAs(t, badEmail, &emailErr)
	assert.Equal(t, pwErr.Code, emailErr.Code)
	assert.Equal(t, pwErr.Message, emailErr.Message)
}

func TestChangePassword(t *testing.T) {
	env := setupTestEnv(t)
	userID := registerTestUser(t, env, "ada@example.com")

	err := env.auth.ChangePassword(context.Background(), userID, ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "new-password-456",
	})
	require.Error(t, err)

	err = env.auth.ChangePassword(context.Background(), userID, ChangePasswordRequest{
		OldPassword: "password-123",
		NewPassword: "new-password-456",
	})
	require.NoError(t, err)

	_, err = env.auth.Login(context.Background(), LoginRequest{
		Email:    "ada@example.com",
		Password: "new-password-456",
	})
	require.NoError(t, err)

	_, err = env.auth.Login(context.Background(), LoginRequest{
		Email:    "ada@example.com",
		Password: "password-123",
	})
	require.Error(t, err)
}

func TestVerifyToken_Garbage(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.auth.VerifyToken("v4.local.not-a-real-token")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrUnauthorized))
}
