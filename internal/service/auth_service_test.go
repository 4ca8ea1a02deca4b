package service

import (
	"context"
	"testing"
	"time"

	"go-parts-inventory/internal/repository"
	"go-parts-inventory/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	users := repository.NewUserRepo(db)
	userService := NewUserService(users, nil)
	auth := NewAuthService(users, jwt.NewManager("test-secret", time.Hour))

	user, err := userService.Register(ctx, &RegisterRequest{Email: " Clerk@Example.com ", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "clerk@example.com", user.Email)
	assert.False(t, user.Admin)

	_, err = userService.Register(ctx, &RegisterRequest{Email: "clerk@example.com", Password: "another1"})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = userService.Register(ctx, &RegisterRequest{Email: "not-an-email", Password: "secret123"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)

	_, err = auth.Login(ctx, "clerk@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	first, err := auth.Login(ctx, "clerk@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, first.User.ID)

	validated, err := auth.ValidateToken(ctx, first.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, validated.ID)

	// A second login replaces the first session.
	second, err := auth.Login(ctx, "clerk@example.com", "secret123")
	require.NoError(t, err)
	_, err = auth.ValidateToken(ctx, first.Token)
	assert.ErrorIs(t, err, ErrSessionReplaced)
	_, err = auth.ValidateToken(ctx, second.Token)
	require.NoError(t, err)
}

func TestResetPasswordRevokesSessions(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	users := repository.NewUserRepo(db)
	userService := NewUserService(users, nil)
	auth := NewAuthService(users, jwt.NewManager("test-secret", time.Hour))

	_, err := userService.Register(ctx, &RegisterRequest{Email: "clerk@example.com", Password: "secret123"})
	require.NoError(t, err)
	session, err := auth.Login(ctx, "clerk@example.com", "secret123")
	require.NoError(t, err)

	assert.ErrorIs(t, auth.ResetPassword(ctx, "clerk@example.com", "wrong", "newsecret"), ErrWrongPassword)
	require.NoError(t, auth.ResetPassword(ctx, "clerk@example.com", "secret123", "newsecret"))

	_, err = auth.ValidateToken(ctx, session.Token)
	assert.Error(t, err)
	_, err = auth.Login(ctx, "clerk@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login(ctx, "clerk@example.com", "newsecret")
	require.NoError(t, err)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	userService := NewUserService(repository.NewUserRepo(db), nil)

	require.NoError(t, userService.EnsureAdmin(ctx, "admin@example.com", "admin123"))
	require.NoError(t, userService.EnsureAdmin(ctx, "admin@example.com", "ignored"))

	users, err := userService.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].Admin)

	created, err := userService.CreateUser(ctx, &CreateUserRequest{Email: "clerk@example.com", Password: "secret123"}, Actor{ID: users[0].ID})
	require.NoError(t, err)
	assert.Equal(t, users[0].ID.String(), created.CreatedBy)

	got, err := userService.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.Admin)
}
