package service

import (
	"context"
	"errors"
	"testing"

	"blogstarter/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Me(t *testing.T) {
	f := newFixture(t)
	userID := f.signup(t, "me@example.com")

	user, err := f.user.Me(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", user.Email)
}

func TestUserService_UpdateUserOnlyTouchesGivenFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.signup(t, "jane@example.com")

	_, err := f.user.UpdateUser(ctx, userID, models.UpdateUserInput{Firstname: strPtr("Jane"), Lastname: strPtr("Doe")})
	require.NoError(t, err)

	user, err := f.user.UpdateUser(ctx, userID, models.UpdateUserInput{Lastname: strPtr("Roe")})
	require.NoError(t, err)
	assert.Equal(t, "Jane", *user.Firstname)
	assert.Equal(t, "Roe", *user.Lastname)
}

func TestUserService_ChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.signup(t, "kim@example.com")

	_, err := f.user.ChangePassword(ctx, userID, models.ChangePasswordInput{OldPassword: "wrong-password", NewPassword: "newpassword1"})
	assert.True(t, errors.Is(err, models.ErrBadRequest))

	_, err = f.user.ChangePassword(ctx, userID, models.ChangePasswordInput{OldPassword: "password123", NewPassword: "newpassword1"})
	require.NoError(t, err)

	_, err = f.auth.Login(ctx, "kim@example.com", "password123")
	assert.True(t, errors.Is(err, models.ErrBadRequest))

	_, err = f.auth.Login(ctx, "kim@example.com", "newpassword1")
	assert.NoError(t, err)
}

func TestUserService_ChangePasswordUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.user.ChangePassword(context.Background(), "ghost", models.ChangePasswordInput{OldPassword: "password123", NewPassword: "newpassword1"})
	assert.True(t, errors.Is(err, models.ErrNotFound))
}
