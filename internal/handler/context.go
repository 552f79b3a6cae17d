package handlers

import (
	"context"

	"blogstarter/internal/models"
)

type contextKey string

const currentUserKey contextKey = "currentUser"

func WithCurrentUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(currentUserKey).(*models.User)
	return user, ok && user != nil
}
