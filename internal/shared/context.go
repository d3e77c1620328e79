// Package shared holds request-scoped helpers used across modules.
package shared

import (
	"context"

	"github.com/visionday/hub/pkg/models"
)

type contextKey string

const userContextKey contextKey = "hub.user"

// ContextWithUser attaches the authenticated user to the context.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated user, or nil when the request is
// anonymous.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}
