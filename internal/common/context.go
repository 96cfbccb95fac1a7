package common

import (
	"context"

	"github.com/kept7/payment-service/internal/models"
)

type contextKey string

const IdentityKey contextKey = "identity"

// WithIdentity attaches the resolved caller to the request context.
func WithIdentity(ctx context.Context, id *models.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}

// GetIdentityFromContext extracts the resolved caller from the request context.
func GetIdentityFromContext(ctx context.Context) (*models.Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(*models.Identity)
	return id, ok
}
