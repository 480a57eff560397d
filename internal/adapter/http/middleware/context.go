package middleware

import (
	"context"

	"github.com/roommatefinder/room-service/internal/room/domain"
)

// ContextKey is a private key type so request-scoped values cannot collide
// with other packages.
type ContextKey string

const identityCtxKey = ContextKey("caller_identity")

func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey, id)
}

// IdentityFrom returns the caller identity resolved by the auth middleware.
// The anonymous identity is returned when nothing was resolved.
func IdentityFrom(ctx context.Context) domain.Identity {
	if id, ok := ctx.Value(identityCtxKey).(domain.Identity); ok {
		return id
	}
	return domain.Identity{}
}
