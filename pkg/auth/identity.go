package auth

import (
	"context"
	"net/http"
)

// Identity is the resolved caller attached to a request after the
// authentication middleware has verified the bearer token and confirmed
// the user still exists. Downstream handlers must not mutate it.
type Identity struct {
	ID    uint
	Email string
	Name  string
	Role  Role
}

type identityKey struct{}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromCtx returns the authenticated identity, if any.
func IdentityFromCtx(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// IdentityFromRequest is a convenience wrapper for handlers.
func IdentityFromRequest(r *http.Request) (Identity, bool) {
	return IdentityFromCtx(r.Context())
}
