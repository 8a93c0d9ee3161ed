package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/aushadhi/pkg/auth"
	"github.com/shashiranjanraj/aushadhi/pkg/logger"
	"github.com/shashiranjanraj/aushadhi/pkg/response"
)

// IdentityFinder resolves a token subject to a live identity. The strict
// authenticator rejects tokens whose subject no longer exists in the store.
type IdentityFinder interface {
	FindIdentity(ctx context.Context, userID uint) (auth.Identity, error)
}

// IdentityFinderFunc adapts a function to the IdentityFinder interface.
type IdentityFinderFunc func(ctx context.Context, userID uint) (auth.Identity, error)

func (f IdentityFinderFunc) FindIdentity(ctx context.Context, userID uint) (auth.Identity, error) {
	return f(ctx, userID)
}

// Authenticate verifies the bearer token on every request and attaches the
// resolved identity to the request context. Requests are rejected before
// any handler logic runs:
//
//   - no Authorization header, or not a Bearer scheme → 401
//   - signature mismatch or expired token             → 401
//   - token subject no longer in the identity store   → 401
//
// Attaching the identity is the only side effect.
func Authenticate(finder IdentityFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				response.Unauthenticated(w)
				return
			}

			raw := strings.TrimPrefix(header, "Bearer ")
			claims, err := auth.ValidateToken(raw)
			if err != nil {
				response.InvalidToken(w)
				return
			}

			identity, err := finder.FindIdentity(r.Context(), claims.UserID)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("auth: token subject not found",
					"user_id", claims.UserID)
				response.InvalidToken(w)
				return
			}

			ctx := auth.WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
