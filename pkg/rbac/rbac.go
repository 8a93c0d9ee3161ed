// Package rbac gates routes by the closed role set defined in pkg/auth.
package rbac

import (
	"net/http"

	"github.com/shashiranjanraj/aushadhi/pkg/auth"
	"github.com/shashiranjanraj/aushadhi/pkg/response"
)

// Require returns middleware that allows the request only when the
// authenticated identity's role is a member of the given allow-set.
// It must run after middleware.Authenticate; a request with no identity in
// context is treated as forbidden. Stateless, deterministic, no I/O.
func Require(roles ...auth.Role) func(http.Handler) http.Handler {
	allowed := make(map[auth.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := auth.IdentityFromRequest(r)
			if !ok || !allowed[identity.Role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly is shorthand for Require(auth.RoleAdmin).
func AdminOnly(next http.Handler) http.Handler {
	return Require(auth.RoleAdmin)(next)
}
