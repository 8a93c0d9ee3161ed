package rbac_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/aushadhi/pkg/auth"
	"github.com/shashiranjanraj/aushadhi/pkg/rbac"
)

func serve(t *testing.T, mw func(http.Handler) http.Handler, identity *auth.Identity) (*httptest.ResponseRecorder, *bool) {
	t.Helper()
	called := false
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if identity != nil {
		req = req.WithContext(auth.WithIdentity(req.Context(), *identity))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, &called
}

func TestRequire_AllowsMatchingRole(t *testing.T) {
	rec, called := serve(t, rbac.Require(auth.RoleAdmin), &auth.Identity{ID: 1, Role: auth.RoleAdmin})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
}

func TestRequire_RejectsOtherRole(t *testing.T) {
	// A valid customer identity is still forbidden on an admin route.
	rec, called := serve(t, rbac.Require(auth.RoleAdmin), &auth.Identity{ID: 1, Role: auth.RoleCustomer})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, *called)
}

func TestRequire_RejectsMissingIdentity(t *testing.T) {
	rec, called := serve(t, rbac.Require(auth.RoleAdmin), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, *called)
}

func TestRequire_MultipleRoles(t *testing.T) {
	mw := rbac.Require(auth.RoleAdmin, auth.RoleCustomer)

	rec, _ := serve(t, mw, &auth.Identity{ID: 1, Role: auth.RoleCustomer})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = serve(t, mw, &auth.Identity{ID: 2, Role: auth.RoleAdmin})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminOnly(t *testing.T) {
	rec, _ := serve(t, rbac.AdminOnly, &auth.Identity{ID: 1, Role: auth.RoleAdmin})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, called := serve(t, rbac.AdminOnly, &auth.Identity{ID: 2, Role: auth.RoleCustomer})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, *called)
}
