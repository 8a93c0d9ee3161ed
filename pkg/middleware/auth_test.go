package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/aushadhi/pkg/auth"
	"github.com/shashiranjanraj/aushadhi/pkg/middleware"
)

func newHandler(t *testing.T, finder middleware.IdentityFinder) (http.Handler, *bool) {
	t.Helper()
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		identity, ok := auth.IdentityFromRequest(r)
		require.True(t, ok, "identity must be attached before the handler runs")
		w.Write([]byte(identity.Email))
	})
	return middleware.Authenticate(finder)(next), &called
}

func knownUser(id uint) middleware.IdentityFinderFunc {
	return func(_ context.Context, userID uint) (auth.Identity, error) {
		if userID != id {
			return auth.Identity{}, errors.New("no such user")
		}
		return auth.Identity{ID: userID, Email: "jane@example.com", Role: auth.RoleCustomer}, nil
	}
}

func TestAuthenticate_NoHeader(t *testing.T) {
	handler, called := newHandler(t, knownUser(1))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestAuthenticate_WrongScheme(t *testing.T) {
	handler, called := newHandler(t, knownUser(1))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestAuthenticate_BadToken(t *testing.T) {
	handler, called := newHandler(t, knownUser(1))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage.token.here")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestAuthenticate_SubjectGone(t *testing.T) {
	// Valid token, but the user behind it has been deleted.
	token, err := auth.GenerateToken(99, auth.RoleCustomer)
	require.NoError(t, err)

	handler, called := newHandler(t, knownUser(1))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestAuthenticate_Success(t *testing.T) {
	token, err := auth.GenerateToken(7, auth.RoleCustomer)
	require.NoError(t, err)

	handler, called := newHandler(t, knownUser(7))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
	assert.Equal(t, "jane@example.com", rec.Body.String())
}
