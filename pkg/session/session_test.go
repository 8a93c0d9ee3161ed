package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/aushadhi/pkg/session"
)

func requestWithCookie(id string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: id})
	return r
}

func TestStartCreatesSessionAndSetsCookie(t *testing.T) {
	w := httptest.NewRecorder()
	s := session.Start(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, s.ID)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.Equal(t, s.ID, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestPutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	w := httptest.NewRecorder()
	s := session.Start(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NoError(t, s.Put(ctx, "greeting", "ayubowan"))

	var got string
	found, err := s.Get(ctx, "greeting", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "ayubowan", got)

	found, err = s.Get(ctx, "absent", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRegenerateDropsOldStateAndChangesID(t *testing.T) {
	ctx := context.Background()
	w := httptest.NewRecorder()
	s := session.Start(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, s.Put(ctx, "cart", "draft"))

	// The browser presents the pre-login cookie; login must not keep it.
	w2 := httptest.NewRecorder()
	fresh := session.Regenerate(ctx, w2, requestWithCookie(s.ID))

	assert.NotEqual(t, s.ID, fresh.ID)
	cookies := w2.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, fresh.ID, cookies[0].Value)

	var got string
	found, err := (&session.Session{ID: s.ID}).Get(ctx, "cart", &got)
	require.NoError(t, err)
	assert.False(t, found, "old session state must be destroyed")
}
