package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/aushadhi/app/checkout"
	"github.com/shashiranjanraj/aushadhi/pkg/session"
)

// Two accounts sharing one browser session must not see each other's
// checkout drafts.
func TestCheckoutDraftIsolatedPerUser(t *testing.T) {
	c := NewCheckoutController()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
	sess := session.Start(w, r)
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: sess.ID})

	flow := checkout.New(checkout.NewOrderSubmitter(c.orders, 1))
	flow.Update(checkout.Draft{
		Email: "first@example.com",
		Items: []checkout.Item{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, c.save(w, r, sess, flow, 1))

	loaded, _, found := c.load(r, 1)
	require.True(t, found)
	assert.Equal(t, "first@example.com", loaded.Draft().Email)

	_, _, found = c.load(r, 2)
	assert.False(t, found, "another user must not resume the draft")
}
