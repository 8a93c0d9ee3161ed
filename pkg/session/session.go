// Package session provides cookie-backed server-side sessions.
//
// Session data lives in Redis when available (so sessions survive restarts
// and are shared across instances) with an in-process map as fallback. The
// browser only ever holds the opaque session ID.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/shashiranjanraj/aushadhi/pkg/cache"
)

const (
	// CookieName is the session cookie set on the client.
	CookieName = "aushadhi_session"

	keyPrefix = "aushadhi:session:"

	// TTL is the idle lifetime of a session.
	TTL = 2 * time.Hour
)

// Session is a handle to one client's server-side state.
type Session struct {
	ID string
}

var (
	memMu  sync.RWMutex
	memory = map[string]map[string]json.RawMessage{}
)

func newID() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Start returns the session for the request, creating one (and setting the
// cookie) if the client has none.
func Start(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return &Session{ID: c.Value}
	}

	s := &Session{ID: newID()}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(TTL.Seconds()),
	})
	return s
}

// Regenerate discards any session the request arrived with, server-side
// state included, and issues a fresh ID. Call it on login so a cookie
// planted before authentication never names the authenticated session.
func Regenerate(ctx context.Context, w http.ResponseWriter, r *http.Request) *Session {
	if old, ok := Current(r); ok {
		if rdb := cache.Client(); rdb != nil {
			rdb.Del(ctx, keyPrefix+old.ID)
		}
		memMu.Lock()
		delete(memory, old.ID)
		memMu.Unlock()
	}

	s := &Session{ID: newID()}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(TTL.Seconds()),
	})
	return s
}

// Current returns the request's session without creating one.
func Current(r *http.Request) (*Session, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil, false
	}
	return &Session{ID: c.Value}, true
}

// Put stores value under key, refreshing the session TTL.
func (s *Session) Put(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if rdb := cache.Client(); rdb != nil {
		if err := rdb.HSet(ctx, keyPrefix+s.ID, key, string(raw)).Err(); err == nil {
			rdb.Expire(ctx, keyPrefix+s.ID, TTL)
			return nil
		}
	}

	memMu.Lock()
	defer memMu.Unlock()
	bag, ok := memory[s.ID]
	if !ok {
		bag = map[string]json.RawMessage{}
		memory[s.ID] = bag
	}
	bag[key] = raw
	return nil
}

// Get loads the value stored under key into dest. Returns false when the key
// is absent.
func (s *Session) Get(ctx context.Context, key string, dest any) (bool, error) {
	if rdb := cache.Client(); rdb != nil {
		raw, err := rdb.HGet(ctx, keyPrefix+s.ID, key).Result()
		if err == nil {
			return true, json.Unmarshal([]byte(raw), dest)
		}
	}

	memMu.RLock()
	defer memMu.RUnlock()
	bag, ok := memory[s.ID]
	if !ok {
		return false, nil
	}
	raw, ok := bag[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

// Forget removes one key from the session.
func (s *Session) Forget(ctx context.Context, key string) {
	if rdb := cache.Client(); rdb != nil {
		rdb.HDel(ctx, keyPrefix+s.ID, key)
	}
	memMu.Lock()
	defer memMu.Unlock()
	if bag, ok := memory[s.ID]; ok {
		delete(bag, key)
	}
}

// Destroy removes all server-side state and expires the client cookie.
func (s *Session) Destroy(ctx context.Context, w http.ResponseWriter) {
	if rdb := cache.Client(); rdb != nil {
		rdb.Del(ctx, keyPrefix+s.ID)
	}
	memMu.Lock()
	delete(memory, s.ID)
	memMu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
