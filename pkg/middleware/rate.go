package middleware

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/shashiranjanraj/aushadhi/pkg/cache"
	"github.com/shashiranjanraj/aushadhi/pkg/response"
)

// RateLimit limits each client IP to max requests per window. Counters live
// in Redis when available so the limit holds across instances; otherwise an
// in-process map is used.
func RateLimit(max int, window time.Duration) func(http.Handler) http.Handler {
	local := newLocalCounter(window)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			var count int
			if rdb := cache.Client(); rdb != nil {
				key := fmt.Sprintf("aushadhi:ratelimit:%s", ip)
				n, err := rdb.Incr(r.Context(), key).Result()
				if err == nil {
					if n == 1 {
						rdb.Expire(r.Context(), key, window)
					}
					count = int(n)
				} else {
					count = local.hit(ip)
				}
			} else {
				count = local.hit(ip)
			}

			if count > max {
				response.Error(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// localCounter is the in-process fallback, a fixed window per IP.
type localCounter struct {
	mu     sync.Mutex
	window time.Duration
	hits   map[string]*windowCount
}

type windowCount struct {
	count int
	reset time.Time
}

func newLocalCounter(window time.Duration) *localCounter {
	return &localCounter{window: window, hits: make(map[string]*windowCount)}
}

func (c *localCounter) hit(ip string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	wc, ok := c.hits[ip]
	if !ok || now.After(wc.reset) {
		wc = &windowCount{reset: now.Add(c.window)}
		c.hits[ip] = wc
	}
	wc.count++
	return wc.count
}
