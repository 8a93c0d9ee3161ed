// Package event provides a process-local event dispatcher. Sync listeners
// run inline; async listeners run on a bounded worker pool so a flood of
// events cannot spawn unbounded goroutines.
package event

import (
	"sync"

	"github.com/shashiranjanraj/aushadhi/pkg/workerpool"
)

// Handler receives an event payload.
type Handler func(payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}
	pool     = workerpool.New(16)
)

// Listen registers a handler for the given event name.
func Listen(event string, handler Handler) {
	mu.Lock()
	handlers[event] = append(handlers[event], handler)
	mu.Unlock()
}

// snapshot copies the listener list so handlers can Listen or Flush
// without deadlocking against a dispatch in progress.
func snapshot(event string) []Handler {
	mu.RLock()
	defer mu.RUnlock()
	return append([]Handler(nil), handlers[event]...)
}

// Fire dispatches an event synchronously to all registered listeners.
func Fire(event string, payload interface{}) {
	for _, h := range snapshot(event) {
		h(payload)
	}
}

// FireAsync dispatches the event to all listeners concurrently and returns
// immediately. When the pool is saturated the handler falls back to a
// plain goroutine rather than dropping the event.
func FireAsync(event string, payload interface{}) {
	for _, h := range snapshot(event) {
		handler := h
		if err := pool.Submit(func() { handler(payload) }); err != nil {
			go handler(payload)
		}
	}
}

// Flush removes all listeners (useful in tests).
func Flush() {
	mu.Lock()
	handlers = map[string][]Handler{}
	mu.Unlock()
}
