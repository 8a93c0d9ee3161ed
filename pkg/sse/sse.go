// Package sse provides Server-Sent Events support, used as the fallback
// transport for the admin order feed where websockets are blocked.
//
//	stream := sse.New(w, r)
//	for msg := range updates {
//	    stream.SendRaw(string(msg))
//	    if stream.IsClosed() {
//	        break
//	    }
//	}
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Stream is one open SSE connection. All methods are nil-safe so handlers
// can use the result of New without a guard.
type Stream struct {
	w       http.ResponseWriter
	r       *http.Request
	flusher http.Flusher
	closed  bool
}

// New prepares the response for event streaming and returns the stream.
// Returns nil when the ResponseWriter cannot flush, after writing a 500.
func New(w http.ResponseWriter, r *http.Request) *Stream {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return nil
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no") // disable nginx buffering

	return &Stream{w: w, r: r, flusher: flusher}
}

// Send writes a named event with a JSON-encoded payload.
func (s *Stream) Send(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("sse: marshal: %w", err)
	}
	s.write("event: %s\ndata: %s\n\n", event, payload)
	return nil
}

// SendRaw writes a bare data line with no event name.
func (s *Stream) SendRaw(data string) {
	s.write("data: %s\n\n", data)
}

// Comment writes an SSE comment line. Browsers ignore it, which makes it
// a cheap keepalive heartbeat.
func (s *Stream) Comment(msg string) {
	s.write(": %s\n\n", msg)
}

// IsClosed reports whether the client has gone away.
func (s *Stream) IsClosed() bool {
	if s == nil {
		return true
	}
	s.poll()
	return s.closed
}

func (s *Stream) write(format string, args ...any) {
	if s == nil || s.closed {
		return
	}
	fmt.Fprintf(s.w, format, args...)
	s.flusher.Flush()
	s.poll()
}

// poll marks the stream closed once the request context is cancelled.
func (s *Stream) poll() {
	select {
	case <-s.r.Context().Done():
		s.closed = true
	default:
	}
}
