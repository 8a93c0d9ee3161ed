// Package http is a small fluent client for outgoing calls, used by the
// notification channels for Slack and webhook delivery.
//
//	resp, err := http.Post(url).
//	    Body(payload).
//	    Timeout(5 * time.Second).
//	    Retry(3, time.Second).
//	    Send()
//	if err == nil {
//	    err = resp.Throw()
//	}
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	gohttp "net/http"
	"time"

	"github.com/shashiranjanraj/aushadhi/pkg/logger"
)

var pooledTransport = &gohttp.Transport{
	MaxIdleConns:        200,
	MaxIdleConnsPerHost: 100,
	IdleConnTimeout:     90 * time.Second,
}

// DefaultClient serves every request from this package. Tests may swap
// its Transport and restore it with ResetTransport.
var DefaultClient = &gohttp.Client{Transport: pooledTransport}

// ResetTransport restores the pooled production transport.
func ResetTransport() {
	DefaultClient.Transport = pooledTransport
}

// Request accumulates settings until Send.
type Request struct {
	method    string
	url       string
	headers   map[string]string
	body      interface{}
	timeout   time.Duration
	attempts  int
	retryWait time.Duration
	ctx       context.Context
}

func Get(url string) *Request    { return newRequest(gohttp.MethodGet, url) }
func Post(url string) *Request   { return newRequest(gohttp.MethodPost, url) }
func Put(url string) *Request    { return newRequest(gohttp.MethodPut, url) }
func Patch(url string) *Request  { return newRequest(gohttp.MethodPatch, url) }
func Delete(url string) *Request { return newRequest(gohttp.MethodDelete, url) }

func newRequest(method, url string) *Request {
	return &Request{
		method: method,
		url:    url,
		headers: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		timeout:   30 * time.Second,
		attempts:  1,
		retryWait: 500 * time.Millisecond,
		ctx:       context.Background(),
	}
}

// Header sets one request header.
func (r *Request) Header(key, value string) *Request {
	r.headers[key] = value
	return r
}

// Headers merges h into the request headers.
func (r *Request) Headers(h map[string]string) *Request {
	for k, v := range h {
		r.headers[k] = v
	}
	return r
}

// Bearer sets an Authorization header.
func (r *Request) Bearer(token string) *Request {
	return r.Header("Authorization", "Bearer "+token)
}

// Body sets the request body. Strings and byte slices are sent raw,
// anything else is marshalled to JSON.
func (r *Request) Body(v interface{}) *Request {
	r.body = v
	return r
}

// Timeout bounds each individual attempt.
func (r *Request) Timeout(d time.Duration) *Request {
	r.timeout = d
	return r
}

// Retry sets the total attempt count (1 means no retry) and the initial
// backoff, which doubles after each failure.
func (r *Request) Retry(n int, wait time.Duration) *Request {
	r.attempts = n
	r.retryWait = wait
	return r
}

// WithContext attaches ctx so callers can cancel in-flight sends.
func (r *Request) WithContext(ctx context.Context) *Request {
	r.ctx = ctx
	return r
}

// Send runs the request, retrying transport failures with exponential
// backoff. Non-2xx responses are returned, not retried; use Throw to
// turn them into errors.
func (r *Request) Send() (*Response, error) {
	var lastErr error
	backoff := r.retryWait

	for attempt := 1; attempt <= r.attempts; attempt++ {
		resp, err := r.do()
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if attempt < r.attempts {
			logger.Warn("http: request failed, retrying",
				"url", r.url, "attempt", attempt, "backoff", backoff, "error", err)
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	return nil, fmt.Errorf("http: all %d attempts failed for %s %s: %w",
		r.attempts, r.method, r.url, lastErr)
}

func (r *Request) do() (*Response, error) {
	body, contentType, err := r.encodeBody()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
	defer cancel()

	req, err := gohttp.NewRequestWithContext(ctx, r.method, r.url, body)
	if err != nil {
		return nil, fmt.Errorf("http: build request: %w", err)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http: send: %w", err)
	}
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("http: read body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Raw:        raw,
	}, nil
}

func (r *Request) encodeBody() (io.Reader, string, error) {
	switch v := r.body.(type) {
	case nil:
		return nil, "", nil
	case string:
		return bytes.NewBufferString(v), "text/plain", nil
	case []byte:
		return bytes.NewReader(v), "application/octet-stream", nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, "", fmt.Errorf("http: marshal body: %w", err)
		}
		return bytes.NewReader(b), "application/json", nil
	}
}

// Response is the buffered result of a Send.
type Response struct {
	StatusCode int
	Headers    gohttp.Header
	Raw        []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON decodes the body into dest.
func (r *Response) JSON(dest interface{}) error {
	if err := json.Unmarshal(r.Raw, dest); err != nil {
		return fmt.Errorf("http: decode JSON: %w", err)
	}
	return nil
}

// Text returns the body as a string.
func (r *Response) Text() string { return string(r.Raw) }

// Header reads one response header.
func (r *Response) Header(key string) string { return r.Headers.Get(key) }

// Throw converts a non-2xx response into an error.
func (r *Response) Throw() error {
	if !r.OK() {
		return fmt.Errorf("http: request failed with status %d: %s", r.StatusCode, r.Raw)
	}
	return nil
}
