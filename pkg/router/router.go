// Package router wraps chi with named routes and nested groups.
//
// Routes are registered with a name so handlers can build URLs back to
// them and `aushadhi route:list` can print the route table.
package router

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

type Middleware func(http.Handler) http.Handler

// RouteInfo describes one registered route.
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

type Router struct {
	mux    chi.Router
	mu     sync.RWMutex
	routes map[string]string // name → path
	infos  []RouteInfo
}

func New() *Router {
	return &Router{mux: chi.NewRouter(), routes: make(map[string]string)}
}

func (r *Router) Handler() http.Handler { return r.mux }

// Use appends global middleware. Must be called before any route is mounted.
func (r *Router) Use(middlewares ...Middleware) {
	for _, mw := range middlewares {
		r.mux.Use(mw)
	}
}

// Group scopes a path prefix and a middleware stack. Groups nest.
func (r *Router) Group(prefix string, middlewares ...Middleware) *Group {
	return &Group{
		router:      r,
		prefix:      normalizePath(prefix),
		middlewares: append([]Middleware(nil), middlewares...),
	}
}

func (r *Router) Get(path, name string, h http.HandlerFunc, mw ...Middleware) {
	r.mount(http.MethodGet, path, name, h, mw...)
}

func (r *Router) Post(path, name string, h http.HandlerFunc, mw ...Middleware) {
	r.mount(http.MethodPost, path, name, h, mw...)
}

func (r *Router) Put(path, name string, h http.HandlerFunc, mw ...Middleware) {
	r.mount(http.MethodPut, path, name, h, mw...)
}

func (r *Router) Patch(path, name string, h http.HandlerFunc, mw ...Middleware) {
	r.mount(http.MethodPatch, path, name, h, mw...)
}

func (r *Router) Delete(path, name string, h http.HandlerFunc, mw ...Middleware) {
	r.mount(http.MethodDelete, path, name, h, mw...)
}

// HandleFunc mounts a plain handler on GET without naming it (metrics page,
// websocket upgrades).
func (r *Router) HandleFunc(path string, handler http.HandlerFunc) {
	r.mux.Get(normalizePath(path), handler)
}

// Routes returns a snapshot of every registered route, sorted by path then
// method.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	out := append([]RouteInfo(nil), r.infos...)
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// Path returns the path registered under name.
func (r *Router) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	path, ok := r.routes[name]
	return path, ok
}

// URL builds a concrete URL for a named route, substituting {param} segments.
func (r *Router) URL(name string, params map[string]string) (string, error) {
	path, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("route %q not found", name)
	}
	for key, value := range params {
		path = strings.ReplaceAll(path, "{"+key+"}", value)
	}
	if strings.Contains(path, "{") {
		return "", fmt.Errorf("missing parameters for route %q", name)
	}
	return path, nil
}

func (r *Router) mount(method, path, name string, handler http.HandlerFunc, mw ...Middleware) {
	full := normalizePath(path)
	r.mux.Method(method, full, chain(handler, mw...))
	r.record(method, full, name)
}

func (r *Router) record(method, path, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, RouteInfo{Method: method, Path: path, Name: name})
	if name != "" {
		r.routes[name] = path
	}
}

// Group is a route group with a shared prefix and middleware stack.
type Group struct {
	router      *Router
	prefix      string
	middlewares []Middleware
}

func (g *Group) Group(prefix string, middlewares ...Middleware) *Group {
	return &Group{
		router:      g.router,
		prefix:      joinPath(g.prefix, prefix),
		middlewares: g.stack(middlewares),
	}
}

func (g *Group) Get(path, name string, h http.HandlerFunc, mw ...Middleware) {
	g.mount(http.MethodGet, path, name, h, mw...)
}

func (g *Group) Post(path, name string, h http.HandlerFunc, mw ...Middleware) {
	g.mount(http.MethodPost, path, name, h, mw...)
}

func (g *Group) Put(path, name string, h http.HandlerFunc, mw ...Middleware) {
	g.mount(http.MethodPut, path, name, h, mw...)
}

func (g *Group) Patch(path, name string, h http.HandlerFunc, mw ...Middleware) {
	g.mount(http.MethodPatch, path, name, h, mw...)
}

func (g *Group) Delete(path, name string, h http.HandlerFunc, mw ...Middleware) {
	g.mount(http.MethodDelete, path, name, h, mw...)
}

func (g *Group) mount(method, path, name string, handler http.HandlerFunc, mw ...Middleware) {
	full := joinPath(g.prefix, path)
	g.router.mux.Method(method, full, chain(handler, g.stack(mw)...))
	g.router.record(method, full, name)
}

// stack combines the group's middleware with route-level extras, group
// middleware first.
func (g *Group) stack(extra []Middleware) []Middleware {
	out := make([]Middleware, 0, len(g.middlewares)+len(extra))
	out = append(out, g.middlewares...)
	return append(out, extra...)
}

func chain(handler http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

func joinPath(parts ...string) string {
	segments := parts[:0:0]
	for _, part := range parts {
		if trimmed := strings.Trim(part, "/"); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}
	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/")
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	return joinPath(path)
}

// Param reads a path parameter from the request, e.g. Param(r, "id") for a
// route registered as "/products/{id}".
func Param(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// ParamUint parses a numeric path parameter. Returns 0 when absent or not
// a number.
func ParamUint(r *http.Request, name string) uint {
	n, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}
