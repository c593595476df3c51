// Package router maps URL paths to route plans.
//
// Matching is deliberately small: literal segments and "{name}" parameter
// segments, checked in registration order.
package router

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/vcrobe/nojs-ssr/console"
	"github.com/vcrobe/nojs-ssr/head"
	"github.com/vcrobe/nojs-ssr/route"
)

// ErrNoRoute is returned for a path no pattern matches when the table has no
// not found handler.
var ErrNoRoute = errors.New("no route for path")

// Table is an ordered route table. Its Route method is a route.Router.
type Table struct {
	mu       sync.RWMutex
	entries  []Entry
	notFound Handler
}

var _ route.Router = (*Table)(nil).Route

// NewTable creates a table holding entries.
func NewTable(entries ...Entry) *Table {
	t := &Table{}
	for _, e := range entries {
		t.Handle(e.Pattern, e.Handler)
	}
	return t
}

// Handle registers h for pattern. The first registered matching pattern wins.
func (t *Table) Handle(pattern string, h Handler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, Entry{Pattern: pattern, Handler: h})
}

// HandleNotFound registers the handler for paths without a matching pattern.
func (t *Table) HandleNotFound(h Handler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notFound = h
}

// Route plans the route for u.
func (t *Table) Route(u *url.URL, hm *head.Manager, isInitialRoute bool) (route.Plan, error) {
	t.mu.RLock()
	entry, ok := t.match(u.Path)
	notFound := t.notFound
	t.mu.RUnlock()

	req := Request{URL: u, Head: hm, IsInitialRoute: isInitialRoute}

	if !ok {
		if notFound == nil {
			console.Warn("[Router] No route found for path:", u.Path)
			return route.Plan{}, fmt.Errorf("%w: %s", ErrNoRoute, u.Path)
		}
		req.Params = Params{}
		return notFound(req)
	}

	req.Params = extractParams(entry.Pattern, u.Path)
	return entry.Handler(req)
}

func (t *Table) match(path string) (Entry, bool) {
	for _, e := range t.entries {
		if matchesPattern(e.Pattern, path) {
			return e, true
		}
	}
	return Entry{}, false
}

func normalize(path string) string {
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return "/"
	}
	return path
}

func segments(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}

func isParam(segment string) bool {
	return len(segment) > 2 && strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}")
}

// matchesPattern checks if an actual path matches a route pattern.
func matchesPattern(pattern, path string) bool {
	pattern = normalize(pattern)
	path = normalize(path)

	if pattern == path {
		return true
	}

	patternParts := segments(pattern)
	pathParts := segments(path)

	if len(patternParts) != len(pathParts) {
		return false
	}

	for i := range patternParts {
		if isParam(patternParts[i]) {
			if pathParts[i] == "" {
				return false
			}
			continue
		}
		if patternParts[i] != pathParts[i] {
			return false
		}
	}

	return true
}

// extractParams parses URL parameters from a path based on route pattern.
func extractParams(pattern, path string) Params {
	patternParts := segments(normalize(pattern))
	pathParts := segments(normalize(path))

	params := make(Params)
	for i := range patternParts {
		if i >= len(pathParts) {
			break
		}
		if isParam(patternParts[i]) {
			params[strings.Trim(patternParts[i], "{}")] = pathParts[i]
		}
	}
	return params
}
