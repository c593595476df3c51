// Package route holds the types shared by the router, the route loaders and
// the navigation controller.
package route

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/vcrobe/nojs-ssr/head"
	"github.com/vcrobe/nojs-ssr/vdom"
)

// ErrNoContent is returned for a plan without a content loader.
var ErrNoContent = errors.New("route plan has no content loader")

// Route is a loaded route, ready to render.
type Route struct {
	URL     *url.URL
	Content *vdom.VNode

	// Cleanup runs after navigation to the next route for a different page.
	// It never runs during server rendering.
	Cleanup func()
}

// Loader resolves route content. It may return at once or block until the
// content is ready; it should stop early when ctx is done.
type Loader func(ctx context.Context) (*vdom.VNode, error)

// Plan is what a Router returns for a URL: content that may still be loading,
// and an optional cleanup that runs if navigation to the route aborts or once
// the route is replaced by a route for a different page.
type Plan struct {
	Content Loader
	Cleanup func()
}

// Router plans the route for a URL. Routers may register head tags with hm
// as a side effect; isInitialRoute is true for server rendering and hydration.
type Router func(u *url.URL, hm *head.Manager, isInitialRoute bool) (Plan, error)

// Ready returns a Loader that yields content immediately.
func Ready(content *vdom.VNode) Loader {
	return func(context.Context) (*vdom.VNode, error) {
		return content, nil
	}
}

// Validate checks the plan can be loaded.
func (p Plan) Validate() error {
	if p.Content == nil {
		return ErrNoContent
	}
	return nil
}

// Load validates the plan and runs its loader, turning a loader panic into an error.
func (p Plan) Load(ctx context.Context) (content *vdom.VNode, err error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("route content loader panicked: %v", rec)
		}
	}()
	return p.Content(ctx)
}

// RunCleanup runs the plan cleanup, if any, turning a panic into an error.
func (p Plan) RunCleanup() error {
	return runCleanup(p.Cleanup)
}

// RunCleanup runs the route cleanup, if any, turning a panic into an error.
func (r Route) RunCleanup() error {
	return runCleanup(r.Cleanup)
}

func runCleanup(cleanup func()) (err error) {
	if cleanup == nil {
		return nil
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("route cleanup panicked: %v", rec)
		}
	}()
	cleanup()
	return nil
}
