// Package navigation implements client side navigation between routes.
//
// Navigating to the same page (only the hash differs) updates the URL and
// scrolls. Navigating to another page plans the route, waits for its content
// while the current route stays mounted, then swaps routes and cleans up the
// outgoing one. Scrolling follows what a full page load of the URL would do:
//
//   - same page, no hash: scroll to the top
//   - same page, hash: scroll to the target if it exists, else stay
//   - other page, no hash: scroll to the top
//   - other page, hash: once the content mounts, scroll to the target if it
//     exists, else to the top
package navigation

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/google/uuid"

	"github.com/vcrobe/nojs-ssr/console"
	"github.com/vcrobe/nojs-ssr/events"
	"github.com/vcrobe/nojs-ssr/head"
	"github.com/vcrobe/nojs-ssr/route"
	"github.com/vcrobe/nojs-ssr/scroll"
	"github.com/vcrobe/nojs-ssr/signals"
	"github.com/vcrobe/nojs-ssr/vdom"
)

// Controller owns the current route and moves between routes.
//
// Route change subscribers run while the controller installs a route; they
// must not call Navigate synchronously. Use Manager, or a goroutine, to
// navigate in response to a route change. Event subscribers may navigate
// synchronously.
type Controller struct {
	router  route.Router
	head    *head.Manager
	history History
	scroll  *scroll.Coordinator
	base    *url.URL

	route  *signals.Signal[route.Route]
	events signals.Topic[Event]

	mu      sync.Mutex
	current *inflight

	// installMu serializes route installs so a navigation that resolved
	// earlier can't be installed after a newer one.
	installMu sync.Mutex
}

type inflight struct {
	cancel context.CancelFunc
}

// NewController creates a controller with initial as the mounted route.
func NewController(initial route.Route, opts Options) (*Controller, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if initial.URL == nil {
		return nil, ErrNoInitialURL
	}

	return &Controller{
		router:  opts.Router,
		head:    opts.Head,
		history: opts.History,
		scroll:  scroll.New(opts.Viewport),
		base:    opts.Base,
		route:   signals.NewSignal(initial),
	}, nil
}

// Route returns the mounted route.
func (c *Controller) Route() route.Route {
	return c.route.Get()
}

// OnRouteChange calls fn with every newly installed route.
func (c *Controller) OnRouteChange(fn func(route.Route)) (unsubscribe func()) {
	return c.route.Subscribe(fn)
}

// OnEvent calls fn for every route change notification.
func (c *Controller) OnEvent(fn func(Event)) (unsubscribe func()) {
	return c.events.Subscribe(fn)
}

// Navigate navigates to target, an absolute URL or one relative to the base
// URL. It returns once the navigation concludes. Only an invalid target is an
// error; route load failures are reported as RouteChangeError events.
// Cancelling ctx aborts the navigation until its content has loaded.
func (c *Controller) Navigate(ctx context.Context, target string, opts ...NavigateOption) error {
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("navigation: invalid URL %q: %w", target, err)
	}
	return c.NavigateURL(ctx, u, opts...)
}

// NavigateURL is Navigate for a parsed URL.
func (c *Controller) NavigateURL(ctx context.Context, target *url.URL, opts ...NavigateOption) error {
	if target == nil {
		return ErrNilURL
	}
	if ctx.Err() != nil {
		return nil
	}

	cfg := navigateConfig{updateHistory: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	u := c.base.ResolveReference(target)

	if c.navigateSamePage(u, cfg) {
		return nil
	}
	c.navigateCrossPage(ctx, u, cfg)
	return nil
}

// navigateSamePage handles a navigation that only changes the hash, reporting
// false if u is for another page.
func (c *Controller) navigateSamePage(u *url.URL, cfg navigateConfig) bool {
	c.installMu.Lock()
	current := c.route.Get()
	if !samePage(current.URL, u) {
		c.installMu.Unlock()
		return false
	}

	if cfg.updateHistory && hashOf(u) != hashOf(current.URL) {
		c.history.PushState(u.String())
	}
	c.route.Set(route.Route{URL: u, Content: current.Content, Cleanup: current.Cleanup})
	c.installMu.Unlock()

	c.scroll.ToHash(hashOf(u))
	return true
}

func (c *Controller) navigateCrossPage(ctx context.Context, u *url.URL, cfg navigateConfig) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	session := uuid.New()
	nav := &inflight{cancel: cancel}

	c.mu.Lock()
	if c.current != nil {
		c.current.cancel()
	}
	c.current = nav
	c.mu.Unlock()

	c.publish(Event{Type: RouteChangeStart, URL: u, Abort: cancel, Session: session})

	plan, err := c.plan(u)
	if err != nil {
		c.release(nav)
		c.publish(Event{Type: RouteChangeError, URL: u, Err: err, Session: session})
		return
	}

	content, err := c.load(ctx, plan)

	c.installMu.Lock()
	aborted := c.release(nav) || ctx.Err() != nil
	if aborted || err != nil {
		c.installMu.Unlock()
		c.discard(u, session, plan, aborted, err)
		return
	}

	if cfg.updateHistory {
		c.history.PushState(u.String())
	}

	hash := hashOf(u)
	if hash == "" {
		c.scroll.ToTop()
	}

	end := &mountNotice{fn: func() {
		if hash != "" {
			c.scroll.ToHashOrTop(hash)
		}
		c.publish(Event{Type: RouteChangeEnd, URL: u, Session: session})
	}}
	// Keyed by page so its DOM is rebuilt rather than patched into the
	// outgoing page's nodes.
	wrapped := vdom.Fragment(pageKey(u), content)
	wrapped.OnMount = end.mounted

	previous := c.route.Get()
	c.route.Set(route.Route{URL: u, Content: wrapped, Cleanup: plan.Cleanup})

	// The outgoing route is cleaned up only now, so its head tags (such as
	// its CSS) stay until the incoming route is installed.
	cleanupErr := previous.RunCleanup()
	c.installMu.Unlock()

	if cleanupErr != nil {
		c.publish(Event{Type: RouteChangeError, URL: u, Err: cleanupErr, Session: session})
	}
	end.installed()
}

// mountNotice runs fn once, after the route is both installed and mounted.
// Mounting may happen while the install still holds installMu.
type mountNotice struct {
	fn func()

	mu      sync.Mutex
	isSet   bool
	isMount bool
}

func (n *mountNotice) installed() {
	n.mu.Lock()
	n.isSet = true
	ready := n.isMount
	n.mu.Unlock()
	if ready {
		n.fn()
	}
}

func (n *mountNotice) mounted() {
	n.mu.Lock()
	if n.isMount {
		n.mu.Unlock()
		return
	}
	n.isMount = true
	ready := n.isSet
	n.mu.Unlock()
	if ready {
		n.fn()
	}
}

// plan asks the router for the route, turning a panic into an error.
func (c *Controller) plan(u *url.URL) (plan route.Plan, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("router panicked: %v", rec)
		}
	}()

	plan, err = c.router(u, c.head, false)
	if err != nil {
		return route.Plan{}, err
	}
	return plan, plan.Validate()
}

type loadResult struct {
	content *vdom.VNode
	err     error
}

// load races the route content against cancellation.
func (c *Controller) load(ctx context.Context, plan route.Plan) (*vdom.VNode, error) {
	done := make(chan loadResult, 1)
	go func() {
		content, err := plan.Load(ctx)
		done <- loadResult{content: content, err: err}
	}()

	select {
	case res := <-done:
		return res.content, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// release drops nav's abort registration, reporting true if a newer
// navigation already superseded it.
func (c *Controller) release(nav *inflight) (superseded bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nav {
		return true
	}
	c.current = nil
	return false
}

// discard cleans up the plan of a navigation that won't be installed.
func (c *Controller) discard(u *url.URL, session uuid.UUID, plan route.Plan, aborted bool, loadErr error) {
	cleanupErr := plan.RunCleanup()

	if aborted {
		c.publish(Event{Type: RouteChangeAbort, URL: u, Session: session})
	} else {
		c.publish(Event{Type: RouteChangeError, URL: u, Err: loadErr, Session: session})
	}

	if cleanupErr != nil {
		c.publish(Event{Type: RouteChangeError, URL: u, Err: cleanupErr, Session: session})
	}
}

func (c *Controller) publish(ev Event) {
	if ev.Err != nil {
		console.Error("Navigation", ev.Session.String(), ev.Type.String(), ev.URL.String(), ev.Err)
	} else {
		console.Log("Navigation", ev.Session.String(), ev.Type.String(), ev.URL.String())
	}

	c.events.Publish(ev)
	events.DispatchCustom(ev.Type.String(), ev.detail())
}

// pageKey identifies the page of u: its path and query.
func pageKey(u *url.URL) string {
	if u.RawQuery == "" {
		return u.EscapedPath()
	}
	return u.EscapedPath() + "?" + u.RawQuery
}

// samePage reports whether a and b differ at most in their hash.
func samePage(a, b *url.URL) bool {
	return a.EscapedPath() == b.EscapedPath() && a.RawQuery == b.RawQuery
}

// hashOf returns the URL hash with its leading "#", or "" when there is none.
func hashOf(u *url.URL) string {
	if u.Fragment == "" {
		return ""
	}
	return "#" + u.EscapedFragment()
}
