// Package routecss plans routes whose content depends on stylesheets. The
// stylesheets are placed in the document head before the content mounts and
// are removed again when navigation to the route aborts, or once the route is
// replaced by a route for a different page.
package routecss

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vcrobe/nojs-ssr/console"
	"github.com/vcrobe/nojs-ssr/head"
	"github.com/vcrobe/nojs-ssr/route"
	"github.com/vcrobe/nojs-ssr/vdom"
)

const (
	DefaultPollInterval = 10 * time.Millisecond
	DefaultSettleDelay  = 50 * time.Millisecond
)

var (
	ErrNoHeadManager = errors.New("routecss: head manager is required")
	ErrNoSource      = errors.New("routecss: content source is required")
	ErrEmptyHref     = errors.New("routecss: stylesheet href must not be empty")
)

// ContentWithCSS is route content together with the stylesheets it needs.
// CSS holds absolute or relative URLs; duplicates are ignored.
type ContentWithCSS struct {
	Content *vdom.VNode
	CSS     []string
}

// Source resolves route content with its stylesheets.
type Source func(ctx context.Context) (ContentWithCSS, error)

// Ready returns a Source that yields c immediately.
func Ready(c ContentWithCSS) Source {
	return func(context.Context) (ContentWithCSS, error) {
		return c, nil
	}
}

// StyleSheetChecker reports whether the document has finished loading a
// stylesheet, successfully or not.
type StyleSheetChecker interface {
	HasStyleSheet(href string) (bool, error)
}

// CheckerFunc adapts a function to StyleSheetChecker.
type CheckerFunc func(href string) (bool, error)

func (f CheckerFunc) HasStyleSheet(href string) (bool, error) {
	return f(href)
}

// Options configures how a client waits for route stylesheets. Without a
// Checker, or in the Server environment, loaders never wait.
type Options struct {
	Environment  route.Environment
	Checker      StyleSheetChecker
	PollInterval time.Duration
	SettleDelay  time.Duration
}

func (o Options) withDefaults() Options {
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.SettleDelay <= 0 {
		o.SettleDelay = DefaultSettleDelay
	}
	return o
}

// Plan creates a route plan for content with stylesheet dependencies.
//
// Loading registers a LinkCSS head tag per stylesheet and, on the client for
// a route other than the initial one, polls until the document has every
// stylesheet, then waits SettleDelay for the styles to apply. The plan
// cleanup ends any wait, so the pending load returns at once, and removes
// the links.
func Plan(src Source, hm *head.Manager, isInitialRoute bool, opts Options) route.Plan {
	g := &gate{
		hm:      hm,
		opts:    opts.withDefaults(),
		wait:    opts.Environment == route.Client && !isInitialRoute && opts.Checker != nil,
		stopped: make(chan struct{}),
	}

	return route.Plan{
		Content: func(ctx context.Context) (*vdom.VNode, error) {
			if src == nil {
				return nil, ErrNoSource
			}
			return g.load(ctx, src)
		},
		Cleanup: g.cleanup,
	}
}

type gate struct {
	hm   *head.Manager
	opts Options
	wait bool

	mu      sync.Mutex
	links   []*vdom.VNode
	cleaned bool
	stopped chan struct{}
}

func (g *gate) load(ctx context.Context, src Source) (*vdom.VNode, error) {
	if g.hm == nil {
		return nil, ErrNoHeadManager
	}

	resolved, err := src(ctx)
	if err != nil {
		return nil, err
	}

	css, err := uniqueHrefs(resolved.CSS)
	if err != nil {
		return nil, err
	}

	if err := g.register(css); err != nil {
		return nil, err
	}

	if !g.wait || len(css) == 0 {
		return resolved.Content, nil
	}

	if err := g.awaitStyleSheets(ctx, css); err != nil {
		return nil, err
	}
	return resolved.Content, nil
}

// register adds the links, unless cleanup already ran.
func (g *gate) register(css []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cleaned {
		return nil
	}

	for _, href := range css {
		link := LinkCSS(href)
		g.links = append(g.links, link)
		if err := g.hm.Add(HeadKey(href), link, 0); err != nil {
			return fmt.Errorf("add stylesheet %s to head: %w", href, err)
		}
	}
	return nil
}

func (g *gate) awaitStyleSheets(ctx context.Context, css []string) error {
	ticker := time.NewTicker(g.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-g.stopped:
			return nil
		case <-ticker.C:
		}

		if g.allLoaded(css) {
			break
		}
	}

	settle := time.NewTimer(g.opts.SettleDelay)
	defer settle.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-g.stopped:
	case <-settle.C:
	}
	return nil
}

// allLoaded checks every stylesheet. A stylesheet whose status can't be
// checked counts as not loaded for this tick.
func (g *gate) allLoaded(css []string) bool {
	for _, href := range css {
		loaded, err := g.opts.Checker.HasStyleSheet(href)
		if err != nil {
			console.Error(fmt.Errorf("check if the document has stylesheet %s failed: %w", href, err))
			return false
		}
		if !loaded {
			return false
		}
	}
	return true
}

func (g *gate) cleanup() {
	g.mu.Lock()
	if g.cleaned {
		g.mu.Unlock()
		return
	}
	g.cleaned = true
	close(g.stopped)
	links := g.links
	g.links = nil
	g.mu.Unlock()

	for _, link := range links {
		g.hm.Remove(link)
	}
}

func uniqueHrefs(css []string) ([]string, error) {
	seen := make(map[string]struct{}, len(css))
	unique := make([]string, 0, len(css))
	for _, href := range css {
		if href == "" {
			return nil, ErrEmptyHref
		}
		if _, dup := seen[href]; dup {
			continue
		}
		seen[href] = struct{}{}
		unique = append(unique, href)
	}
	return unique, nil
}
