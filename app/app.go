// Package app is the demo application served by nojs-serve and hydrated by
// nojs-client. Both sides build it with New so the server and the client
// plan the same routes.
package app

import (
	"net/url"
	"sync/atomic"

	"github.com/vcrobe/nojs-ssr/events"
	"github.com/vcrobe/nojs-ssr/head"
	"github.com/vcrobe/nojs-ssr/route"
	"github.com/vcrobe/nojs-ssr/routecss"
	"github.com/vcrobe/nojs-ssr/router"
	"github.com/vcrobe/nojs-ssr/vdom"
)

// Head keys used by the application. Keys sort byte-wise, so the prefix
// decides the tag order.
const (
	viewportKey = "0-viewport"
	titleKey    = "1-title"
	descKey     = "1-description"
)

// Options configures the application for the environment it runs in.
type Options struct {
	Environment route.Environment

	// Checker reports loaded stylesheets. Only the client has one.
	Checker routecss.StyleSheetChecker
}

// App is the demo application.
type App struct {
	opts   Options
	table  *router.Table
	onLink atomic.Pointer[func(events.ClickEventArgs)]
}

// New creates the application and its route table.
func New(opts Options) *App {
	a := &App{opts: opts}
	a.table = router.NewTable(
		router.Entry{Pattern: "/", Handler: a.home},
		router.Entry{Pattern: "/about", Handler: a.about},
		router.Entry{Pattern: "/blog", Handler: a.blog},
		router.Entry{Pattern: "/blog/{slug}", Handler: a.post},
	)
	a.table.HandleNotFound(a.notFound)
	return a
}

// Route plans the route for u. It has the signature of route.Router.
func (a *App) Route(u *url.URL, hm *head.Manager, isInitialRoute bool) (route.Plan, error) {
	return a.table.Route(u, hm, isInitialRoute)
}

// NewLayout creates the layout shared by every page and registers the
// site-wide head tags.
func (a *App) NewLayout(hm *head.Manager) router.Layout {
	return newMainLayout(a, hm)
}

// FollowLinks makes application links call h when clicked. Links rendered
// before the call pick up h too.
func (a *App) FollowLinks(h func(events.ClickEventArgs)) {
	a.onLink.Store(&h)
}

// Link creates an anchor to an application route.
func (a *App) Link(href, text string) *vdom.VNode {
	return vdom.Anchor(href, text, map[string]any{
		"onClick": events.AdaptClickEvent(a.followLink),
	})
}

func (a *App) followLink(e events.ClickEventArgs) {
	if h := a.onLink.Load(); h != nil {
		(*h)(e)
	}
}

// plan wraps a routecss plan with the page title and description, which are
// removed again with the page stylesheets.
func (a *App) plan(req router.Request, meta pageMeta, src routecss.Source) (route.Plan, error) {
	title := vdom.Title(meta.title + " · nojs")
	if err := req.Head.Add(titleKey, title, 1); err != nil {
		return route.Plan{}, err
	}

	var desc *vdom.VNode
	if meta.description != "" {
		desc = vdom.Meta(map[string]any{"name": "description", "content": meta.description})
		if err := req.Head.Add(descKey, desc, 1); err != nil {
			req.Head.Remove(title)
			return route.Plan{}, err
		}
	}

	p := routecss.Plan(src, req.Head, req.IsInitialRoute, routecss.Options{
		Environment: a.opts.Environment,
		Checker:     a.opts.Checker,
	})
	cleanupCSS := p.Cleanup
	p.Cleanup = func() {
		req.Head.Remove(title)
		if desc != nil {
			req.Head.Remove(desc)
		}
		cleanupCSS()
	}
	return p, nil
}

type pageMeta struct {
	title       string
	description string
}
