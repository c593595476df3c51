// Package hydrate starts the client side application over a server rendered
// document: the body app first, so route content has registered its head
// tags, then the head app.
package hydrate

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/vcrobe/nojs-ssr/console"
	"github.com/vcrobe/nojs-ssr/head"
	"github.com/vcrobe/nojs-ssr/navigation"
	"github.com/vcrobe/nojs-ssr/route"
	"github.com/vcrobe/nojs-ssr/router"
	"github.com/vcrobe/nojs-ssr/runtime"
	"github.com/vcrobe/nojs-ssr/scroll"
)

var (
	ErrNoBodySurface = errors.New("hydrate: body surface is required")
	ErrNoHeadSurface = errors.New("hydrate: head surface is required")
)

// Options configures Hydrate.
type Options struct {
	Router route.Router

	// NewLayout creates the layout wrapping every route's content. It may
	// register head tags with hm. Nil renders route content alone.
	NewLayout func(hm *head.Manager) router.Layout

	// Location is the document URL, Base the document base URL. Base
	// defaults to Location.
	Location string
	Base     *url.URL

	History  navigation.History
	Viewport scroll.Viewport

	Body runtime.Surface
	Head runtime.Surface

	// Scheduler defers head re-renders; nil uses a goroutine.
	Scheduler head.Scheduler
}

// App is a hydrated application.
type App struct {
	Controller *navigation.Controller
	Head       *head.Manager
	Shell      *router.AppShell

	body     *runtime.RendererImpl
	headApp  *runtime.RendererImpl
	stopPop  func()
	stopSync func()
}

// Hydrate loads the initial route and mounts the application. Failing to plan
// or load the initial route is fatal, there is no previous route to keep.
func Hydrate(ctx context.Context, opts Options) (*App, error) {
	if opts.Body == nil {
		return nil, ErrNoBodySurface
	}
	if opts.Head == nil {
		return nil, ErrNoHeadSurface
	}
	if opts.Router == nil {
		return nil, navigation.ErrNoRouter
	}

	location, err := url.Parse(opts.Location)
	if err != nil {
		return nil, fmt.Errorf("hydrate: invalid location %q: %w", opts.Location, err)
	}
	base := opts.Base
	if base == nil {
		base = location
	}

	hm := head.NewManager()

	plan, err := opts.Router(location, hm, true)
	if err != nil {
		return nil, fmt.Errorf("hydrate: plan initial route %s: %w", location, err)
	}
	content, err := plan.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("hydrate: load initial route %s: %w", location, err)
	}

	initial := route.Route{URL: location, Content: content, Cleanup: plan.Cleanup}

	ctrl, err := navigation.NewController(initial, navigation.Options{
		Router:   opts.Router,
		Head:     hm,
		History:  opts.History,
		Viewport: opts.Viewport,
		Base:     base,
	})
	if err != nil {
		return nil, err
	}

	var layout router.Layout
	if opts.NewLayout != nil {
		layout = opts.NewLayout(hm)
	}
	shell := router.NewAppShell(layout, initial)
	body := runtime.NewRenderer(ctrl.Manager(), opts.Body)
	body.SetCurrentComponent(shell)
	body.RenderRoot()

	schedule := opts.Scheduler
	if schedule == nil {
		schedule = head.Deferred
	}
	headContent := head.NewContentWithScheduler(hm, schedule)
	headApp := runtime.NewRenderer(ctrl.Manager(), opts.Head)
	headApp.SetCurrentComponent(headContent)
	headApp.RenderRoot()

	app := &App{
		Controller: ctrl,
		Head:       hm,
		Shell:      shell,
		body:       body,
		headApp:    headApp,
		stopSync:   ctrl.OnRouteChange(shell.SetRoute),
		stopPop:    ctrl.Start(),
	}

	console.Log("[Hydrate] Hydrated", location.String())
	return app, nil
}

// Close stops following history and destroys both apps.
func (a *App) Close() {
	a.stopPop()
	a.stopSync()
	a.body.Destroy()
	a.headApp.Destroy()
}
