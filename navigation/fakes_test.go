//go:build !wasm

package navigation

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vcrobe/nojs-ssr/head"
	"github.com/vcrobe/nojs-ssr/route"
	"github.com/vcrobe/nojs-ssr/vdom"
)

type fakeHistory struct {
	mu       sync.Mutex
	pushed   []string
	location string
	onPop    func()
}

func (h *fakeHistory) PushState(url string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pushed = append(h.pushed, url)
	h.location = url
}

func (h *fakeHistory) Location() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.location
}

func (h *fakeHistory) OnPopState(fn func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPop = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.onPop = nil
	}
}

func (h *fakeHistory) popTo(location string) {
	h.mu.Lock()
	h.location = location
	fn := h.onPop
	h.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (h *fakeHistory) pushes() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.pushed...)
}

type fakeViewport struct {
	mu      sync.Mutex
	targets map[string]bool
	calls   []string
}

func (v *fakeViewport) ScrollTo(x, y int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls = append(v.calls, "top")
}

func (v *fakeViewport) ScrollIntoView(selector string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.targets[selector] {
		return false
	}
	v.calls = append(v.calls, selector)
	return true
}

func (v *fakeViewport) scrolls() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.calls...)
}

// callLog records the order of route installs, cleanups and events.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) get() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// fakeRouter serves plans by path; unknown paths are router errors.
type fakeRouter struct {
	mu    sync.Mutex
	plans map[string]func() route.Plan
	calls int
}

var errUnknownRoute = errors.New("unknown route")

func (r *fakeRouter) route(u *url.URL, hm *head.Manager, isInitialRoute bool) (route.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	plan, ok := r.plans[u.Path]
	if !ok {
		return route.Plan{}, errUnknownRoute
	}
	return plan(), nil
}

// readyPlan returns a plan for content whose cleanup is logged.
func readyPlan(log *callLog, name string, content *vdom.VNode) func() route.Plan {
	return func() route.Plan {
		return route.Plan{
			Content: route.Ready(content),
			Cleanup: func() { log.add("cleanup " + name) },
		}
	}
}

// blockingPlan returns a plan whose content waits for ctx, signalling on
// started once loading began.
func blockingPlan(log *callLog, name string, started chan<- struct{}) func() route.Plan {
	return func() route.Plan {
		return route.Plan{
			Content: func(ctx context.Context) (*vdom.VNode, error) {
				close(started)
				<-ctx.Done()
				return nil, ctx.Err()
			},
			Cleanup: func() { log.add("cleanup " + name) },
		}
	}
}

type harness struct {
	ctrl     *Controller
	router   *fakeRouter
	history  *fakeHistory
	viewport *fakeViewport
	log      *callLog
	initial  *vdom.VNode

	mu     sync.Mutex
	events []Event
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

// newHarness creates a controller mounted on http://localhost/a. Installed
// routes are "mounted" right away, running their mount hooks.
func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		router:   &fakeRouter{plans: make(map[string]func() route.Plan)},
		history:  &fakeHistory{location: "http://localhost/a"},
		viewport: &fakeViewport{targets: map[string]bool{"#target": true}},
		log:      &callLog{},
		initial:  vdom.Paragraph("a", nil),
	}

	initial := route.Route{
		URL:     mustParse(t, "http://localhost/a"),
		Content: h.initial,
		Cleanup: func() { h.log.add("cleanup a") },
	}

	ctrl, err := NewController(initial, Options{
		Router:   h.router.route,
		Head:     head.NewManager(),
		History:  h.history,
		Viewport: h.viewport,
		Base:     mustParse(t, "http://localhost/"),
	})
	require.NoError(t, err)
	h.ctrl = ctrl

	ctrl.OnRouteChange(func(r route.Route) {
		h.log.add("install " + r.URL.String())
		vdom.RunMountHooks(r.Content)
	})
	ctrl.OnEvent(func(ev Event) {
		h.mu.Lock()
		h.events = append(h.events, ev)
		h.mu.Unlock()
		h.log.add(ev.Type.String() + " " + ev.URL.String())
	})

	return h
}

func (h *harness) eventTypes() []EventType {
	h.mu.Lock()
	defer h.mu.Unlock()
	types := make([]EventType, 0, len(h.events))
	for _, ev := range h.events {
		types = append(types, ev.Type)
	}
	return types
}

func (h *harness) lastEvent() Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.events[len(h.events)-1]
}
