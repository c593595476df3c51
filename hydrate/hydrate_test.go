//go:build !wasm

package hydrate

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/nojs-ssr/head"
	"github.com/vcrobe/nojs-ssr/route"
	"github.com/vcrobe/nojs-ssr/router"
	"github.com/vcrobe/nojs-ssr/testcomponents"
	"github.com/vcrobe/nojs-ssr/vdom"
)

type memoryHistory struct {
	mu       sync.Mutex
	location string
	pushed   []string
}

func (h *memoryHistory) PushState(url string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.location = url
	h.pushed = append(h.pushed, url)
}

func (h *memoryHistory) Location() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.location
}

func (h *memoryHistory) OnPopState(fn func()) func() {
	return func() {}
}

type noScroll struct{}

func (noScroll) ScrollTo(x, y int)                   {}
func (noScroll) ScrollIntoView(selector string) bool { return false }

func titled(title, text string) router.Handler {
	return func(req router.Request) (route.Plan, error) {
		tag := vdom.Title(title)
		if err := req.Head.Add("1-title", tag, 0); err != nil {
			return route.Plan{}, err
		}
		return route.Plan{
			Content: route.Ready(vdom.Paragraph(text, nil)),
			Cleanup: func() { req.Head.Remove(tag) },
		}, nil
	}
}

func runNow(fn func()) { fn() }

func newOptions(body, headSurface *testcomponents.RecordingSurface) Options {
	table := router.NewTable(
		router.Entry{Pattern: "/", Handler: titled("Home", "home")},
		router.Entry{Pattern: "/about", Handler: titled("About", "about")},
	)
	return Options{
		Router:    table.Route,
		Location:  "http://localhost/",
		History:   &memoryHistory{location: "http://localhost/"},
		Viewport:  noScroll{},
		Body:      body,
		Head:      headSurface,
		Scheduler: runNow,
	}
}

func TestHydrate_MountsBodyThenHead(t *testing.T) {
	body := testcomponents.NewRecordingSurface()
	headSurface := testcomponents.NewRecordingSurface()

	app, err := Hydrate(context.Background(), newOptions(body, headSurface))
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, "<p>home</p>", body.HTML())
	assert.Equal(t, "<title>Home</title>", headSurface.HTML())
}

func TestHydrate_NavigationUpdatesBodyAndHead(t *testing.T) {
	body := testcomponents.NewRecordingSurface()
	headSurface := testcomponents.NewRecordingSurface()

	app, err := Hydrate(context.Background(), newOptions(body, headSurface))
	require.NoError(t, err)
	defer app.Close()

	require.NoError(t, app.Controller.Navigate(context.Background(), "/about"))

	assert.Equal(t, "<p>about</p>", body.HTML())
	require.Eventually(t, func() bool {
		return headSurface.HTML() == "<title>About</title>"
	}, time.Second, time.Millisecond)
	assert.Equal(t, 1, app.Head.Len())
}

func TestHydrate_InitialRouteErrorsAreFatal(t *testing.T) {
	boom := errors.New("boom")
	opts := newOptions(testcomponents.NewRecordingSurface(), testcomponents.NewRecordingSurface())
	opts.Router = func(*url.URL, *head.Manager, bool) (route.Plan, error) {
		return route.Plan{Content: func(context.Context) (*vdom.VNode, error) { return nil, boom }}, nil
	}

	_, err := Hydrate(context.Background(), opts)

	assert.ErrorIs(t, err, boom)
}

func TestHydrate_RequiresSurfaces(t *testing.T) {
	opts := newOptions(nil, testcomponents.NewRecordingSurface())
	opts.Body = nil

	_, err := Hydrate(context.Background(), opts)

	assert.ErrorIs(t, err, ErrNoBodySurface)
}
