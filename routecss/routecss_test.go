//go:build !wasm

package routecss

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/nojs-ssr/head"
	"github.com/vcrobe/nojs-ssr/route"
	"github.com/vcrobe/nojs-ssr/vdom"
)

// fakeChecker reports a stylesheet loaded once it has been polled `after` times.
type fakeChecker struct {
	mu     sync.Mutex
	after  int
	polls  map[string]int
	failOn string
}

func newFakeChecker(after int) *fakeChecker {
	return &fakeChecker{after: after, polls: make(map[string]int)}
}

func (c *fakeChecker) HasStyleSheet(href string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.polls[href]++
	if href == c.failOn {
		return false, errors.New("cross origin")
	}
	return c.polls[href] >= c.after, nil
}

func (c *fakeChecker) pollCount(href string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.polls[href]
}

func clientOptions(checker StyleSheetChecker) Options {
	return Options{
		Environment:  route.Client,
		Checker:      checker,
		PollInterval: time.Millisecond,
		SettleDelay:  time.Millisecond,
	}
}

func renderHead(t *testing.T, hm *head.Manager) string {
	t.Helper()
	out, err := vdom.RenderString(vdom.Fragment("", hm.Content()...))
	require.NoError(t, err)
	return out
}

func TestLinkCSS(t *testing.T) {
	local, err := vdom.RenderString(LinkCSS("/a.css"))
	require.NoError(t, err)
	assert.Equal(t, `<link href="/a.css" rel="stylesheet"/>`, local)

	remote, err := vdom.RenderString(LinkCSS("https://cdn.example.com/b.css"))
	require.NoError(t, err)
	assert.Equal(t, `<link crossorigin="anonymous" href="https://cdn.example.com/b.css" rel="stylesheet"/>`, remote)
}

func TestCSS_LinksWhileMounted(t *testing.T) {
	hm := head.NewManager()
	css := CSS(hm, "/styles/app.css")

	css.OnInit()
	assert.Equal(t, `<link href="/styles/app.css" rel="stylesheet"/>`, renderHead(t, hm))
	assert.Equal(t, HeadKey("/styles/app.css"), hm.Content()[0].Key)

	css.OnDestroy()
	assert.Empty(t, renderHead(t, hm))
}

func TestPlan_InitialRouteDoesNotWait(t *testing.T) {
	hm := head.NewManager()
	checker := newFakeChecker(1000)
	content := vdom.Paragraph("page", nil)

	plan := Plan(Ready(ContentWithCSS{Content: content, CSS: []string{"/a.css", "/b.css"}}), hm, true, clientOptions(checker))
	got, err := plan.Content(context.Background())

	require.NoError(t, err)
	assert.Same(t, content, got)
	assert.Equal(t, 2, hm.Len())
	assert.Zero(t, checker.pollCount("/a.css"))
	assert.Equal(t, `<link href="/a.css" rel="stylesheet"/><link href="/b.css" rel="stylesheet"/>`, renderHead(t, hm))
}

func TestPlan_ServerDoesNotWait(t *testing.T) {
	hm := head.NewManager()
	checker := newFakeChecker(1000)
	opts := clientOptions(checker)
	opts.Environment = route.Server

	plan := Plan(Ready(ContentWithCSS{CSS: []string{"/a.css"}}), hm, false, opts)
	_, err := plan.Content(context.Background())

	require.NoError(t, err)
	assert.Zero(t, checker.pollCount("/a.css"))
}

func TestPlan_WaitsForEveryStyleSheet(t *testing.T) {
	hm := head.NewManager()
	checker := newFakeChecker(3)
	content := vdom.Paragraph("page", nil)

	plan := Plan(Ready(ContentWithCSS{Content: content, CSS: []string{"/a.css", "/b.css"}}), hm, false, clientOptions(checker))
	got, err := plan.Content(context.Background())

	require.NoError(t, err)
	assert.Same(t, content, got)
	assert.GreaterOrEqual(t, checker.pollCount("/a.css"), 3)
	assert.GreaterOrEqual(t, checker.pollCount("/b.css"), 3)
}

func TestPlan_DuplicateHrefsRegisterOnce(t *testing.T) {
	hm := head.NewManager()

	plan := Plan(Ready(ContentWithCSS{CSS: []string{"/a.css", "/a.css"}}), hm, true, Options{})
	_, err := plan.Content(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, hm.Len())
}

func TestPlan_EmptyHref(t *testing.T) {
	hm := head.NewManager()

	plan := Plan(Ready(ContentWithCSS{CSS: []string{"/a.css", ""}}), hm, true, Options{})
	_, err := plan.Content(context.Background())

	assert.ErrorIs(t, err, ErrEmptyHref)
	assert.Zero(t, hm.Len())
}

func TestPlan_SourceError(t *testing.T) {
	boom := errors.New("boom")
	src := func(context.Context) (ContentWithCSS, error) { return ContentWithCSS{}, boom }

	_, err := Plan(src, head.NewManager(), false, Options{}).Content(context.Background())

	assert.ErrorIs(t, err, boom)
}

func TestPlan_MissingCollaborators(t *testing.T) {
	_, err := Plan(nil, head.NewManager(), false, Options{}).Content(context.Background())
	assert.ErrorIs(t, err, ErrNoSource)

	_, err = Plan(Ready(ContentWithCSS{}), nil, false, Options{}).Content(context.Background())
	assert.ErrorIs(t, err, ErrNoHeadManager)
}

func TestPlan_CleanupEndsWaitAndRemovesLinks(t *testing.T) {
	hm := head.NewManager()
	var polled atomic.Bool
	checker := CheckerFunc(func(string) (bool, error) {
		polled.Store(true)
		return false, nil
	})
	content := vdom.Paragraph("page", nil)

	plan := Plan(Ready(ContentWithCSS{Content: content, CSS: []string{"/a.css"}}), hm, false, clientOptions(checker))

	result := make(chan *vdom.VNode, 1)
	go func() {
		got, err := plan.Content(context.Background())
		assert.NoError(t, err)
		result <- got
	}()

	require.Eventually(t, polled.Load, time.Second, time.Millisecond)
	assert.Equal(t, 1, hm.Len())

	plan.Cleanup()
	plan.Cleanup()

	select {
	case got := <-result:
		assert.Same(t, content, got)
	case <-time.After(time.Second):
		t.Fatal("load still pending after cleanup")
	}
	assert.Zero(t, hm.Len())
}

func TestPlan_NoLinksAfterCleanup(t *testing.T) {
	hm := head.NewManager()
	plan := Plan(Ready(ContentWithCSS{CSS: []string{"/a.css"}}), hm, false, clientOptions(newFakeChecker(1)))

	plan.Cleanup()
	_, err := plan.Content(context.Background())

	require.NoError(t, err)
	assert.Zero(t, hm.Len())
}

func TestPlan_ContextCancelStopsWait(t *testing.T) {
	hm := head.NewManager()
	checker := CheckerFunc(func(string) (bool, error) { return false, nil })
	ctx, cancel := context.WithCancel(context.Background())

	plan := Plan(Ready(ContentWithCSS{CSS: []string{"/a.css"}}), hm, false, clientOptions(checker))

	errs := make(chan error, 1)
	go func() {
		_, err := plan.Content(ctx)
		errs <- err
	}()
	cancel()

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("load ignored context cancellation")
	}
}

func TestPlan_CheckerErrorCountsAsNotLoaded(t *testing.T) {
	hm := head.NewManager()
	checker := newFakeChecker(1)
	checker.failOn = "/broken.css"

	plan := Plan(Ready(ContentWithCSS{CSS: []string{"/broken.css"}}), hm, false, clientOptions(checker))

	done := make(chan struct{})
	go func() {
		_, _ = plan.Content(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool { return checker.pollCount("/broken.css") >= 3 }, time.Second, time.Millisecond)
	select {
	case <-done:
		t.Fatal("load finished although the stylesheet never loaded")
	default:
	}

	plan.Cleanup()
	<-done
}

func TestOptions_Defaults(t *testing.T) {
	opts := Options{}.withDefaults()

	assert.Equal(t, 10*time.Millisecond, opts.PollInterval)
	assert.Equal(t, 50*time.Millisecond, opts.SettleDelay)

	custom := Options{PollInterval: time.Second, SettleDelay: 2 * time.Second}.withDefaults()
	assert.Equal(t, time.Second, custom.PollInterval)
	assert.Equal(t, 2*time.Second, custom.SettleDelay)
}

func TestPlan_WaitsSettleDelayAfterLoad(t *testing.T) {
	hm := head.NewManager()
	opts := clientOptions(newFakeChecker(1))
	opts.SettleDelay = 40 * time.Millisecond

	plan := Plan(Ready(ContentWithCSS{Content: vdom.Paragraph("page", nil), CSS: []string{"/a.css"}}), hm, false, opts)

	started := time.Now()
	_, err := plan.Content(context.Background())
	elapsed := time.Since(started)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, elapsed, opts.SettleDelay)
}
