//go:build !wasm

package head

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/nojs-ssr/testcomponents"
	"github.com/vcrobe/nojs-ssr/vdom"
)

// queue is a Scheduler that holds tasks until run.
type queue struct {
	tasks []func()
}

func (q *queue) schedule(fn func()) { q.tasks = append(q.tasks, fn) }

func (q *queue) run() {
	tasks := q.tasks
	q.tasks = nil
	for _, task := range tasks {
		task()
	}
}

func TestContent_InitialRenderUsesCurrentContent(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Add("title", vdom.Title("Home"), 0))
	content := NewContentWithScheduler(m, (&queue{}).schedule)

	vnode := testcomponents.NewTestRenderer(content).RenderRoot()

	require.Len(t, vnode.Children, 1)
	assert.Equal(t, "title", vnode.Children[0].Key)
}

func TestContent_BurstOfUpdatesRendersOnce(t *testing.T) {
	// Arrange
	m := NewManager()
	q := &queue{}
	content := NewContentWithScheduler(m, q.schedule)
	renderer := testcomponents.NewTestRenderer(content)
	renderer.RenderRoot()

	// Act: several components register tags in the same tick
	require.NoError(t, m.Add("a", vdom.Title("a"), 0))
	require.NoError(t, m.Add("b", vdom.Meta(nil), 0))
	require.NoError(t, m.Add("c", vdom.Link(nil), 0))
	require.Len(t, q.tasks, 3)
	q.run()

	// Assert: only the last scheduled refresh re-rendered
	assert.Equal(t, 2, renderer.Renders())
	assert.Equal(t, []string{"a", "b", "c"}, keysOf(renderer.GetCurrentVDOM().Children))
}

func TestContent_SeparateTicksRenderSeparately(t *testing.T) {
	m := NewManager()
	q := &queue{}
	content := NewContentWithScheduler(m, q.schedule)
	renderer := testcomponents.NewTestRenderer(content)
	renderer.RenderRoot()

	title := vdom.Title("a")
	require.NoError(t, m.Add("a", title, 0))
	q.run()
	m.Remove(title)
	q.run()

	assert.Equal(t, 3, renderer.Renders())
	assert.Empty(t, renderer.GetCurrentVDOM().Children)
}

func TestContent_DestroyUnsubscribes(t *testing.T) {
	m := NewManager()
	q := &queue{}
	content := NewContentWithScheduler(m, q.schedule)
	renderer := testcomponents.NewTestRenderer(content)
	renderer.RenderRoot()

	require.NoError(t, m.Add("a", vdom.Title("a"), 0))
	content.OnDestroy()
	require.NoError(t, m.Add("b", vdom.Title("b"), 0))
	q.run()

	assert.Len(t, q.tasks, 0)
	assert.Equal(t, 1, renderer.Renders())
}
