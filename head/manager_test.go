//go:build !wasm

package head

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/nojs-ssr/vdom"
)

// keysOf returns the fragment keys of rendered head content.
func keysOf(content []*vdom.VNode) []string {
	keys := make([]string, 0, len(content))
	for _, frag := range content {
		keys = append(keys, frag.Key)
	}
	return keys
}

// winnerOf returns the content wrapped by the fragment with the given key.
func winnerOf(t *testing.T, content []*vdom.VNode, key string) *vdom.VNode {
	t.Helper()
	for _, frag := range content {
		if frag.Key == key {
			require.Len(t, frag.Children, 1)
			return frag.Children[0]
		}
	}
	t.Fatalf("no fragment with key %q", key)
	return nil
}

func countUpdates(m *Manager) *int {
	n := 0
	m.OnUpdate(func() { n++ })
	return &n
}

func TestManager_ContentOrderedByKey(t *testing.T) {
	m := NewManager()

	// Arrange: insertion order differs from key order
	for _, key := range []string{"c", "a", "2-/b.css", "b", "1-meta"} {
		require.NoError(t, m.Add(key, vdom.Title(key), 0))
	}

	// Assert
	assert.Equal(t, []string{"1-meta", "2-/b.css", "a", "b", "c"}, keysOf(m.Content()))
}

func TestManager_HigherPriorityWins(t *testing.T) {
	m := NewManager()
	high := vdom.Title("high")
	low := vdom.Title("low")

	require.NoError(t, m.Add("title", high, 2))
	require.NoError(t, m.Add("title", low, 1))

	content := m.Content()
	require.Len(t, content, 1)
	assert.Same(t, high, winnerOf(t, content, "title"))
}

func TestManager_EqualPriorityLaterWins(t *testing.T) {
	m := NewManager()
	first := vdom.Title("first")
	second := vdom.Title("second")

	require.NoError(t, m.Add("title", first, 0))
	require.NoError(t, m.Add("title", second, 0))

	assert.Same(t, second, winnerOf(t, m.Content(), "title"))

	// Removing the winner reveals the earlier entry again.
	m.Remove(second)
	assert.Same(t, first, winnerOf(t, m.Content(), "title"))
}

func TestManager_AddIsIdempotent(t *testing.T) {
	m := NewManager()
	updates := countUpdates(m)
	title := vdom.Title("a")

	require.NoError(t, m.Add("a", title, 1))
	require.NoError(t, m.Add("a", title, 1))

	assert.Equal(t, 1, *updates)
	assert.Equal(t, 1, m.Len())
}

func TestManager_AddConflictingKey(t *testing.T) {
	m := NewManager()
	x := vdom.Title("x")
	require.NoError(t, m.Add("a", x, 1))
	updates := countUpdates(m)

	err := m.Add("b", x, 1)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "key", conflict.Field)
	assert.Equal(t, "a", conflict.Original)
	assert.Contains(t, err.Error(), "different `key` of `a`")
	assert.Equal(t, 0, *updates)
	assert.Equal(t, []string{"a"}, keysOf(m.Content()))
}

func TestManager_AddConflictingPriority(t *testing.T) {
	m := NewManager()
	x := vdom.Title("x")
	require.NoError(t, m.Add("a", x, 1))

	err := m.Add("a", x, 2)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "priority", conflict.Field)
	assert.Equal(t, 1, conflict.Original)
	assert.Equal(t, 1, m.Len())
}

func TestManager_AddNilContent(t *testing.T) {
	m := NewManager()
	updates := countUpdates(m)

	err := m.Add("a", nil, 0)

	assert.ErrorIs(t, err, ErrContentRequired)
	assert.Equal(t, 0, *updates)
}

func TestManager_EmptyKeyIsAValidKey(t *testing.T) {
	m := NewManager()

	require.NoError(t, m.Add("", vdom.Title("empty"), 0))

	assert.Equal(t, []string{""}, keysOf(m.Content()))
}

func TestManager_RemoveNotifiesOnlyWhenPresent(t *testing.T) {
	m := NewManager()
	title := vdom.Title("a")
	require.NoError(t, m.Add("a", title, 0))
	updates := countUpdates(m)

	m.Remove(vdom.Title("a")) // equal but not the same content
	assert.Equal(t, 0, *updates)

	m.Remove(title)
	assert.Equal(t, 1, *updates)
	assert.False(t, m.Has(title))

	m.Remove(title)
	assert.Equal(t, 1, *updates)
}

func TestManager_ContentIsPure(t *testing.T) {
	m := NewManager()
	updates := countUpdates(m)
	require.NoError(t, m.Add("b", vdom.Title("b"), 0))
	require.NoError(t, m.Add("a", vdom.Title("a"), 0))

	first := m.Content()
	second := m.Content()

	assert.Equal(t, keysOf(first), keysOf(second))
	assert.Equal(t, 2, *updates)
	assert.Equal(t, 2, m.Len())
}

func TestManager_RenderedHTML(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Add("1-title", vdom.Title("Home"), 0))
	require.NoError(t, m.Add("0-meta", vdom.Meta(map[string]any{"name": "description", "content": "Hi"}), 0))

	html, err := vdom.RenderString(vdom.Fragment("", m.Content()...))

	require.NoError(t, err)
	assert.Equal(t, `<meta content="Hi" name="description"/><title>Home</title>`, html)
}
