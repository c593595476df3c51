//go:build !wasm

package head

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/nojs-ssr/runtime"
	"github.com/vcrobe/nojs-ssr/testcomponents"
	"github.com/vcrobe/nojs-ssr/vdom"
)

// toggle renders its tag only while shown.
type toggle struct {
	runtime.ComponentBase
	tag  *Tag
	show bool
}

func (c *toggle) Render(r runtime.Renderer) *vdom.VNode {
	if !c.show {
		return vdom.Div(nil)
	}
	return vdom.Div(nil, r.RenderChild("tag", c.tag))
}

func TestTag_RegistersWhileMounted(t *testing.T) {
	m := NewManager()
	tag := NewTag(m, "1-title", vdom.Title("About"), 1)
	parent := &toggle{tag: tag, show: true}

	r := runtime.NewRenderer(nil, testcomponents.NewRecordingSurface())
	r.SetCurrentComponent(parent)
	r.RenderRoot()

	assert.True(t, m.Has(tag.Content()))
	out, err := vdom.RenderString(r.CurrentVDOM())
	require.NoError(t, err)
	assert.Equal(t, "<div></div>", out)

	parent.show = false
	parent.StateHasChanged()

	assert.False(t, m.Has(tag.Content()))
	assert.Zero(t, m.Len())
}

func TestTag_RemovedWhenRendererIsDestroyed(t *testing.T) {
	m := NewManager()
	tag := NewTag(m, "0-viewport", vdom.Meta(map[string]any{"name": "viewport"}), 0)

	r := runtime.NewRenderer(nil, nil)
	r.SetCurrentComponent(&toggle{tag: tag, show: true})
	r.RenderRoot()
	require.Equal(t, 1, m.Len())

	r.Destroy()

	assert.Zero(t, m.Len())
}

func TestTag_ConflictKeepsFirstRegistration(t *testing.T) {
	m := NewManager()
	content := vdom.Title("Home")
	require.NoError(t, m.Add("1-title", content, 1))

	NewTag(m, "1-other", content, 1).OnInit()

	require.Len(t, m.Content(), 1)
	assert.Equal(t, "1-title", m.Content()[0].Key)
}

func TestTag_StaticRenderRegisters(t *testing.T) {
	m := NewManager()
	tag := NewTag(m, "1-title", vdom.Title("Home"), 0)

	runtime.RenderStatic(&toggle{tag: tag, show: true})

	assert.True(t, m.Has(tag.Content()))
}
