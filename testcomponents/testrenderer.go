package testcomponents

import (
	"sync"

	"github.com/vcrobe/nojs-ssr/runtime"
	"github.com/vcrobe/nojs-ssr/vdom"
)

// TestRenderer is a minimal test harness that implements runtime.Renderer
// for in-memory testing without browser or WASM dependencies.
//
// It captures VDOM output from component renders and allows tests to:
// - Attach components to the renderer
// - Trigger re-renders via StateHasChanged()
// - Inspect the resulting VDOM tree and how often it was rendered
// - See which paths components asked to navigate to
type TestRenderer struct {
	mu          sync.Mutex
	currentVDOM *vdom.VNode
	component   runtime.Component
	renders     int
	navigations []string
	runHooks    bool
}

// Compile-time assertion to ensure TestRenderer implements runtime.Renderer interface.
var _ runtime.Renderer = (*TestRenderer)(nil)

// NewTestRenderer creates a test renderer attached to the given component.
func NewTestRenderer(comp runtime.Component) *TestRenderer {
	r := &TestRenderer{
		component: comp,
	}
	comp.SetRenderer(r)
	return r
}

// WithMountHooks makes every render run the tree's OnMount hooks, the way the
// browser renderer does once the tree is in the DOM.
func (r *TestRenderer) WithMountHooks() *TestRenderer {
	r.runHooks = true
	return r
}

// RenderRoot performs the initial render of the component.
// This should be called at the start of a test to get the initial VDOM.
func (r *TestRenderer) RenderRoot() *vdom.VNode {
	if initializer, ok := r.component.(runtime.Initializer); ok {
		initializer.OnInit()
	}
	return r.render()
}

// ReRender performs a re-render of the component.
// This is called by StateHasChanged() when the component requests a re-render.
func (r *TestRenderer) ReRender() {
	r.render()
}

func (r *TestRenderer) render() *vdom.VNode {
	n := r.component.Render(r)

	r.mu.Lock()
	r.currentVDOM = n
	r.renders++
	r.mu.Unlock()

	if r.runHooks {
		vdom.RunMountHooks(n)
	}
	return n
}

// GetCurrentVDOM returns the most recently rendered VDOM tree.
// Tests use this to inspect the component's output after renders.
func (r *TestRenderer) GetCurrentVDOM() *vdom.VNode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentVDOM
}

// Renders returns how many times the component has been rendered.
func (r *TestRenderer) Renders() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.renders
}

// RenderChild renders the child directly; tests rarely need instance reuse.
func (r *TestRenderer) RenderChild(key string, child runtime.Component) *vdom.VNode {
	child.SetRenderer(r)
	return child.Render(r)
}

// Navigate records the requested path.
func (r *TestRenderer) Navigate(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.navigations = append(r.navigations, path)
	return nil
}

// Navigations returns the paths passed to Navigate, in order.
func (r *TestRenderer) Navigations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.navigations...)
}
