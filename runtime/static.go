package runtime

import (
	"errors"

	"github.com/vcrobe/nojs-ssr/vdom"
)

// ErrStaticNavigation is returned when a component navigates during server rendering.
var ErrStaticNavigation = errors.New("navigation is unavailable while rendering on the server")

// StaticRenderer renders a component tree once, for server side rendering.
// OnInit runs for every component; OnMount hooks and OnDestroy never run.
type StaticRenderer struct {
	initialized map[string]bool
}

var _ Renderer = (*StaticRenderer)(nil)

// RenderStatic renders root to a VNode tree.
func RenderStatic(root Component) *vdom.VNode {
	r := &StaticRenderer{initialized: make(map[string]bool)}
	return r.RenderChild(rootKey, root)
}

// RenderChild initializes and renders child.
func (r *StaticRenderer) RenderChild(key string, child Component) *vdom.VNode {
	child.SetRenderer(r)
	if !r.initialized[key] {
		if initializer, ok := child.(Initializer); ok {
			callOnInit(initializer, key)
		}
		r.initialized[key] = true
	}
	return child.Render(r)
}

// ReRender is a no-op; a static render happens exactly once.
func (r *StaticRenderer) ReRender() {}

// Navigate always fails with ErrStaticNavigation.
func (r *StaticRenderer) Navigate(path string) error {
	return ErrStaticNavigation
}
