package runtime

import "github.com/vcrobe/nojs-ssr/vdom"

// Renderer defines the minimal set of runtime operations used by Render() code.
// This interface has NO build tags, making it available to both WASM and native test builds.
type Renderer interface {
	// RenderChild is used to render child components.
	// The key parameter uniquely identifies the component instance for state preservation.
	RenderChild(key string, childWithProps Component) *vdom.VNode

	// ReRender requests that the renderer re-run the render cycle.
	// Used by StateHasChanged() when component state changes.
	ReRender()

	// Navigate performs client-side navigation to the given path.
	// Used by Link components and programmatic navigation.
	Navigate(path string) error
}

// NavigationManager performs client-side navigation for a renderer.
type NavigationManager interface {
	Navigate(path string) error
}

// Surface is where a renderer mounts its tree: a DOM element in the browser,
// a recording double in tests.
type Surface interface {
	Replace(n *vdom.VNode)
}
