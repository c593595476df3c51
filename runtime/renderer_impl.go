package runtime

import (
	"errors"
	"sync"

	"github.com/vcrobe/nojs-ssr/vdom"
)

// Compile-time assertion to ensure the concrete RendererImpl implements the Renderer interface.
var _ Renderer = (*RendererImpl)(nil)

// ErrNoNavigation is returned by Navigate when the renderer has no NavigationManager.
var ErrNoNavigation = errors.New("no navigation manager configured")

const rootKey = "__root__"

// RendererImpl is the concrete implementation of the Renderer interface.
// It manages the component instance tree, mounts each render onto a Surface
// and runs the OnMount hooks of the mounted tree afterwards.
type RendererImpl struct {
	mu               sync.Mutex
	instances        map[string]Component
	initialized      map[string]bool // Track which components have been initialized
	activeKeys       map[string]bool // Track which components are active in the current render
	currentComponent Component       // The currently active root component
	navManager       NavigationManager
	surface          Surface
	prevVDOM         *vdom.VNode
}

// NewRenderer creates a new runtime renderer mounting onto surface.
// If navManager is nil, the renderer works without routing (useful for non-SPA apps).
func NewRenderer(navManager NavigationManager, surface Surface) *RendererImpl {
	return &RendererImpl{
		instances:   make(map[string]Component),
		initialized: make(map[string]bool),
		activeKeys:  make(map[string]bool),
		navManager:  navManager,
		surface:     surface,
	}
}

// SetNavigationManager sets the navigation manager after creation, for
// controllers that are built once the first render has happened.
func (r *RendererImpl) SetNavigationManager(navManager NavigationManager) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.navManager = navManager
}

// SetCurrentComponent sets the root component to be rendered.
func (r *RendererImpl) SetCurrentComponent(comp Component) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.currentComponent = comp
}

// RenderRoot renders the root component, mounts the result and then runs
// the mounted tree's OnMount hooks. Hooks run outside the render lock so
// they may trigger further renders.
func (r *RendererImpl) RenderRoot() {
	newVDOM := r.render()
	if newVDOM == nil {
		return
	}
	for _, hook := range vdom.MountHooks(newVDOM) {
		callMountHook(hook)
	}
}

func (r *RendererImpl) render() *vdom.VNode {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentComponent == nil {
		return nil
	}

	// Reset activeKeys for this render cycle
	r.activeKeys = make(map[string]bool)
	r.activeKeys[rootKey] = true

	r.currentComponent.SetRenderer(r)
	if !r.initialized[rootKey] {
		if initializer, ok := r.currentComponent.(Initializer); ok {
			callOnInit(initializer, rootKey)
		}
		r.initialized[rootKey] = true
	}

	newVDOM := r.currentComponent.Render(r)
	if r.surface != nil {
		r.surface.Replace(newVDOM)
	}
	r.prevVDOM = newVDOM

	r.cleanupUnmountedComponents()
	return newVDOM
}

// RenderChild renders a child component, reusing the instance stored under
// key so component state survives re-renders.
func (r *RendererImpl) RenderChild(key string, childWithProps Component) *vdom.VNode {
	// Mark this component as active in the current render cycle
	r.activeKeys[key] = true

	instance, exists := r.instances[key]
	if !exists {
		instance = childWithProps
		r.instances[key] = instance
	}

	instance.SetRenderer(r)

	if !r.initialized[key] {
		if initializer, ok := instance.(Initializer); ok {
			callOnInit(initializer, key)
		}
		r.initialized[key] = true
	}

	return instance.Render(r)
}

// cleanupUnmountedComponents removes components that are no longer in the tree
// and calls their OnDestroy lifecycle method if they implement the Cleaner interface.
func (r *RendererImpl) cleanupUnmountedComponents() {
	for key, instance := range r.instances {
		if !r.activeKeys[key] {
			if cleaner, ok := instance.(Cleaner); ok {
				callOnDestroy(cleaner, key)
			}
			delete(r.instances, key)
			delete(r.initialized, key)
		}
	}
}

// Destroy runs OnDestroy for the root and every live child.
func (r *RendererImpl) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.activeKeys = make(map[string]bool)
	r.cleanupUnmountedComponents()
	if cleaner, ok := r.currentComponent.(Cleaner); ok && r.initialized[rootKey] {
		callOnDestroy(cleaner, rootKey)
	}
	delete(r.initialized, rootKey)
}

// ReRender re-runs the render cycle.
func (r *RendererImpl) ReRender() {
	r.RenderRoot()
}

// CurrentVDOM returns the most recently mounted tree.
func (r *RendererImpl) CurrentVDOM() *vdom.VNode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prevVDOM
}

// Navigate delegates to the NavigationManager.
// Returns an error if no navigation manager is configured.
func (r *RendererImpl) Navigate(path string) error {
	r.mu.Lock()
	nav := r.navManager
	r.mu.Unlock()

	if nav == nil {
		return ErrNoNavigation
	}
	return nav.Navigate(path)
}
