package head

import (
	"sync"

	"github.com/vcrobe/nojs-ssr/runtime"
	"github.com/vcrobe/nojs-ssr/vdom"
)

// Scheduler runs fn later, after the current burst of work.
type Scheduler func(fn func())

// Deferred runs each task on its own goroutine, which on js/wasm runs once
// the current callback yields.
func Deferred(fn func()) { go fn() }

// Content is the component that renders a Manager's head tags. Updates that
// arrive close together are coalesced: each one schedules a refresh, and only
// the refresh scheduled last applies the manager's content and re-renders.
type Content struct {
	runtime.ComponentBase

	manager     *Manager
	schedule    Scheduler
	mu          sync.Mutex
	generation  uint64
	content     []*vdom.VNode
	unsubscribe func()
}

// NewContent creates a head content component for m using the Deferred scheduler.
func NewContent(m *Manager) *Content {
	return NewContentWithScheduler(m, Deferred)
}

// NewContentWithScheduler creates a head content component whose refreshes
// run through schedule.
func NewContentWithScheduler(m *Manager, schedule Scheduler) *Content {
	return &Content{
		manager:  m,
		schedule: schedule,
		content:  m.Content(),
	}
}

// OnInit subscribes to manager updates.
func (c *Content) OnInit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unsubscribe == nil {
		c.unsubscribe = c.manager.OnUpdate(c.onUpdate)
	}
}

// OnDestroy unsubscribes from manager updates; pending refreshes are dropped.
func (c *Content) OnDestroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.generation++
}

func (c *Content) onUpdate() {
	c.mu.Lock()
	c.generation++
	generation := c.generation
	c.mu.Unlock()

	c.schedule(func() {
		c.mu.Lock()
		if generation != c.generation {
			c.mu.Unlock()
			return
		}
		c.content = c.manager.Content()
		c.mu.Unlock()

		c.StateHasChanged()
	})
}

// Render returns the current head tags as a fragment.
func (c *Content) Render(r runtime.Renderer) *vdom.VNode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return vdom.Fragment("", c.content...)
}
