package head

import (
	"fmt"

	"github.com/vcrobe/nojs-ssr/console"
	"github.com/vcrobe/nojs-ssr/runtime"
	"github.com/vcrobe/nojs-ssr/vdom"
)

// Tag is a component that keeps one head tag registered while it is mounted.
// It renders nothing in place.
type Tag struct {
	runtime.ComponentBase

	manager  *Manager
	key      string
	content  *vdom.VNode
	priority int
}

// NewTag creates a component registering content under key with m.
func NewTag(m *Manager, key string, content *vdom.VNode, priority int) *Tag {
	return &Tag{manager: m, key: key, content: content, priority: priority}
}

// Content returns the registered tag.
func (t *Tag) Content() *vdom.VNode {
	return t.content
}

// OnInit adds the tag to the manager.
func (t *Tag) OnInit() {
	if err := t.manager.Add(t.key, t.content, t.priority); err != nil {
		console.Error(fmt.Errorf("add head tag %s: %w", t.key, err))
	}
}

// OnDestroy removes the tag.
func (t *Tag) OnDestroy() {
	t.manager.Remove(t.content)
}

func (t *Tag) Render(r runtime.Renderer) *vdom.VNode {
	return vdom.Fragment("")
}
