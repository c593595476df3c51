// Package head manages the tags the application places in the document head.
//
// Components register head content under a key; when several entries share a
// key, the highest priority wins and, among equal priorities, the most
// recently added. The rendered result is ordered by key, so the application
// controls tag order through key naming and consecutive renders keep a stable
// order, which keeps DOM mutations (and flashes of unstyled content) minimal.
package head

import (
	"slices"
	"strings"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/vcrobe/nojs-ssr/signals"
	"github.com/vcrobe/nojs-ssr/vdom"
)

type entry struct {
	key      string
	priority int
}

// Manager is the document head tag registry. Content is identified by
// pointer, so the same *vdom.VNode may be added repeatedly (for example on
// every render) as long as its key and priority never change.
type Manager struct {
	mu      sync.Mutex
	managed *orderedmap.OrderedMap[*vdom.VNode, entry]
	updates signals.Topic[struct{}]
}

// NewManager creates an empty head tag manager.
func NewManager() *Manager {
	return &Manager{
		managed: orderedmap.New[*vdom.VNode, entry](),
	}
}

// Add registers content under key. Adding content that is already registered
// with the same key and priority does nothing.
func (m *Manager) Add(key string, content *vdom.VNode, priority int) error {
	if content == nil {
		return ErrContentRequired
	}

	m.mu.Lock()
	if existing, ok := m.managed.Get(content); ok {
		m.mu.Unlock()
		if existing.key != key {
			return &ConflictError{Field: "key", Original: existing.key}
		}
		if existing.priority != priority {
			return &ConflictError{Field: "priority", Original: existing.priority}
		}
		return nil
	}
	m.managed.Set(content, entry{key: key, priority: priority})
	m.mu.Unlock()

	m.updates.Publish(struct{}{})
	return nil
}

// Remove unregisters content. Unknown content is ignored without notifying.
func (m *Manager) Remove(content *vdom.VNode) {
	m.mu.Lock()
	_, present := m.managed.Delete(content)
	m.mu.Unlock()

	if present {
		m.updates.Publish(struct{}{})
	}
}

// Has reports whether content is registered.
func (m *Manager) Has(content *vdom.VNode) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.managed.Get(content)
	return ok
}

// Len returns the number of registered entries, including overridden ones.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.managed.Len()
}

// Content returns one keyed fragment per key, holding the winning content for
// that key, sorted by key.
func (m *Manager) Content() []*vdom.VNode {
	type winner struct {
		priority int
		content  *vdom.VNode
	}

	m.mu.Lock()
	deduped := make(map[string]winner)
	for pair := m.managed.Newest(); pair != nil; pair = pair.Prev() {
		existing, ok := deduped[pair.Value.key]
		if !ok || existing.priority < pair.Value.priority {
			deduped[pair.Value.key] = winner{priority: pair.Value.priority, content: pair.Key}
		}
	}
	m.mu.Unlock()

	keys := make([]string, 0, len(deduped))
	for key := range deduped {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, strings.Compare)

	content := make([]*vdom.VNode, 0, len(keys))
	for _, key := range keys {
		content = append(content, vdom.Fragment(key, deduped[key].content))
	}
	return content
}

// OnUpdate registers fn to run synchronously after every Add or Remove that
// changed the registry.
func (m *Manager) OnUpdate(fn func()) (unsubscribe func()) {
	return m.updates.Subscribe(func(struct{}) { fn() })
}
