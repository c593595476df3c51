package testcomponents

import (
	"sync"

	"github.com/vcrobe/nojs-ssr/runtime"
	"github.com/vcrobe/nojs-ssr/vdom"
)

var _ runtime.Surface = (*RecordingSurface)(nil)

// RecordingSurface is a runtime.Surface that keeps every mounted tree.
type RecordingSurface struct {
	mu      sync.Mutex
	mounted []*vdom.VNode
}

// NewRecordingSurface creates an empty surface.
func NewRecordingSurface() *RecordingSurface {
	return &RecordingSurface{}
}

// Replace records n as the mounted tree.
func (s *RecordingSurface) Replace(n *vdom.VNode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mounted = append(s.mounted, n)
}

// Current returns the last mounted tree, or nil.
func (s *RecordingSurface) Current() *vdom.VNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.mounted) == 0 {
		return nil
	}
	return s.mounted[len(s.mounted)-1]
}

// Count returns how many trees have been mounted.
func (s *RecordingSurface) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.mounted)
}

// HTML renders the current tree to HTML, or "" when nothing is mounted.
func (s *RecordingSurface) HTML() string {
	html, err := vdom.RenderString(s.Current())
	if err != nil {
		return ""
	}
	return html
}
