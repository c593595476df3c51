// Package scroll moves the viewport after navigation.
package scroll

// Viewport is the scrollable window.
type Viewport interface {
	// ScrollTo scrolls to the given document coordinates.
	ScrollTo(x, y int)
	// ScrollIntoView scrolls the first element matching selector into view,
	// reporting false if there is no such element.
	ScrollIntoView(selector string) bool
}

// Coordinator applies the scroll rules for URL hashes. Hashes include the
// leading "#", so they double as element ID selectors.
type Coordinator struct {
	Viewport Viewport
}

// New creates a Coordinator for vp.
func New(vp Viewport) *Coordinator {
	return &Coordinator{Viewport: vp}
}

// ToHash scrolls the hash target into view, doing nothing when the target is
// missing. An empty hash scrolls to the top.
func (c *Coordinator) ToHash(hash string) {
	if isEmpty(hash) {
		c.ToTop()
		return
	}
	c.Viewport.ScrollIntoView(hash)
}

// ToHashOrTop scrolls the hash target into view, or to the top when the hash
// is empty or has no target.
func (c *Coordinator) ToHashOrTop(hash string) {
	if isEmpty(hash) || !c.Viewport.ScrollIntoView(hash) {
		c.ToTop()
	}
}

// ToTop scrolls to the start of the document.
func (c *Coordinator) ToTop() {
	c.Viewport.ScrollTo(0, 0)
}

func isEmpty(hash string) bool {
	return hash == "" || hash == "#"
}
