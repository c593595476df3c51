//go:build js || wasm
// +build js wasm

package dom

import (
	"syscall/js"

	"github.com/vcrobe/nojs-ssr/console"
)

// Viewport is the window viewport.
type Viewport struct{}

// ScrollTo scrolls the window.
func (Viewport) ScrollTo(x, y int) {
	js.Global().Call("scrollTo", x, y)
}

// ScrollIntoView scrolls the first element matching selector into view.
// Hashes that aren't valid selectors match nothing.
func (Viewport) ScrollIntoView(selector string) bool {
	el, err := try(func() js.Value {
		return document().Call("querySelector", selector)
	})
	if err != nil {
		console.Warn("Invalid scroll target", selector, err)
		return false
	}
	if !el.Truthy() {
		return false
	}
	el.Call("scrollIntoView")
	return true
}
