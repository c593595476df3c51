//go:build js || wasm
// +build js wasm

package dom

import "syscall/js"

// History is the window session history.
type History struct{}

// PushState adds a history entry for url.
func (History) PushState(url string) {
	js.Global().Get("history").Call("pushState", nil, "", url)
}

// Location returns the current document URL.
func (History) Location() string {
	return Location()
}

// OnPopState listens for popstate until remove is called.
func (History) OnPopState(fn func()) (remove func()) {
	listener := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	})
	js.Global().Call("addEventListener", "popstate", listener)

	return func() {
		js.Global().Call("removeEventListener", "popstate", listener)
		listener.Release()
	}
}
