//go:build !wasm
// +build !wasm

package events

// AdaptClickEvent returns the handler unchanged outside the browser.
func AdaptClickEvent(handler func(ClickEventArgs)) func(ClickEventArgs) {
	return handler
}

// AdaptNoArgEvent returns the handler unchanged outside the browser.
func AdaptNoArgEvent(handler func()) func() {
	return handler
}

// DispatchCustom does nothing outside the browser.
func DispatchCustom(name string, detail map[string]any) {}
