//go:build js || wasm
// +build js wasm

package events

import "syscall/js"

// AdaptClickEvent wraps a ClickEventArgs handler as a DOM listener, for use
// as an "onClick" attribute.
func AdaptClickEvent(handler func(ClickEventArgs)) func(js.Value) {
	return func(ev js.Value) {
		args := ClickEventArgs{
			Button:           ev.Get("button").Int(),
			AltKey:           ev.Get("altKey").Bool(),
			CtrlKey:          ev.Get("ctrlKey").Bool(),
			MetaKey:          ev.Get("metaKey").Bool(),
			ShiftKey:         ev.Get("shiftKey").Bool(),
			DefaultPrevented: ev.Get("defaultPrevented").Bool(),
			preventDefault:   func() { ev.Call("preventDefault") },
		}
		if target := ev.Get("currentTarget"); target.Truthy() && target.Get("tagName").String() == "A" {
			args.Href = target.Get("href").String()
		}
		handler(args)
	}
}

// AdaptNoArgEvent wraps a handler that ignores the event.
func AdaptNoArgEvent(handler func()) func(js.Value) {
	return func(js.Value) {
		handler()
	}
}

// DispatchCustom dispatches a non-cancelable CustomEvent on window.
func DispatchCustom(name string, detail map[string]any) {
	window := js.Global()
	ctor := window.Get("CustomEvent")
	if !ctor.Truthy() {
		return
	}
	ev := ctor.New(name, map[string]any{"detail": detail})
	window.Call("dispatchEvent", ev)
}
