//go:build js || wasm
// +build js wasm

package vdom

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/vcrobe/nojs-ssr/console"
)

// jsNode adapts a DOM node to Node.
type jsNode struct {
	v js.Value
}

func wrap(v js.Value) Node {
	if !v.Truthy() {
		return nil
	}
	return jsNode{v: v}
}

func unwrap(n Node) js.Value {
	if n == nil {
		return js.Null()
	}
	return n.(jsNode).v
}

func (n jsNode) Same(other Node) bool {
	o, ok := other.(jsNode)
	return ok && n.v.Equal(o.v)
}

func (n jsNode) FirstChild() Node  { return wrap(n.v.Get("firstChild")) }
func (n jsNode) NextSibling() Node { return wrap(n.v.Get("nextSibling")) }

func (n jsNode) InsertBefore(child, ref Node) {
	n.v.Call("insertBefore", unwrap(child), unwrap(ref))
}

func (n jsNode) RemoveChild(child Node) {
	n.v.Call("removeChild", unwrap(child))
}

func (n jsNode) SetAttribute(key, value string) { n.v.Call("setAttribute", key, value) }
func (n jsNode) RemoveAttribute(key string)     { n.v.Call("removeAttribute", key) }
func (n jsNode) SetText(text string)            { n.v.Set("data", text) }
func (n jsNode) SetProperty(key, value string)  { n.v.Set(key, value) }

// AddListener accepts func(js.Value) and func() handlers.
func (n jsNode) AddListener(event string, handler any) (remove func()) {
	var cb js.Func
	switch h := handler.(type) {
	case func(js.Value):
		cb = js.FuncOf(func(this js.Value, args []js.Value) any {
			if len(args) > 0 {
				h(args[0])
			}
			return nil
		})
	case func():
		cb = js.FuncOf(func(this js.Value, args []js.Value) any {
			h()
			return nil
		})
	default:
		console.Warn("Unsupported handler type for event", event)
		return func() {}
	}

	n.v.Call("addEventListener", event, cb)
	return func() {
		n.v.Call("removeEventListener", event, cb)
		cb.Release()
	}
}

type jsDocument struct {
	v js.Value
}

func (d jsDocument) CreateElement(tag string) Node { return jsNode{v: d.v.Call("createElement", tag)} }
func (d jsDocument) CreateTextNode(text string) Node {
	return jsNode{v: d.v.Call("createTextNode", text)}
}

func document() (jsDocument, error) {
	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return jsDocument{}, errors.New("no global document")
	}
	return jsDocument{v: doc}, nil
}

// SelectorSurface renders a tree as the content of the element matching
// Selector, patching the DOM from one render to the next.
type SelectorSurface struct {
	Selector string
	patcher  *Patcher
}

// NewSelectorSurface creates a surface for the element matching selector.
func NewSelectorSurface(selector string) *SelectorSurface {
	return &SelectorSurface{Selector: selector}
}

// Replace patches the mounted tree to match n.
func (s *SelectorSurface) Replace(n *VNode) {
	if s.patcher == nil {
		doc, err := document()
		if err != nil {
			console.Error(err)
			return
		}
		mount := doc.v.Call("querySelector", s.Selector)
		if !mount.Truthy() {
			console.Error("Mount element not found for selector:", s.Selector)
			return
		}
		s.patcher = NewPatcher(doc, jsNode{v: mount}, nil, nil)
	}
	s.patcher.Patch(n)
}

// RangeSurface renders a tree between two marker nodes that share a parent,
// leaving the markers and everything outside them untouched. It lets the
// managed head tags live inside <head> next to tags the page owns.
type RangeSurface struct {
	patcher *Patcher
}

// NewRangeSurface finds the start and end marker elements.
func NewRangeSurface(startSelector, endSelector string) (*RangeSurface, error) {
	doc, err := document()
	if err != nil {
		return nil, err
	}

	start := doc.v.Call("querySelector", startSelector)
	if !start.Truthy() {
		return nil, fmt.Errorf("range start node %q missing", startSelector)
	}

	end := doc.v.Call("querySelector", endSelector)
	if !end.Truthy() {
		return nil, fmt.Errorf("range end node %q missing", endSelector)
	}

	parent := end.Get("parentNode")
	if !start.Get("parentNode").Equal(parent) {
		return nil, fmt.Errorf("range markers %q and %q must share a parent", startSelector, endSelector)
	}

	return &RangeSurface{
		patcher: NewPatcher(doc, jsNode{v: parent}, jsNode{v: start}, jsNode{v: end}),
	}, nil
}

// Replace patches the nodes between the markers to match n.
func (s *RangeSurface) Replace(n *VNode) {
	s.patcher.Patch(n)
}
