package router

import (
	"github.com/vcrobe/nojs-ssr/route"
	"github.com/vcrobe/nojs-ssr/runtime"
	"github.com/vcrobe/nojs-ssr/vdom"
)

// Layout is a component with a body slot.
type Layout interface {
	runtime.Component
	SetBodyContent(children []*vdom.VNode)
}

// AppShell is the stable root component: it keeps one layout instance alive
// across navigations and swaps only the route content in its body slot.
type AppShell struct {
	runtime.ComponentBase

	layout  Layout
	current route.Route
}

// NewAppShell creates a shell around layout, showing initial. A nil layout
// renders the route content on its own.
func NewAppShell(layout Layout, initial route.Route) *AppShell {
	return &AppShell{layout: layout, current: initial}
}

// SetRoute shows r, re-rendering only when its content differs from the
// content already shown.
func (a *AppShell) SetRoute(r route.Route) {
	same := r.Content == a.current.Content
	a.current = r
	if same {
		return
	}
	a.StateHasChanged()
}

// Route returns the route being shown.
func (a *AppShell) Route() route.Route {
	return a.current
}

// Render composes the layout with the current route content.
func (a *AppShell) Render(r runtime.Renderer) *vdom.VNode {
	var body []*vdom.VNode
	if a.current.Content != nil {
		body = []*vdom.VNode{a.current.Content}
	}

	if a.layout != nil {
		a.layout.SetBodyContent(body)
		return r.RenderChild("persistent-layout", a.layout)
	}

	if len(body) > 0 {
		return body[0]
	}
	return vdom.Div(nil)
}
