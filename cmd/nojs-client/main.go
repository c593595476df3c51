//go:build js || wasm
// +build js wasm

// Command nojs-client hydrates the demo application in the browser.
package main

import (
	"context"
	"syscall/js"

	"github.com/vcrobe/nojs-ssr/app"
	"github.com/vcrobe/nojs-ssr/console"
	"github.com/vcrobe/nojs-ssr/dom"
	"github.com/vcrobe/nojs-ssr/hydrate"
	"github.com/vcrobe/nojs-ssr/route"
	"github.com/vcrobe/nojs-ssr/vdom"
)

func main() {
	base, err := dom.BaseURL()
	if err != nil {
		console.Error("Failed to read the document base URL:", err)
		return
	}

	headSurface, err := vdom.NewRangeSurface(
		`meta[name="`+hydrate.HeadStartName+`"]`,
		`meta[name="`+hydrate.HeadEndName+`"]`,
	)
	if err != nil {
		console.Error("Failed to find the managed head range:", err)
		return
	}

	if data := js.Global().Get(hydrate.DataGlobal); data.Truthy() {
		console.Log("[Client] Server data:", js.Global().Get("JSON").Call("stringify", data).String())
	}

	demo := app.New(app.Options{
		Environment: route.Client,
		Checker:     dom.StyleSheets{},
	})

	hydrated, err := hydrate.Hydrate(context.Background(), hydrate.Options{
		Router:    demo.Route,
		NewLayout: demo.NewLayout,
		Location:  dom.Location(),
		Base:      base,
		History:   dom.History{},
		Viewport:  dom.Viewport{},
		Body:      vdom.NewSelectorSurface("#" + hydrate.AppID),
		Head:      headSurface,
	})
	if err != nil {
		console.Error("Failed to hydrate:", err)
		return
	}
	demo.FollowLinks(hydrated.Controller.OnClickRouteLink())

	// Keep the Go program running
	select {}
}
