//go:build js || wasm
// +build js wasm

// Package dom adapts the browser window to the interfaces of the navigation,
// scroll and routecss packages.
package dom

import (
	"fmt"
	"net/url"
	"syscall/js"
)

// try runs fn, turning a thrown JavaScript exception into an error.
func try(fn func() js.Value) (v js.Value, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if jsErr, ok := rec.(js.Error); ok {
				err = jsErr
				return
			}
			err = fmt.Errorf("%v", rec)
		}
	}()
	return fn(), nil
}

func document() js.Value {
	return js.Global().Get("document")
}

// BaseURL returns document.baseURI.
func BaseURL() (*url.URL, error) {
	return url.Parse(document().Get("baseURI").String())
}

// Location returns location.href.
func Location() string {
	return js.Global().Get("location").Get("href").String()
}
