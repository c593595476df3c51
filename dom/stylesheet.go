//go:build js || wasm
// +build js wasm

package dom

import (
	"fmt"
	"syscall/js"
)

// StyleSheets checks the stylesheets of the document.
type StyleSheets struct{}

// HasStyleSheet reports whether the document has a stylesheet for href that
// finished loading, successfully or not. Pending reloads aren't detected. If
// the document has several stylesheets for href, any loaded one counts.
//
// A stylesheet without rules is considered loaded once its resource timing
// entry has a response end. If the timing entries were cleared (the buffer
// filled up, or performance.clearResourceTimings was called) such a
// stylesheet is wrongly reported as not loaded.
func (StyleSheets) HasStyleSheet(href string) (bool, error) {
	abs, err := try(func() js.Value {
		return js.Global().Get("URL").New(href, document().Get("baseURI")).Get("href")
	})
	if err != nil {
		return false, fmt.Errorf("resolve stylesheet URL %q: %w", href, err)
	}
	target := abs.String()

	sheets := document().Get("styleSheets")
	for i := 0; i < sheets.Length(); i++ {
		sheet := sheets.Index(i)
		if sheet.Get("href").IsNull() || sheet.Get("href").String() != target {
			continue
		}

		// Reading the rules throws for a cross origin stylesheet whose link
		// lacks crossorigin="anonymous". Unparsable CSS reads fine.
		rules, err := try(func() js.Value { return sheet.Get("cssRules") })
		if err != nil {
			return false, fmt.Errorf("read rules of stylesheet %s: %w", target, err)
		}
		if rules.Length() > 0 {
			return true, nil
		}

		// No rules: still loading, a network error, unparsable CSS or really
		// empty. Only the first means not loaded, and it's the one whose
		// request has no response end yet.
		if responseEnded(target) {
			return true, nil
		}
	}

	return false, nil
}

func responseEnded(url string) bool {
	entries := js.Global().Get("performance").Call("getEntriesByName", url, "resource")
	n := entries.Length()
	if n == 0 {
		return false
	}
	return entries.Index(n-1).Get("responseEnd").Float() > 0
}
