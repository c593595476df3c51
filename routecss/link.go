package routecss

import (
	"strings"

	"github.com/vcrobe/nojs-ssr/head"
	"github.com/vcrobe/nojs-ssr/vdom"
)

// HeadKey is the head manager key for a route stylesheet link. Route CSS
// sorts after keys starting with "1-" and before keys starting with "3-".
func HeadKey(href string) string {
	return "2-" + href
}

// LinkCSS creates a stylesheet <link>. Links to other origins are requested
// with CORS so their rules can be read when checking whether they loaded.
func LinkCSS(href string) *vdom.VNode {
	attrs := map[string]any{
		"rel":  "stylesheet",
		"href": href,
	}
	if !strings.HasPrefix(href, "/") {
		attrs["crossorigin"] = "anonymous"
	}
	return vdom.Link(attrs)
}

// CSS creates a component that keeps the stylesheet linked in the head while
// it is mounted.
func CSS(hm *head.Manager, href string) *head.Tag {
	return head.NewTag(hm, HeadKey(href), LinkCSS(href), 0)
}
