package app

import (
	"fmt"

	"github.com/vcrobe/nojs-ssr/head"
	"github.com/vcrobe/nojs-ssr/routecss"
	"github.com/vcrobe/nojs-ssr/runtime"
	"github.com/vcrobe/nojs-ssr/vdom"
)

const layoutCSS = "/styles/app.css"

// MainLayout is the persistent page frame: navigation, the route content and
// a footer. It keeps the site wide head tags registered while mounted.
type MainLayout struct {
	runtime.ComponentBase

	app  *App
	head []*head.Tag
	body []*vdom.VNode
}

func newMainLayout(a *App, hm *head.Manager) *MainLayout {
	// Low priority fallbacks, overridden by the pages.
	return &MainLayout{
		app: a,
		head: []*head.Tag{
			head.NewTag(hm, viewportKey, vdom.Meta(map[string]any{
				"name":    "viewport",
				"content": "width=device-width, initial-scale=1",
			}), 0),
			head.NewTag(hm, titleKey, vdom.Title("nojs"), 0),
			routecss.CSS(hm, layoutCSS),
		},
	}
}

// SetBodyContent sets the route content shown in <main>.
func (l *MainLayout) SetBodyContent(children []*vdom.VNode) {
	l.body = children
}

func (l *MainLayout) Render(r runtime.Renderer) *vdom.VNode {
	nav := vdom.Element("nav", nil,
		l.app.Link("/", "Home"),
		l.app.Link("/blog", "Blog"),
		l.app.Link("/about", "About"),
	)

	children := make([]*vdom.VNode, 0, len(l.head)+3)
	for i, tag := range l.head {
		children = append(children, r.RenderChild(fmt.Sprintf("layout-head-%d", i), tag))
	}
	children = append(children,
		vdom.Element("header", nil, nav),
		vdom.Element("main", nil, l.body...),
		vdom.Element("footer", nil, vdom.Paragraph("Rendered by nojs", nil)),
	)

	return vdom.Div(map[string]any{"class": "layout"}, children...)
}
