package app

import (
	"context"
	"net/http"

	"github.com/vcrobe/nojs-ssr/route"
	"github.com/vcrobe/nojs-ssr/routecss"
	"github.com/vcrobe/nojs-ssr/router"
	"github.com/vcrobe/nojs-ssr/vdom"
)

type post struct {
	Slug    string
	Title   string
	Summary string
	Body    []string
}

var posts = []post{
	{
		Slug:    "hydration",
		Title:   "Hydrating server rendered pages",
		Summary: "How the client takes over a document the server rendered.",
		Body: []string{
			"The server renders the initial route and the head tags it registered.",
			"The client loads the same route, mounts the body and then the head.",
		},
	},
	{
		Slug:    "route-css",
		Title:   "Routes with stylesheets",
		Summary: "Keeping unstyled content off the screen during navigation.",
		Body: []string{
			"Route stylesheets are added to the head before the content mounts.",
			"Navigation waits until the browser has loaded them.",
		},
	},
}

func findPost(slug string) (post, bool) {
	for _, p := range posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return post{}, false
}

func (a *App) home(req router.Request) (route.Plan, error) {
	content := vdom.Div(map[string]any{"class": "home"},
		vdom.Element("h1", nil, vdom.Text("nojs")),
		vdom.Paragraph("Server rendered Go, hydrated in the browser.", nil),
		vdom.Element("ul", nil,
			vdom.Element("li", nil, a.Link("/blog", "Read the blog")),
			vdom.Element("li", nil, a.Link("/about#team", "Meet the team")),
		),
	)

	return a.plan(req, pageMeta{title: "Home", description: "The nojs demo application."},
		routecss.Ready(routecss.ContentWithCSS{Content: content}))
}

func (a *App) about(req router.Request) (route.Plan, error) {
	content := vdom.Div(map[string]any{"class": "about"},
		vdom.Element("h1", nil, vdom.Text("About")),
		vdom.Element("nav", nil,
			a.Link("#mission", "Mission"),
			a.Link("#team", "Team"),
		),
		vdom.Element("section", map[string]any{"id": "mission"},
			vdom.Element("h2", nil, vdom.Text("Mission")),
			vdom.Paragraph("One Go codebase for the server and the browser.", nil),
		),
		vdom.Element("section", map[string]any{"id": "team"},
			vdom.Element("h2", nil, vdom.Text("Team")),
			vdom.Paragraph("A few people who like small runtimes.", nil),
		),
	)

	return a.plan(req, pageMeta{title: "About"},
		routecss.Ready(routecss.ContentWithCSS{Content: content, CSS: []string{"/styles/about.css"}}))
}

func (a *App) blog(req router.Request) (route.Plan, error) {
	items := make([]*vdom.VNode, 0, len(posts))
	for _, p := range posts {
		items = append(items, vdom.Element("li", nil,
			a.Link("/blog/"+p.Slug, p.Title),
			vdom.Paragraph(p.Summary, nil),
		))
	}

	content := vdom.Div(map[string]any{"class": "blog"},
		vdom.Element("h1", nil, vdom.Text("Blog")),
		vdom.Element("ul", nil, items...),
	)

	return a.plan(req, pageMeta{title: "Blog", description: "Notes on the nojs runtime."},
		routecss.Ready(routecss.ContentWithCSS{Content: content, CSS: []string{"/styles/blog.css"}}))
}

func (a *App) post(req router.Request) (route.Plan, error) {
	p, ok := findPost(req.Params["slug"])
	if !ok {
		return a.notFound(req)
	}

	src := func(ctx context.Context) (routecss.ContentWithCSS, error) {
		if t, ok := route.TransferFromContext(ctx); ok {
			if t.Data == nil {
				t.Data = make(map[string]any)
			}
			t.Data["post"] = p.Slug
		}

		paragraphs := make([]*vdom.VNode, 0, len(p.Body))
		for _, text := range p.Body {
			paragraphs = append(paragraphs, vdom.Paragraph(text, nil))
		}

		content := vdom.Element("article", map[string]any{"class": "post"},
			vdom.Element("h1", nil, vdom.Text(p.Title)),
			vdom.Div(nil, paragraphs...),
			a.Link("/blog", "All posts"),
		)
		return routecss.ContentWithCSS{
			Content: content,
			CSS:     []string{"/styles/blog.css", "/styles/post.css"},
		}, nil
	}

	return a.plan(req, pageMeta{title: p.Title, description: p.Summary}, src)
}

func (a *App) notFound(req router.Request) (route.Plan, error) {
	src := func(ctx context.Context) (routecss.ContentWithCSS, error) {
		if t, ok := route.TransferFromContext(ctx); ok {
			t.Status = http.StatusNotFound
		}

		content := vdom.Div(map[string]any{"class": "not-found"},
			vdom.Element("h1", nil, vdom.Text("Page not found")),
			vdom.Paragraph("There is nothing at "+req.URL.Path+".", nil),
			a.Link("/", "Back home"),
		)
		return routecss.ContentWithCSS{Content: content}, nil
	}

	return a.plan(req, pageMeta{title: "Not found"}, src)
}
