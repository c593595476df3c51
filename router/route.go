package router

import (
	"net/url"

	"github.com/vcrobe/nojs-ssr/head"
	"github.com/vcrobe/nojs-ssr/route"
)

// Params holds the values of the "{name}" segments of a matched pattern.
type Params map[string]string

// Request is what a Handler receives for a matched URL.
type Request struct {
	URL            *url.URL
	Params         Params
	Head           *head.Manager
	IsInitialRoute bool
}

// Handler plans the route for a request.
type Handler func(req Request) (route.Plan, error)

// Entry is a pattern and the handler serving it. Patterns are paths whose
// segments may be parameters in curly braces, e.g. "/blog/{year}".
type Entry struct {
	Pattern string
	Handler Handler
}
