package navigation

import (
	"errors"
	"net/url"

	"github.com/vcrobe/nojs-ssr/head"
	"github.com/vcrobe/nojs-ssr/route"
	"github.com/vcrobe/nojs-ssr/scroll"
)

var (
	ErrNoRouter     = errors.New("navigation: router is required")
	ErrNoHead       = errors.New("navigation: head manager is required")
	ErrNoHistory    = errors.New("navigation: history is required")
	ErrNoViewport   = errors.New("navigation: viewport is required")
	ErrNoBase       = errors.New("navigation: base URL must be absolute")
	ErrNoInitialURL = errors.New("navigation: initial route has no URL")
	ErrNilURL       = errors.New("navigation: target URL is nil")
)

// History is the browser session history.
type History interface {
	// PushState adds an entry for url without loading it.
	PushState(url string)
	// Location returns the current document URL.
	Location() string
	// OnPopState calls fn when the user moves through the history.
	OnPopState(fn func()) (remove func())
}

// Options holds the collaborators of a Controller.
type Options struct {
	Router   route.Router
	Head     *head.Manager
	History  History
	Viewport scroll.Viewport

	// Base resolves relative navigation targets, like document.baseURI.
	Base *url.URL
}

func (o Options) validate() error {
	switch {
	case o.Router == nil:
		return ErrNoRouter
	case o.Head == nil:
		return ErrNoHead
	case o.History == nil:
		return ErrNoHistory
	case o.Viewport == nil:
		return ErrNoViewport
	case o.Base == nil || !o.Base.IsAbs():
		return ErrNoBase
	}
	return nil
}

type navigateConfig struct {
	updateHistory bool
}

// NavigateOption configures a single navigation.
type NavigateOption func(*navigateConfig)

// WithoutHistoryUpdate leaves the session history alone, for navigations
// that follow the history (popstate).
func WithoutHistoryUpdate() NavigateOption {
	return func(c *navigateConfig) {
		c.updateHistory = false
	}
}
