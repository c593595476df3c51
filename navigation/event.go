package navigation

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// EventType identifies a route change lifecycle notification.
type EventType int

const (
	// RouteChangeStart fires when a navigation to another page begins.
	RouteChangeStart EventType = iota
	// RouteChangeEnd fires once the new route content has mounted.
	RouteChangeEnd
	// RouteChangeAbort fires when a navigation is cancelled before its
	// content loads.
	RouteChangeAbort
	// RouteChangeError fires when the route for a navigation can't be
	// planned, loaded or cleaned up.
	RouteChangeError
)

func (t EventType) String() string {
	switch t {
	case RouteChangeStart:
		return "routechangestart"
	case RouteChangeEnd:
		return "routechangeend"
	case RouteChangeAbort:
		return "routechangeabort"
	case RouteChangeError:
		return "routechangeerror"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is a route change notification.
type Event struct {
	Type EventType
	URL  *url.URL

	// Abort cancels the navigation. Only set for RouteChangeStart; calling it
	// after the route content loaded has no effect.
	Abort context.CancelFunc

	// Err is set for RouteChangeError.
	Err error

	// Session identifies the navigation the event belongs to.
	Session uuid.UUID
}

func (e Event) detail() map[string]any {
	detail := map[string]any{
		"url":     e.URL.String(),
		"session": e.Session.String(),
	}
	if e.Err != nil {
		detail["error"] = e.Err.Error()
	}
	return detail
}
