package navigation

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vcrobe/nojs-ssr/console"
	"github.com/vcrobe/nojs-ssr/events"
	"github.com/vcrobe/nojs-ssr/runtime"
)

// Manager adapts the controller for components. Navigations it starts run in
// the background; only an invalid path is reported to the caller.
func (c *Controller) Manager() runtime.NavigationManager {
	return managerAdapter{c: c}
}

type managerAdapter struct {
	c *Controller
}

func (m managerAdapter) Navigate(path string) error {
	u, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("navigation: invalid URL %q: %w", path, err)
	}
	m.c.navigateAsync(u)
	return nil
}

func (c *Controller) navigateAsync(u *url.URL, opts ...NavigateOption) {
	go func() {
		if err := c.NavigateURL(context.Background(), u, opts...); err != nil {
			console.Error("Navigation to", u.String(), "failed:", err)
		}
	}()
}

// Start follows the session history: moving back or forward navigates to the
// new location without adding a history entry.
func (c *Controller) Start() (stop func()) {
	return c.history.OnPopState(func() {
		location := c.history.Location()
		u, err := url.Parse(location)
		if err != nil {
			console.Error("Invalid history location", location, err)
			return
		}
		c.navigateAsync(u, WithoutHistoryUpdate())
	})
}

// OnClickRouteLink returns a click handler for links to application routes,
// replacing the full page load with client side navigation. The handler does
// nothing if the default action is already prevented, if a button other than
// the main one was used, or if any of these keys were held:
//
//   - Alt (in Safari, downloads the link)
//   - Control (in Safari, displays the link context menu)
//   - Meta (in Safari, opens the link in a new tab)
//   - Shift (in Safari, adds the link to Reading List)
func (c *Controller) OnClickRouteLink() func(events.ClickEventArgs) {
	return func(e events.ClickEventArgs) {
		if e.DefaultPrevented || e.Href == "" || e.Button != events.MainButton || e.HasModifier() {
			return
		}

		u, err := url.Parse(e.Href)
		if err != nil {
			return
		}

		e.PreventDefault()
		c.navigateAsync(u)
	}
}
