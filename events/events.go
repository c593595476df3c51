// Package events adapts DOM events to plain Go values so event handlers can
// be written, and tested, without syscall/js.
package events

// Mouse buttons as reported by MouseEvent.button.
const (
	MainButton      = 0
	AuxiliaryButton = 1
	SecondaryButton = 2
)

// ClickEventArgs describes a click on an element.
type ClickEventArgs struct {
	Button   int
	AltKey   bool
	CtrlKey  bool
	MetaKey  bool
	ShiftKey bool

	// DefaultPrevented is true when an earlier listener already prevented the
	// default action.
	DefaultPrevented bool

	// Href is the resolved href of the clicked link, empty when the current
	// target is not an <a> element.
	Href string

	preventDefault func()
}

// NewClickEventArgs creates click arguments whose PreventDefault calls prevent.
func NewClickEventArgs(button int, href string, prevent func()) ClickEventArgs {
	return ClickEventArgs{Button: button, Href: href, preventDefault: prevent}
}

// PreventDefault cancels the browser default action for the click.
func (e *ClickEventArgs) PreventDefault() {
	e.DefaultPrevented = true
	if e.preventDefault != nil {
		e.preventDefault()
	}
}

// HasModifier reports whether any of Alt, Control, Meta or Shift was pressed.
func (e ClickEventArgs) HasModifier() bool {
	return e.AltKey || e.CtrlKey || e.MetaKey || e.ShiftKey
}
