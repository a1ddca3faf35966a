// Package chrome models the page shell's runtime state: the slide-out side
// menu, scroll restoration around it and the scroll-to-top control.
//
// The same state machine ships to browsers as the script rendered by Script;
// the Go model drives the no-script fallback and pins the behaviour in tests.
package chrome

// ScrollTopThreshold is the vertical offset, in pixels, past which the
// scroll-to-top control shows.
const ScrollTopThreshold = 300

// Event types a Window delivers.
const (
	EventScroll    = "scroll"
	EventMouseDown = "mousedown"
)

// Target says where a pointer event landed.
type Target int

const (
	TargetOutside Target = iota
	TargetMenu
	TargetToggle
)

// Event is a single window or document event.
type Event struct {
	Type   string
	Y      float64
	Target Target
}

// Window is the slice of the browser environment the chrome depends on.
type Window interface {
	ScrollY() float64
	ScrollTo(y float64, smooth bool)
	Listen(event string, h func(Event)) (cancel func())
}

// State is owned by Chrome and reset on Unmount.
type State struct {
	SideMenuOpen       bool
	SavedScrollY       float64
	ScrollToTopVisible bool
}

// View is the state templates render from.
type View struct {
	MenuOpen           bool
	ScrollToTopVisible bool
	Threshold          int
}

// Chrome is not safe for concurrent use; events run one at a time.
type Chrome struct {
	state        State
	win          Window
	cancelScroll func()
	cancelClick  func()
}

func New() *Chrome { return &Chrome{} }

// Mount attaches to w and starts tracking scroll.
func (c *Chrome) Mount(w Window) {
	if c.win != nil {
		c.Unmount()
	}
	if w == nil {
		return
	}
	c.win = w
	c.state = State{}
	c.cancelScroll = w.Listen(EventScroll, func(e Event) { c.Scroll(e.Y) })
	c.Scroll(w.ScrollY())
}

// Unmount removes every listener and resets state.
func (c *Chrome) Unmount() {
	if c.cancelClick != nil {
		c.cancelClick()
		c.cancelClick = nil
	}
	if c.cancelScroll != nil {
		c.cancelScroll()
		c.cancelScroll = nil
	}
	c.win = nil
	c.state = State{}
}

// Mounted reports whether the chrome is attached to a window.
func (c *Chrome) Mounted() bool { return c.win != nil }

// Toggle opens or closes the side menu.
func (c *Chrome) Toggle() {
	if c.win == nil {
		return
	}
	if c.state.SideMenuOpen {
		c.close()
		return
	}
	c.state.SavedScrollY = c.win.ScrollY()
	c.state.SideMenuOpen = true
	c.cancelClick = c.win.Listen(EventMouseDown, func(e Event) { c.PointerDown(e.Target) })
}

// PointerDown closes an open menu when the pointer lands outside both the
// menu panel and the toggle.
func (c *Chrome) PointerDown(target Target) {
	if c.win == nil || !c.state.SideMenuOpen {
		return
	}
	if target == TargetMenu || target == TargetToggle {
		return
	}
	c.close()
}

func (c *Chrome) close() {
	if c.cancelClick != nil {
		c.cancelClick()
		c.cancelClick = nil
	}
	c.state.SideMenuOpen = false
	c.win.ScrollTo(c.state.SavedScrollY, false)
}

// Scroll updates the scroll-to-top visibility for offset y.
func (c *Chrome) Scroll(y float64) {
	if c.win == nil {
		return
	}
	c.state.ScrollToTopVisible = y > ScrollTopThreshold
}

// ScrollToTop animates the viewport back to the top.
func (c *Chrome) ScrollToTop() {
	if c.win == nil {
		return
	}
	c.win.ScrollTo(0, true)
}

// State returns a copy of the current state.
func (c *Chrome) State() State { return c.state }

// View derives the template view from the current state.
func (c *Chrome) View() View {
	return View{
		MenuOpen:           c.state.SideMenuOpen,
		ScrollToTopVisible: c.state.ScrollToTopVisible,
		Threshold:          ScrollTopThreshold,
	}
}

// StaticWindow is a Window without events, used to evaluate the initial
// state on the server.
type StaticWindow struct {
	Y float64
}

func (w *StaticWindow) ScrollY() float64 { return w.Y }

func (w *StaticWindow) ScrollTo(y float64, _ bool) { w.Y = y }

func (w *StaticWindow) Listen(string, func(Event)) func() { return func() {} }

// Initial evaluates the server-rendered state: menuOpen replays a toggle on
// a page at the top.
func Initial(menuOpen bool) View {
	c := New()
	c.Mount(&StaticWindow{})
	if menuOpen {
		c.Toggle()
	}
	v := c.View()
	c.Unmount()
	return v
}
