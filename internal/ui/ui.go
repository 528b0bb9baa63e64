// Package ui models the page chrome: the sidebar drawer, the overlays, scroll
// tracking and the donation and legal panels. It holds no rendering code; the
// page and the client script apply the state it computes.
package ui

import (
	"sync"
	"time"
)

// Layout constants, in CSS pixels.
const (
	MobileBreakpoint    = 768
	ActiveNavOffset     = 160
	ScrollTopThreshold  = 200
	DesktopScrollMargin = 20
	MobileScrollMargin  = 72
)

// DrawerCloseDelay lets the drawer finish closing before a mobile scroll starts.
const DrawerCloseDelay = 320 * time.Millisecond

// Viewport is the client's window size.
type Viewport struct {
	Width int `json:"width"`
}

// Mobile reports whether the drawer layout applies.
func (v Viewport) Mobile() bool {
	return v.Width <= MobileBreakpoint
}

// Overlay identifies a modal panel.
type Overlay string

const (
	OverlayGlossary Overlay = "glossary"
	OverlayQuiz     Overlay = "quiz"
	OverlayDonation Overlay = "donation"
	OverlayTerms    Overlay = "terms"
	OverlayPrivacy  Overlay = "privacy"
)

// Valid reports whether o is a known overlay.
func (o Overlay) Valid() bool {
	switch o {
	case OverlayGlossary, OverlayQuiz, OverlayDonation, OverlayTerms, OverlayPrivacy:
		return true
	}
	return false
}

// State is a snapshot of the page chrome.
type State struct {
	Viewport         Viewport  `json:"viewport"`
	SidebarOpen      bool      `json:"sidebarOpen"`
	Overlays         []Overlay `json:"overlays"`
	ActiveChapter    int       `json:"activeChapter"`
	ScrollTopVisible bool      `json:"scrollTopVisible"`
	ScrollLocked     bool      `json:"scrollLocked"`
}

// Controller holds one visitor's page chrome. It is safe for concurrent use.
type Controller struct {
	mu        sync.Mutex
	viewport  Viewport
	sidebar   bool
	overlays  map[Overlay]bool
	active    int
	scrollTop bool
}

// NewController starts with everything closed on a desktop-sized viewport.
func NewController() *Controller {
	return &Controller{
		viewport: Viewport{Width: 1280},
		overlays: make(map[Overlay]bool),
	}
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Resize records a new viewport width.
func (c *Controller) Resize(v Viewport) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport = v
	return c.snapshot()
}

// OpenSidebar opens the drawer.
func (c *Controller) OpenSidebar() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sidebar = true
	return c.snapshot()
}

// CloseSidebar closes the drawer.
func (c *Controller) CloseSidebar() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sidebar = false
	return c.snapshot()
}

// ToggleSidebar flips the drawer, as the hamburger button does.
func (c *Controller) ToggleSidebar() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sidebar = !c.sidebar
	return c.snapshot()
}

// OpenOverlay shows o. The quiz and the glossary exclude each other. When
// opened from the sidebar on a mobile viewport, the drawer closes first.
func (c *Controller) OpenOverlay(o Overlay, fromSidebar bool) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if fromSidebar && c.viewport.Mobile() {
		c.sidebar = false
	}
	switch o {
	case OverlayQuiz:
		delete(c.overlays, OverlayGlossary)
	case OverlayGlossary:
		delete(c.overlays, OverlayQuiz)
	}
	c.overlays[o] = true
	return c.snapshot()
}

// CloseOverlay hides o.
func (c *Controller) CloseOverlay(o Overlay) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.overlays, o)
	return c.snapshot()
}

// Scroll updates the active chapter and the scroll-to-top button from the
// current scroll position. offsets are the chapters' top positions.
func (c *Controller) Scroll(offsets []int, scrollTop int) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = ActiveChapter(offsets, scrollTop)
	c.scrollTop = ScrollTopVisible(scrollTop)
	return c.snapshot()
}

// ScrollToChapter plans a jump to chapter idx. On mobile the plan closes the
// drawer, so the state changes here too.
func (c *Controller) ScrollToChapter(idx int, offsets []int) (ScrollPlan, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	plan, ok := PlanScroll(idx, offsets, c.viewport)
	if ok && plan.CloseSidebar {
		c.sidebar = false
	}
	return plan, ok
}

func (c *Controller) snapshot() State {
	overlays := make([]Overlay, 0, len(c.overlays))
	for _, o := range []Overlay{OverlayGlossary, OverlayQuiz, OverlayDonation, OverlayTerms, OverlayPrivacy} {
		if c.overlays[o] {
			overlays = append(overlays, o)
		}
	}
	return State{
		Viewport:         c.viewport,
		SidebarOpen:      c.sidebar,
		Overlays:         overlays,
		ActiveChapter:    c.active,
		ScrollTopVisible: c.scrollTop,
		ScrollLocked:     len(overlays) > 0 || (c.sidebar && c.viewport.Mobile()),
	}
}

// ActiveChapter returns the last chapter whose top is at or above
// scrollTop+ActiveNavOffset. It is 0 when none qualifies.
func ActiveChapter(offsets []int, scrollTop int) int {
	active := 0
	for i, top := range offsets {
		if top <= scrollTop+ActiveNavOffset {
			active = i
		}
	}
	return active
}

// ScrollTopVisible reports whether the scroll-to-top button shows.
func ScrollTopVisible(scrollTop int) bool {
	return scrollTop > ScrollTopThreshold
}

// ScrollPlan tells the client how to bring a chapter into view.
type ScrollPlan struct {
	Top          int           `json:"top"`
	Smooth       bool          `json:"smooth"`
	Delay        time.Duration `json:"-"`
	DelayMillis  int64         `json:"delayMs"`
	CloseSidebar bool          `json:"closeSidebar"`
}

// PlanScroll computes the scroll for chapter idx. Desktop jumps immediately to
// just above the chapter. Mobile closes the drawer and smooth-scrolls after
// DrawerCloseDelay, leaving room for the fixed header. The delay is fixed and
// not cancelable. ok is false for an unknown chapter.
func PlanScroll(idx int, offsets []int, v Viewport) (plan ScrollPlan, ok bool) {
	if idx < 0 || idx >= len(offsets) {
		return ScrollPlan{}, false
	}
	if !v.Mobile() {
		return ScrollPlan{Top: offsets[idx] - DesktopScrollMargin}, true
	}
	return ScrollPlan{
		Top:          offsets[idx] - MobileScrollMargin,
		Smooth:       true,
		Delay:        DrawerCloseDelay,
		DelayMillis:  DrawerCloseDelay.Milliseconds(),
		CloseSidebar: true,
	}, true
}
