// Package overlay implements the dismissal protocol of the panel.
//
// The panel is drawn on top of a full-screen capture surface. A click on
// the surface outside the panel bounds, or Escape, dismisses the session.
// Clicks inside the bounds belong to the panel and are never seen as
// dismissals. Dismissal happens at most once and is terminal.
package overlay

import "sync"

// State of the overlay.
type State int

const (
	Hidden State = iota
	Shown
	Dismissed
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Shown:
		return "shown"
	case Dismissed:
		return "dismissed"
	}
	return "invalid"
}

// Rect is a cell rectangle. X and Y are the top-left corner.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Controller is the Hidden → Shown → Dismissed state machine. It is safe
// for concurrent use.
type Controller struct {
	mu     sync.Mutex
	state  State
	bounds Rect
	done   chan struct{}
}

// NewController creates a hidden controller.
func NewController() *Controller {
	return &Controller{done: make(chan struct{})}
}

// Show displays the overlay with the panel occupying bounds. It has no
// effect once dismissed.
func (c *Controller) Show(bounds Rect) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Dismissed {
		return
	}
	c.state = Shown
	c.bounds = bounds
}

// SetBounds updates the panel bounds after a resize or rebuild.
func (c *Controller) SetBounds(bounds Rect) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bounds = bounds
}

// Bounds returns the current panel bounds.
func (c *Controller) Bounds() Rect {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bounds
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Click handles a pointer press at (x, y). It returns true iff this click
// dismissed the overlay.
func (c *Controller) Click(x, y int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Shown || c.bounds.Contains(x, y) {
		return false
	}
	return c.dismissLocked()
}

// Key handles a key press by name. Only "esc" dismisses; it returns true
// iff this key dismissed the overlay.
func (c *Controller) Key(name string) bool {
	if name != "esc" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Shown {
		return false
	}
	return c.dismissLocked()
}

// Dismiss ends the session from any non-terminal state. It returns true
// only for the call that performed the transition.
func (c *Controller) Dismiss() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dismissLocked()
}

func (c *Controller) dismissLocked() bool {
	if c.state == Dismissed {
		return false
	}
	c.state = Dismissed
	close(c.done)
	return true
}

// Done returns a channel closed on dismissal.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}
