// Package feed maintains the active panel index of the full-screen feed
// and turns swipe events into scroll requests.
package feed

import (
	"sync"
	"time"

	"github.com/ayusman/hasta/internal/swipe"
)

// PanelKind distinguishes the two supported panel types.
type PanelKind string

const (
	// KindColor is a solid-color card panel.
	KindColor PanelKind = "color"
	// KindVideo is a looping video panel.
	KindVideo PanelKind = "video"
)

// Panel is one full-screen item in the feed.
type Panel struct {
	ID        string    `json:"id"`
	Kind      PanelKind `json:"kind"`
	Color     string    `json:"color,omitempty"`
	MediaURL  string    `json:"media_url,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultViewportHeight is the assumed panel height in pixels when the
// settings store has no value.
const DefaultViewportHeight = 1080

// Scroller receives scroll requests when the active panel changes.
// Implementations forward them to the rendering layer.
type Scroller interface {
	ScrollTo(index, offsetPx int)
}

// ScrollerFunc adapts a function to the Scroller interface.
type ScrollerFunc func(index, offsetPx int)

// ScrollTo calls f.
func (f ScrollerFunc) ScrollTo(index, offsetPx int) {
	f(index, offsetPx)
}

// Config holds configuration options for the Controller.
type Config struct {
	// Panels is the ordered deck the feed navigates. Must be non-empty.
	Panels []Panel

	// ViewportHeight is the panel height in pixels used to compute
	// scroll offsets. Defaults to DefaultViewportHeight.
	ViewportHeight int

	// Scroller receives scroll requests. May be nil.
	Scroller Scroller

	// OnChange is notified with the new active index after each change.
	// Used to start and stop per-panel video playback. May be nil.
	OnChange func(index int)
}

// Controller owns the active panel index. The index is clamped to
// [0, len(panels)) at all times: swipes at either end are no-ops and
// issue no scroll request.
type Controller struct {
	viewportHeight int
	scroller       Scroller
	onChange       func(index int)

	mu          sync.RWMutex
	panels      []Panel
	activeIndex int
}

// NewController creates a Controller positioned on the first panel.
func NewController(config Config) *Controller {
	height := config.ViewportHeight
	if height <= 0 {
		height = DefaultViewportHeight
	}

	return &Controller{
		viewportHeight: height,
		scroller:       config.Scroller,
		onChange:       config.OnChange,
		panels:         config.Panels,
	}
}

// OnSwipe advances or retreats the active index for the given event.
// Returns true if the index changed.
func (c *Controller) OnSwipe(ev swipe.Event) bool {
	c.mu.Lock()

	next := c.activeIndex
	switch ev {
	case swipe.Next:
		if c.activeIndex < len(c.panels)-1 {
			next = c.activeIndex + 1
		}
	case swipe.Prev:
		if c.activeIndex > 0 {
			next = c.activeIndex - 1
		}
	}

	if next == c.activeIndex {
		c.mu.Unlock()
		return false
	}

	c.activeIndex = next
	scroller := c.scroller
	onChange := c.onChange
	offset := next * c.viewportHeight
	c.mu.Unlock()

	// Callbacks run outside the lock to prevent deadlocks.
	if scroller != nil {
		scroller.ScrollTo(next, offset)
	}
	if onChange != nil {
		onChange(next)
	}
	return true
}

// ActiveIndex returns the current active panel index.
func (c *Controller) ActiveIndex() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.activeIndex
}

// PanelCount returns the number of panels in the feed.
func (c *Controller) PanelCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.panels)
}

// Panels returns a copy of the panel deck in feed order.
func (c *Controller) Panels() []Panel {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Panel, len(c.panels))
	copy(out, c.panels)
	return out
}

// ActivePanel returns the currently active panel, or false if the feed
// is empty.
func (c *Controller) ActivePanel() (Panel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.panels) == 0 {
		return Panel{}, false
	}
	return c.panels[c.activeIndex], true
}

// SetPanels replaces the panel deck, clamping the active index into the
// new range.
func (c *Controller) SetPanels(panels []Panel) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.panels = panels
	if c.activeIndex >= len(panels) {
		c.activeIndex = len(panels) - 1
	}
	if c.activeIndex < 0 {
		c.activeIndex = 0
	}
}
