package splitpane

import (
	"strconv"
	"sync"
)

// Pane identifies one of the two panes.
type Pane int

const (
	// First is the left pane (or top pane when stacked).
	First Pane = iota
	// Second is the right pane (or bottom pane when stacked).
	Second
)

// String returns "first" or "second".
func (p Pane) String() string {
	if p == Second {
		return "second"
	}
	return "first"
}

// trackState records which writer last set a pane's size.
type trackState int

const (
	// declared: the size came from the owning caller's configuration.
	declared trackState = iota
	// dragAdjusted: the size came from an interactive drag.
	dragAdjusted
)

// track holds the current size of one pane and where it came from.
type track struct {
	state trackState
	size  Size
}

// Coordinator is the single source of truth for current pane sizes. It
// reconciles two independent writers: declarative configuration updates and
// pixel sizes reported by a drag bridge. Declarative input always wins once
// supplied; drag input produces exactly one notification per resize event.
//
// A mutex serializes the two paths so the coordinator can also back
// concurrent writers (the HTTP surface); in the TUI both paths already
// arrive on the single update loop.
type Coordinator struct {
	mu     sync.Mutex
	tracks [2]track
	sinks  [2]func(string)
}

// NewCoordinator returns a coordinator with both tracks in the declared
// state, seeded from the given sizes.
func NewCoordinator(first, second Size) *Coordinator {
	return &Coordinator{
		tracks: [2]track{
			{state: declared, size: first},
			{state: declared, size: second},
		},
	}
}

// Notify registers the change sink for a pane. The sink receives the new
// size as a string whenever a drag resize lands on that pane. Pixel sizes
// are reported as bare integers ("300"); the pixel unit is implied since
// drags produce pixel deltas.
func (c *Coordinator) Notify(pane Pane, sink func(string)) {
	c.mu.Lock()
	c.sinks[pane] = sink
	c.mu.Unlock()
}

// ReportResize consumes a resize event from a drag bridge: the named pane's
// track moves to the drag-adjusted state with the reported pixel size, and
// that pane's sink is invoked exactly once. The other track is untouched.
func (c *Coordinator) ReportResize(firstPane bool, pixels int) {
	pane := Second
	if firstPane {
		pane = First
	}

	c.mu.Lock()
	c.tracks[pane] = track{state: dragAdjusted, size: Px(pixels)}
	sink := c.sinks[pane]
	c.mu.Unlock()

	// Invoke outside the lock so a sink may call back into the coordinator.
	if sink != nil {
		sink(strconv.Itoa(pixels))
	}
}

// SetDeclared applies a declarative size update for a pane, replacing any
// drag-adjusted value. No notification is emitted: declarative updates are
// pulled by the owner, not pushed.
func (c *Coordinator) SetDeclared(pane Pane, s Size) {
	c.mu.Lock()
	c.tracks[pane] = track{state: declared, size: s}
	c.mu.Unlock()
}

// Current returns the effective size of a pane for layout recomputation.
func (c *Coordinator) Current(pane Pane) Size {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracks[pane].size
}

// DragAdjusted reports whether the pane's current size came from a drag
// rather than from declarative configuration.
func (c *Coordinator) DragAdjusted(pane Pane) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracks[pane].state == dragAdjusted
}
