// Package splitpane implements a two-pane layout divided by a draggable
// bar. It owns the size model and the resize protocol: parsing CSS-like
// size expressions, deriving pane style declarations from them, and
// reconciling size changes that arrive from two independent writers:
// declarative configuration and live drag input.
//
// The interactive layer is an external collaborator behind the DragBridge
// contract: it attaches once with a typed report callback, delivers new
// pixel sizes at its own cadence, and is released through the returned
// handle. pkg/preview provides a terminal implementation; internal/serve
// bridges a browser.
//
// A pane without a size expression flex-fills the remaining space.
// Declaring explicit sizes for both panes is rejected at construction,
// since a divider between two fixed panes has undefined drag behavior.
package splitpane
