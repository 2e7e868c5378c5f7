package splitpane

import "fmt"

// Orientation controls how the two panes are arranged. Vertical places them
// side by side (the divider runs vertically), Horizontal stacks them (the
// divider runs horizontally).
type Orientation int

const (
	// Vertical is the default: panes side by side, sizes constrain width.
	Vertical Orientation = iota
	// Horizontal stacks panes, sizes constrain height.
	Horizontal
)

// String returns the lowercase name of the orientation.
func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseOrientation converts a stored orientation name back to the enum.
// Blank input yields the default (Vertical).
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "", "vertical":
		return Vertical, nil
	case "horizontal":
		return Horizontal, nil
	}
	return Vertical, fmt.Errorf("unknown orientation %q", s)
}

// styleKey returns the CSS property a pane size constrains for this
// orientation. Side-by-side panes are constrained in width, stacked panes
// in height.
func (o Orientation) styleKey() string {
	if o == Vertical {
		return "width"
	}
	return "height"
}

// ComputeStyle derives the inline style declarations for one pane from its
// size and minimum size. The output order is fixed: the min constraint
// first, then either the explicit size or flex:1 for a fill pane. Dependent
// styling relies on this ordering.
func ComputeStyle(size, minSize Size, o Orientation) string {
	key := o.styleKey()

	var style string
	if !minSize.IsEmpty() {
		style += "min-" + key + ":" + minSize.String() + ";"
	}
	if !size.IsEmpty() {
		style += key + ":" + size.String() + ";"
	} else {
		style += "flex:1;"
	}
	return style
}
