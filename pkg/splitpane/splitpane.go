package splitpane

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strings"
)

// ErrBothSizesDeclared rejects configurations that declare explicit sizes
// for both panes. With two fixed panes the divider has nothing to
// redistribute, so the drag behavior would be undefined; the configuration
// is refused up front instead.
var ErrBothSizesDeclared = errors.New("splitpane: at most one pane may declare a size; leave the other empty to flex-fill")

// Config is the declarative parameter surface of a split pane.
type Config struct {
	// ID, Style and Class are passed through to the container markup.
	ID    string
	Style string
	Class string

	// Orientation of the split. The zero value is Vertical (side by side).
	Orientation Orientation

	// Size expressions per pane. All optional; an empty size flex-fills.
	FirstPaneSize     string
	FirstPaneMinSize  string
	SecondPaneSize    string
	SecondPaneMinSize string

	// Notification sinks, invoked with the new size as a string whenever a
	// drag resize lands on the corresponding pane.
	OnFirstPaneSizeChanged  func(string)
	OnSecondPaneSizeChanged func(string)
}

// SplitPane is a two-pane layout divided by a draggable bar. It owns the
// parsed pane specs and the resize coordinator; the interactive divider is
// driven by a DragBridge attached by the host.
type SplitPane struct {
	cfg   Config
	coord *Coordinator

	firstMin  Size
	secondMin Size

	handle io.Closer
}

// New validates the configuration and builds the component. Malformed size
// expressions and dual-declared sizes are rejected; the configuration never
// silently defaults.
func New(cfg Config) (*SplitPane, error) {
	first, err := ParseSize(cfg.FirstPaneSize)
	if err != nil {
		return nil, fmt.Errorf("first pane size: %w", err)
	}
	firstMin, err := ParseSize(cfg.FirstPaneMinSize)
	if err != nil {
		return nil, fmt.Errorf("first pane min size: %w", err)
	}
	second, err := ParseSize(cfg.SecondPaneSize)
	if err != nil {
		return nil, fmt.Errorf("second pane size: %w", err)
	}
	secondMin, err := ParseSize(cfg.SecondPaneMinSize)
	if err != nil {
		return nil, fmt.Errorf("second pane min size: %w", err)
	}

	if !first.IsEmpty() && !second.IsEmpty() {
		return nil, ErrBothSizesDeclared
	}

	coord := NewCoordinator(first, second)
	coord.Notify(First, cfg.OnFirstPaneSizeChanged)
	coord.Notify(Second, cfg.OnSecondPaneSizeChanged)

	return &SplitPane{
		cfg:       cfg,
		coord:     coord,
		firstMin:  firstMin,
		secondMin: secondMin,
	}, nil
}

// Coordinator exposes the component's resize coordinator so hosts can feed
// it declarative updates or read current sizes.
func (sp *SplitPane) Coordinator() *Coordinator {
	return sp.coord
}

// Orientation returns the configured orientation.
func (sp *SplitPane) Orientation() Orientation {
	return sp.cfg.Orientation
}

// SetPaneSize applies a declarative size update for one pane, replacing any
// drag-adjusted value. The expression is validated before it takes effect.
func (sp *SplitPane) SetPaneSize(pane Pane, expr string) error {
	s, err := ParseSize(expr)
	if err != nil {
		return fmt.Errorf("%s pane size: %w", pane, err)
	}
	other := sp.coord.Current(otherPane(pane))
	if !s.IsEmpty() && !other.IsEmpty() && !sp.coord.DragAdjusted(otherPane(pane)) {
		return ErrBothSizesDeclared
	}
	sp.coord.SetDeclared(pane, s)
	return nil
}

// MinSize returns the declared minimum size of a pane.
func (sp *SplitPane) MinSize(pane Pane) Size {
	if pane == Second {
		return sp.secondMin
	}
	return sp.firstMin
}

// PaneStyle returns the current inline style for one pane, recomputed from
// the coordinator's effective size.
func (sp *SplitPane) PaneStyle(pane Pane) string {
	min := sp.firstMin
	if pane == Second {
		min = sp.secondMin
	}
	return ComputeStyle(sp.coord.Current(pane), min, sp.cfg.Orientation)
}

// Attach acquires the interactive handle from a drag bridge, wiring the
// bridge's reports into the coordinator. The handle is held until Detach.
func (sp *SplitPane) Attach(bridge DragBridge) error {
	if sp.handle != nil {
		return errors.New("splitpane: bridge already attached")
	}
	h, err := bridge.Attach(sp.coord.ReportResize)
	if err != nil {
		return fmt.Errorf("attach drag bridge: %w", err)
	}
	sp.handle = h
	return nil
}

// Detach releases the interactive handle. The already-detached race (the
// surface torn down mid-drag) is expected and suppressed; any other close
// failure propagates.
func (sp *SplitPane) Detach() error {
	if sp.handle == nil {
		return nil
	}
	err := sp.handle.Close()
	sp.handle = nil
	if err != nil && !errors.Is(err, ErrDetached) {
		return fmt.Errorf("detach drag bridge: %w", err)
	}
	return nil
}

// Render emits the container markup: the outer div, the first pane with its
// computed style, the divider, and the second pane. Pane content is passed
// through as-is; the caller owns its escaping.
func (sp *SplitPane) Render(firstContent, secondContent string) string {
	dir := "row"
	if sp.cfg.Orientation == Horizontal {
		dir = "column"
	}

	containerStyle := "display:flex;flex-direction:" + dir + ";" + sp.cfg.Style

	var b strings.Builder
	b.WriteString(`<div`)
	if sp.cfg.ID != "" {
		fmt.Fprintf(&b, ` id=%q`, html.EscapeString(sp.cfg.ID))
	}
	class := strings.TrimSpace("splitpane " + sp.cfg.Class)
	fmt.Fprintf(&b, ` class=%q style=%q>`, class, containerStyle)

	fmt.Fprintf(&b, `<div class="splitpane-pane splitpane-first" style=%q>%s</div>`,
		sp.PaneStyle(First), firstContent)
	fmt.Fprintf(&b, `<div class="splitpane-divider splitpane-divider-%s"></div>`,
		sp.cfg.Orientation)
	fmt.Fprintf(&b, `<div class="splitpane-pane splitpane-second" style=%q>%s</div>`,
		sp.PaneStyle(Second), secondContent)

	b.WriteString(`</div>`)
	return b.String()
}

func otherPane(p Pane) Pane {
	if p == First {
		return Second
	}
	return First
}
