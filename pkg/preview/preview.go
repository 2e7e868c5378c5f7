// Package preview is an interactive terminal rendition of a split-pane
// layout. It is the native DragBridge implementation: dragging the divider
// with the mouse feeds pixel sizes (terminal cells) into the component's
// resize coordinator, and the status line shows the recomputed pane styles
// live. With a store attached, drag-adjusted sizes are persisted when the
// drag ends.
package preview

import (
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/splitview/internal/store"
	"github.com/marcus/splitview/pkg/preview/mouse"
	"github.com/marcus/splitview/pkg/splitpane"
)

// dividerRegion is the hit map id of the drag bar.
const dividerRegion = "divider"

// bridge is the preview's DragBridge endpoint. The component attaches once
// and receives resize reports while the divider is dragged; closing the
// handle twice yields the expected already-detached error.
type bridge struct {
	report splitpane.ReportFunc
}

func (b *bridge) Attach(report splitpane.ReportFunc) (io.Closer, error) {
	if b.report != nil {
		return nil, errors.New("preview: bridge already attached")
	}
	b.report = report
	return &bridgeHandle{b: b}, nil
}

type bridgeHandle struct {
	b *bridge
}

func (h *bridgeHandle) Close() error {
	if h.b.report == nil {
		return splitpane.ErrDetached
	}
	h.b.report = nil
	return nil
}

// notices records what the component's notification sinks received. Sink
// work stays allocation-light since reports arrive at drag cadence.
type notices struct {
	count int
	last  string
}

// Model is the bubbletea model for the preview.
type Model struct {
	st       *store.Store // nil disables persistence
	layoutID string
	persist  bool

	sp     *splitpane.SplitPane
	bridge *bridge
	firstN *notices
	mouse  *mouse.Handler

	// Declared expressions, kept for the restore key and for rebuilds.
	firstExpr     string
	firstMinExpr  string
	secondExpr    string
	secondMinExpr string

	width  int
	height int

	firstVP  viewport.Model
	secondVP viewport.Model

	dragging bool
	quitting bool
	err      error
}

// New builds a preview for a stored layout. The store may be nil for an
// ephemeral preview; persist controls whether drag results are written back.
func New(st *store.Store, l *store.Layout, persist bool) (Model, error) {
	orientation, err := splitpane.ParseOrientation(l.Orientation)
	if err != nil {
		return Model{}, err
	}

	firstN := &notices{}
	sp, err := splitpane.New(splitpane.Config{
		ID:                l.ID,
		Orientation:       orientation,
		FirstPaneSize:     l.FirstSize,
		FirstPaneMinSize:  l.FirstMinSize,
		SecondPaneSize:    l.SecondSize,
		SecondPaneMinSize: l.SecondMinSize,
		OnFirstPaneSizeChanged: func(s string) {
			firstN.count++
			firstN.last = s
		},
	})
	if err != nil {
		return Model{}, err
	}

	b := &bridge{}
	if err := sp.Attach(b); err != nil {
		return Model{}, err
	}

	return Model{
		st:            st,
		layoutID:      l.ID,
		persist:       persist && st != nil,
		sp:            sp,
		bridge:        b,
		firstN:        firstN,
		mouse:         mouse.NewHandler(),
		firstExpr:     l.FirstSize,
		firstMinExpr:  l.FirstMinSize,
		secondExpr:    l.SecondSize,
		secondMinExpr: l.SecondMinSize,
		firstVP:       viewport.New(0, 0),
		secondVP:      viewport.New(0, 0),
	}, nil
}

// Err returns the first persistence error hit during the session, if any.
func (m Model) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refreshContent()
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		// Teardown may race an in-flight drag; the expected detach error
		// is suppressed inside Detach.
		if err := m.sp.Detach(); err != nil && m.err == nil {
			m.err = err
		}
		return m, tea.Quit

	case "left", "h", "up", "k":
		m.nudgeDivider(-1)
		return m, nil

	case "right", "l", "down", "j":
		m.nudgeDivider(1)
		return m, nil

	case "o":
		m.flipOrientation()
		return m, nil

	case "r":
		// Declarative input wins: restoring the declared expressions
		// discards any drag-adjusted value.
		if err := m.sp.SetPaneSize(splitpane.First, m.firstExpr); err == nil {
			_ = m.sp.SetPaneSize(splitpane.Second, m.secondExpr)
		}
		m.refreshContent()
		return m, nil
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	action := m.mouse.HandleMouse(msg)

	switch action.Type {
	case mouse.ActionClick:
		if action.Region != nil && action.Region.ID == dividerRegion {
			m.mouse.StartDrag(action.X, action.Y, dividerRegion, m.dividerPosition())
			m.dragging = true
		}

	case mouse.ActionDrag:
		if m.mouse.DragRegion() == dividerRegion {
			delta := action.DragDX
			if m.sp.Orientation() == splitpane.Horizontal {
				delta = action.DragDY
			}
			m.applyDividerPosition(m.mouse.DragStartValue() + delta)
		}

	case mouse.ActionDragEnd:
		if m.dragging {
			m.dragging = false
			m.persistDragResult()
		}

	case mouse.ActionScrollUp:
		m.firstVP.ScrollUp(1)
		m.secondVP.ScrollUp(1)

	case mouse.ActionScrollDown:
		m.firstVP.ScrollDown(1)
		m.secondVP.ScrollDown(1)
	}

	return m, nil
}

// nudgeDivider moves the divider by delta cells via the same resize path a
// mouse drag uses.
func (m *Model) nudgeDivider(delta int) {
	m.applyDividerPosition(m.dividerPosition() + delta)
}

// applyDividerPosition clamps a candidate divider position and reports the
// sized pane's new extent through the drag bridge.
func (m *Model) applyDividerPosition(pos int) {
	total := m.mainAxisTotal()
	if total <= 1 {
		return
	}

	minFirst, minSecond := m.minExtents()
	if pos < minFirst {
		pos = minFirst
	}
	if max := total - 1 - minSecond; pos > max {
		pos = max
	}
	if pos < 0 {
		pos = 0
	}

	if m.bridge.report == nil {
		return
	}
	if m.secondPaneSized() {
		m.bridge.report(false, total-1-pos)
	} else {
		m.bridge.report(true, pos)
	}
	m.refreshContent()
}

// persistDragResult writes the drag-adjusted size back to the store.
func (m *Model) persistDragResult() {
	if !m.persist {
		return
	}
	pane := splitpane.First
	if m.secondPaneSized() {
		pane = splitpane.Second
	}
	size := m.sp.Coordinator().Current(pane)
	if size.IsEmpty() {
		return
	}
	if err := m.st.SetPaneSize(m.layoutID, pane, size.String()); err != nil && m.err == nil {
		m.err = err
	}
}

// flipOrientation rebuilds the component with the other orientation. This
// is a declarative configuration change, so both tracks return to their
// declared sizes.
func (m *Model) flipOrientation() {
	orientation := splitpane.Horizontal
	if m.sp.Orientation() == splitpane.Horizontal {
		orientation = splitpane.Vertical
	}

	if err := m.sp.Detach(); err != nil && m.err == nil {
		m.err = err
	}

	sp, err := splitpane.New(splitpane.Config{
		ID:                m.layoutID,
		Orientation:       orientation,
		FirstPaneSize:     m.firstExpr,
		FirstPaneMinSize:  m.firstMinExpr,
		SecondPaneSize:    m.secondExpr,
		SecondPaneMinSize: m.secondMinExpr,
		OnFirstPaneSizeChanged: func(s string) {
			m.firstN.count++
			m.firstN.last = s
		},
	})
	if err != nil {
		if m.err == nil {
			m.err = err
		}
		return
	}

	m.bridge = &bridge{}
	if err := sp.Attach(m.bridge); err != nil {
		if m.err == nil {
			m.err = err
		}
		return
	}
	m.sp = sp

	if m.persist {
		l, err := m.st.GetLayout(m.layoutID)
		if err == nil {
			l.Orientation = orientation.String()
			if err := m.st.SaveLayout(l); err != nil && m.err == nil {
				m.err = err
			}
		}
	}
	m.refreshContent()
}

// secondPaneSized reports whether the second pane is the one carrying an
// explicit size (the first then flexes and the divider resizes the second).
func (m *Model) secondPaneSized() bool {
	return m.sp.Coordinator().Current(splitpane.First).IsEmpty() &&
		!m.sp.Coordinator().Current(splitpane.Second).IsEmpty()
}
