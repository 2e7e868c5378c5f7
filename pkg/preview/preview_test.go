package preview

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/splitview/internal/store"
	"github.com/marcus/splitview/pkg/splitpane"
)

func testLayout() *store.Layout {
	return &store.Layout{
		ID:           "demo",
		Orientation:  "vertical",
		FirstSize:    "30%",
		FirstMinSize: "5px",
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	m, err := New(nil, testLayout(), false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func resized(t *testing.T, m Model, w, h int) Model {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return next.(Model)
}

func TestNewRejectsInvalidLayouts(t *testing.T) {
	tests := []struct {
		name   string
		layout store.Layout
	}{
		{"bad orientation", store.Layout{ID: "x", Orientation: "diagonal"}},
		{"bad size expression", store.Layout{ID: "x", Orientation: "vertical", FirstSize: "12xy"}},
		{"both panes sized", store.Layout{ID: "x", Orientation: "vertical", FirstSize: "200px", SecondSize: "40%"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(nil, &tt.layout, false); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestBridgeSingleAttachment(t *testing.T) {
	b := &bridge{}

	handle, err := b.Attach(func(bool, int) {})
	if err != nil {
		t.Fatalf("first attach: %v", err)
	}
	if _, err := b.Attach(func(bool, int) {}); err == nil {
		t.Fatal("second attach should fail while the first handle is open")
	}

	if err := handle.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := handle.Close(); !errors.Is(err, splitpane.ErrDetached) {
		t.Fatalf("second close: got %v, want ErrDetached", err)
	}
}

func TestDividerPositionFromDeclaredSize(t *testing.T) {
	m := resized(t, newTestModel(t), 80, 24)

	// 30% of 80 columns.
	if got := m.dividerPosition(); got != 24 {
		t.Errorf("dividerPosition = %d, want 24", got)
	}
}

func TestDividerPositionEvenSplitWhenBothFlex(t *testing.T) {
	m, err := New(nil, &store.Layout{ID: "flex", Orientation: "vertical"}, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m = resized(t, m, 81, 24)

	if got := m.dividerPosition(); got != 40 {
		t.Errorf("dividerPosition = %d, want 40", got)
	}
}

func TestDividerPositionFromSecondPaneSize(t *testing.T) {
	m, err := New(nil, &store.Layout{ID: "second", Orientation: "vertical", SecondSize: "20px"}, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m = resized(t, m, 80, 24)

	if got := m.dividerPosition(); got != 59 {
		t.Errorf("dividerPosition = %d, want 59", got)
	}
}

func TestNudgeReportsThroughBridge(t *testing.T) {
	m := resized(t, newTestModel(t), 80, 24)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	m = next.(Model)

	c := m.sp.Coordinator()
	if !c.DragAdjusted(splitpane.First) {
		t.Fatal("first pane should be drag-adjusted after a nudge")
	}
	if got := c.Current(splitpane.First); got != splitpane.Px(25) {
		t.Errorf("current first size = %v, want 25px", got)
	}
	if m.firstN.count != 1 {
		t.Errorf("notifications = %d, want exactly 1", m.firstN.count)
	}
	if m.firstN.last != "25" {
		t.Errorf("notified size = %q, want %q", m.firstN.last, "25")
	}
}

func TestDragResizesDivider(t *testing.T) {
	m := resized(t, newTestModel(t), 80, 24)
	m.View() // registers the divider hit region

	press := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, X: 24, Y: 5}
	next, _ := m.Update(press)
	m = next.(Model)
	if !m.dragging {
		t.Fatal("press on divider should start a drag")
	}

	motion := tea.MouseMsg{Action: tea.MouseActionMotion, X: 34, Y: 5}
	next, _ = m.Update(motion)
	m = next.(Model)

	if got := m.sp.Coordinator().Current(splitpane.First); got != splitpane.Px(34) {
		t.Errorf("first size after drag = %v, want 34px", got)
	}

	release := tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft, X: 34, Y: 5}
	next, _ = m.Update(release)
	m = next.(Model)
	if m.dragging {
		t.Error("release should end the drag")
	}
}

func TestDragClampsToMinSizes(t *testing.T) {
	m := resized(t, newTestModel(t), 80, 24)

	m.applyDividerPosition(-50)
	// First pane min is 5px.
	if got := m.sp.Coordinator().Current(splitpane.First); got != splitpane.Px(5) {
		t.Errorf("clamped low = %v, want 5px", got)
	}

	m.applyDividerPosition(500)
	if got := m.sp.Coordinator().Current(splitpane.First); got != splitpane.Px(79) {
		t.Errorf("clamped high = %v, want 79px", got)
	}
}

func TestRestoreDeclaredSize(t *testing.T) {
	m := resized(t, newTestModel(t), 80, 24)
	m.applyDividerPosition(50)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(Model)

	c := m.sp.Coordinator()
	if c.DragAdjusted(splitpane.First) {
		t.Error("restore should return the first pane to its declared state")
	}
	want := splitpane.Size{Magnitude: 30, Unit: splitpane.UnitPercent}
	if got := c.Current(splitpane.First); got != want {
		t.Errorf("restored size = %v, want %v", got, want)
	}
	// Restoring is declarative, so it must not notify.
	if m.firstN.count != 1 {
		t.Errorf("notifications = %d, want 1 (the drag only)", m.firstN.count)
	}
}

func TestFlipOrientation(t *testing.T) {
	m := resized(t, newTestModel(t), 80, 24)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	m = next.(Model)

	if got := m.sp.Orientation(); got != splitpane.Horizontal {
		t.Errorf("orientation = %v, want horizontal", got)
	}
	if m.Err() != nil {
		t.Errorf("unexpected error: %v", m.Err())
	}
}

func TestFlipOrientationKeepsMinSizes(t *testing.T) {
	l := testLayout()
	l.SecondMinSize = "3px"
	m, err := New(nil, l, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m = resized(t, m, 80, 24)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	m = next.(Model)
	if m.Err() != nil {
		t.Fatalf("flip: %v", m.Err())
	}

	// The rebuilt layout still clamps: minimum sizes survive the flip.
	if got := m.sp.MinSize(splitpane.First); got != (splitpane.Size{Magnitude: 5, Unit: splitpane.UnitPx}) {
		t.Errorf("first min size = %v, want 5px", got)
	}
	if got := m.sp.MinSize(splitpane.Second); got != (splitpane.Size{Magnitude: 3, Unit: splitpane.UnitPx}) {
		t.Errorf("second min size = %v, want 3px", got)
	}
}

func TestDragEndPersistsSize(t *testing.T) {
	st, err := store.Initialize(t.TempDir())
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer st.Close()

	l := testLayout()
	if err := st.SaveLayout(l); err != nil {
		t.Fatalf("SaveLayout: %v", err)
	}

	m, err := New(st, l, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m = resized(t, m, 80, 24)
	m.View()

	press := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, X: 24, Y: 5}
	next, _ := m.Update(press)
	m = next.(Model)
	motion := tea.MouseMsg{Action: tea.MouseActionMotion, X: 40, Y: 5}
	next, _ = m.Update(motion)
	m = next.(Model)
	release := tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft, X: 40, Y: 5}
	next, _ = m.Update(release)
	m = next.(Model)

	if m.Err() != nil {
		t.Fatalf("session error: %v", m.Err())
	}

	stored, err := st.GetLayout("demo")
	if err != nil {
		t.Fatalf("GetLayout: %v", err)
	}
	if stored.FirstSize != "40px" {
		t.Errorf("persisted first size = %q, want %q", stored.FirstSize, "40px")
	}
}

func TestQuitDetachesBridge(t *testing.T) {
	m := resized(t, newTestModel(t), 80, 24)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(Model)

	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if m.bridge.report != nil {
		t.Error("quit should release the bridge handle")
	}
	if m.Err() != nil {
		t.Errorf("unexpected error: %v", m.Err())
	}
}
