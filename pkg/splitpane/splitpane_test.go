package splitpane

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestNewRejectsBothSizes(t *testing.T) {
	_, err := New(Config{
		FirstPaneSize:  "240px",
		SecondPaneSize: "30%",
	})
	if !errors.Is(err, ErrBothSizesDeclared) {
		t.Errorf("New with both sizes: err = %v, want ErrBothSizesDeclared", err)
	}
}

func TestNewRejectsMalformedSizes(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"bad first size", Config{FirstPaneSize: "12xy"}},
		{"bad first min", Config{FirstPaneMinSize: "abcpx"}},
		{"bad second size", Config{SecondPaneSize: "oops"}},
		{"bad second min", Config{SecondPaneMinSize: "10pt"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.cfg); err == nil {
				t.Error("expected configuration to be rejected")
			}
		})
	}
}

func TestPaneStyles(t *testing.T) {
	sp, err := New(Config{
		FirstPaneSize:     "240px",
		SecondPaneMinSize: "100px",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got := sp.PaneStyle(First); got != "width:240px;" {
		t.Errorf("PaneStyle(First) = %q, want %q", got, "width:240px;")
	}
	if got := sp.PaneStyle(Second); got != "min-width:100px;flex:1;" {
		t.Errorf("PaneStyle(Second) = %q, want %q", got, "min-width:100px;flex:1;")
	}
}

func TestPaneStylesHorizontal(t *testing.T) {
	sp, err := New(Config{
		Orientation:      Horizontal,
		FirstPaneMinSize: "100px",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := sp.PaneStyle(First); got != "min-height:100px;flex:1;" {
		t.Errorf("PaneStyle(First) = %q, want %q", got, "min-height:100px;flex:1;")
	}
}

func TestRenderMarkup(t *testing.T) {
	sp, err := New(Config{
		ID:            "main-split",
		Class:         "workspace",
		FirstPaneSize: "240px",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out := sp.Render("LEFT", "RIGHT")

	for _, want := range []string{
		`id="main-split"`,
		`class="splitpane workspace"`,
		"display:flex;flex-direction:row;",
		`style="width:240px;"`,
		`style="flex:1;"`,
		"splitpane-divider-vertical",
		">LEFT</div>",
		">RIGHT</div>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render output missing %q:\n%s", want, out)
		}
	}

	// Pane order is fixed: first, divider, second.
	first := strings.Index(out, "splitpane-first")
	divider := strings.Index(out, "splitpane-divider")
	second := strings.Index(out, "splitpane-second")
	if !(first < divider && divider < second) {
		t.Errorf("pane ordering wrong: first=%d divider=%d second=%d", first, divider, second)
	}
}

func TestRenderReflectsDrag(t *testing.T) {
	sp, err := New(Config{FirstPaneSize: "240px"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	sp.Coordinator().ReportResize(true, 300)

	out := sp.Render("", "")
	if !strings.Contains(out, `style="width:300px;"`) {
		t.Errorf("Render after drag missing width:300px: %s", out)
	}
}

func TestSetPaneSizeRestoresDeclared(t *testing.T) {
	sp, err := New(Config{FirstPaneSize: "240px"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	sp.Coordinator().ReportResize(true, 300)
	if err := sp.SetPaneSize(First, "30%"); err != nil {
		t.Fatalf("SetPaneSize: %v", err)
	}
	if got := sp.PaneStyle(First); got != "width:30%;" {
		t.Errorf("PaneStyle(First) = %q, want %q", got, "width:30%;")
	}
}

func TestSetPaneSizeRejectsDualConfig(t *testing.T) {
	sp, err := New(Config{FirstPaneSize: "240px"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := sp.SetPaneSize(Second, "30%"); !errors.Is(err, ErrBothSizesDeclared) {
		t.Errorf("SetPaneSize creating dual config: err = %v, want ErrBothSizesDeclared", err)
	}
}

// fakeBridge drives the report callback directly and records disposal.
type fakeBridge struct {
	report   ReportFunc
	closed   bool
	closeErr error
}

type fakeHandle struct{ b *fakeBridge }

func (h *fakeHandle) Close() error {
	h.b.closed = true
	return h.b.closeErr
}

func (b *fakeBridge) Attach(report ReportFunc) (io.Closer, error) {
	b.report = report
	return &fakeHandle{b: b}, nil
}

func TestAttachDetach(t *testing.T) {
	var got []string
	sp, err := New(Config{
		FirstPaneSize:          "240px",
		OnFirstPaneSizeChanged: func(s string) { got = append(got, s) },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	bridge := &fakeBridge{}
	if err := sp.Attach(bridge); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := sp.Attach(bridge); err == nil {
		t.Error("second Attach should fail while handle is held")
	}

	bridge.report(true, 300)
	if len(got) != 1 || got[0] != "300" {
		t.Errorf("notifications = %v, want [\"300\"]", got)
	}

	if err := sp.Detach(); err != nil {
		t.Fatalf("Detach: %v", err)
	}
	if !bridge.closed {
		t.Error("bridge handle not closed on Detach")
	}
	// Detach after release is a no-op.
	if err := sp.Detach(); err != nil {
		t.Errorf("second Detach: %v", err)
	}
}

func TestDetachSuppressesExpectedRace(t *testing.T) {
	sp, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	bridge := &fakeBridge{closeErr: ErrDetached}
	if err := sp.Attach(bridge); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := sp.Detach(); err != nil {
		t.Errorf("Detach should suppress ErrDetached, got %v", err)
	}
}

func TestDetachPropagatesUnexpectedErrors(t *testing.T) {
	sp, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	bridge := &fakeBridge{closeErr: errors.New("terminal exploded")}
	if err := sp.Attach(bridge); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := sp.Detach(); err == nil {
		t.Error("Detach should propagate unexpected close errors")
	}
}
