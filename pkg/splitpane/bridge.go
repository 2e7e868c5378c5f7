package splitpane

import (
	"errors"
	"io"
)

// ErrDetached is returned by a bridge handle's Close when the interactive
// surface is already gone. Teardown racing an in-flight drag is expected;
// SplitPane.Detach suppresses this error and propagates everything else.
var ErrDetached = errors.New("splitpane: bridge already detached")

// ReportFunc is the typed callback a DragBridge invokes to deliver a resize
// event: which pane changed and its new size in pixels. Passing the
// callback at attach time keeps the bridge free of any name-based lookup
// into the component.
type ReportFunc func(firstPane bool, pixels int)

// DragBridge is the interactive layer that tracks pointer movement along
// the divider and reports new pixel sizes. Implementations attach once,
// invoke report zero or more times at their own cadence, and stop when the
// returned handle is closed.
type DragBridge interface {
	Attach(report ReportFunc) (io.Closer, error)
}
