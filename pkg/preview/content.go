package preview

import (
	"github.com/charmbracelet/glamour"
)

// Demo content shown in the two panes. Markdown keeps the preview honest
// about wrapping: resizing a pane re-renders its content at the new width.
const (
	firstPaneMarkdown = `# First pane

Drag the highlighted divider with the mouse, or nudge it with the
arrow keys.

- ` + "`h`/`l`" + ` or arrows move the divider one cell
- ` + "`o`" + ` flips the orientation
- ` + "`r`" + ` restores the declared size
- ` + "`q`" + ` quits
`

	secondPaneMarkdown = `# Second pane

This pane has no declared size, so it *flexes* to fill whatever the
first pane leaves over.

The status line below shows the style each pane would receive,
recomputed live from the coordinator.
`
)

// renderMarkdown renders markdown at the given wrap width. On renderer
// errors the raw markdown is returned so the preview stays usable.
func renderMarkdown(md string, width int) string {
	if width < 10 {
		width = 10
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
