package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/splitview/pkg/splitpane"
)

// paneChrome is the width the pane border adds on each axis.
const paneChrome = 2

// mainAxisTotal is the cell count available along the resize axis.
func (m *Model) mainAxisTotal() int {
	if m.sp.Orientation() == splitpane.Horizontal {
		return m.contentHeight()
	}
	return m.width
}

// contentHeight is the vertical space left after the status line.
func (m *Model) contentHeight() int {
	h := m.height - 1
	if h < 0 {
		h = 0
	}
	return h
}

// sizeToCells maps a size expression onto terminal cells. The cell is the
// pixel unit of this bridge; rem and em collapse to single cells since a
// character cell is the terminal's em box. Returns -1 for an empty size.
func (m *Model) sizeToCells(s splitpane.Size, total int) int {
	if s.IsEmpty() {
		return -1
	}
	switch s.Unit {
	case splitpane.UnitPercent, splitpane.UnitVh, splitpane.UnitVw:
		return s.Magnitude * total / 100
	case splitpane.UnitRem, splitpane.UnitEm:
		return s.Magnitude
	default:
		return s.Magnitude
	}
}

// minExtents returns the minimum cell extents of both panes.
func (m *Model) minExtents() (int, int) {
	total := m.mainAxisTotal()
	minFirst := m.sizeToCells(m.sp.MinSize(splitpane.First), total)
	minSecond := m.sizeToCells(m.sp.MinSize(splitpane.Second), total)
	if minFirst < 0 {
		minFirst = 0
	}
	if minSecond < 0 {
		minSecond = 0
	}
	return minFirst, minSecond
}

// dividerPosition resolves the current first-pane extent in cells. A flex
// first pane takes whatever the sized second pane leaves; with both panes
// flexing the split is even.
func (m *Model) dividerPosition() int {
	total := m.mainAxisTotal()
	if total <= 1 {
		return 0
	}

	first := m.sizeToCells(m.sp.Coordinator().Current(splitpane.First), total)
	second := m.sizeToCells(m.sp.Coordinator().Current(splitpane.Second), total)

	var pos int
	switch {
	case first >= 0:
		pos = first
	case second >= 0:
		pos = total - 1 - second
	default:
		pos = (total - 1) / 2
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
	return pos
}

// refreshContent re-renders the pane markdown at the current pane widths.
func (m *Model) refreshContent() {
	if m.width <= 0 || m.height <= 0 {
		return
	}

	firstW, firstH, secondW, secondH := m.paneGeometry()

	m.firstVP.Width = firstW - paneChrome
	m.firstVP.Height = firstH - paneChrome
	m.secondVP.Width = secondW - paneChrome
	m.secondVP.Height = secondH - paneChrome

	m.firstVP.SetContent(renderMarkdown(firstPaneMarkdown, m.firstVP.Width))
	m.secondVP.SetContent(renderMarkdown(secondPaneMarkdown, m.secondVP.Width))
}

// paneGeometry returns outer width and height for both panes.
func (m *Model) paneGeometry() (int, int, int, int) {
	pos := m.dividerPosition()
	if m.sp.Orientation() == splitpane.Horizontal {
		secondH := m.contentHeight() - 1 - pos
		if secondH < 0 {
			secondH = 0
		}
		return m.width, pos, m.width, secondH
	}
	secondW := m.width - 1 - pos
	if secondW < 0 {
		secondW = 0
	}
	return pos, m.contentHeight(), secondW, m.contentHeight()
}

// View implements tea.Model. Hit regions are registered here since the
// divider position is only known after layout.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width <= 0 || m.height <= 0 {
		return "loading..."
	}

	firstW, firstH, secondW, secondH := m.paneGeometry()
	pos := m.dividerPosition()

	firstStyle := paneStyle
	secondStyle := paneStyle
	if m.dragging {
		firstStyle = paneFocusedStyle
	}

	first := firstStyle.
		Width(max(firstW-paneChrome, 0)).
		Height(max(firstH-paneChrome, 0)).
		Render(m.firstVP.View())
	second := secondStyle.
		Width(max(secondW-paneChrome, 0)).
		Height(max(secondH-paneChrome, 0)).
		Render(m.secondVP.View())

	ds := dividerStyle
	if m.dragging {
		ds = dividerDragStyle
	}

	m.mouse.HitMap.Clear()

	var body string
	if m.sp.Orientation() == splitpane.Horizontal {
		divider := ds.Render(strings.Repeat("─", m.width))
		m.mouse.HitMap.AddRect(dividerRegion, 0, pos, m.width, 1, nil)
		body = lipgloss.JoinVertical(lipgloss.Left, first, divider, second)
	} else {
		divider := ds.Render(strings.TrimSuffix(strings.Repeat("│\n", m.contentHeight()), "\n"))
		m.mouse.HitMap.AddRect(dividerRegion, pos, 0, 1, m.contentHeight(), nil)
		body = lipgloss.JoinHorizontal(lipgloss.Top, first, divider, second)
	}

	return body + "\n" + m.statusLine()
}

// statusLine summarizes the component state under the panes.
func (m Model) statusLine() string {
	c := m.sp.Coordinator()
	first := c.Current(splitpane.First)
	second := c.Current(splitpane.Second)

	describe := func(s splitpane.Size, adjusted bool) string {
		if s.IsEmpty() {
			return "flex"
		}
		if adjusted {
			return s.String() + "*"
		}
		return s.String()
	}

	parts := []string{
		statusStyle.Render(m.layoutID),
		statusStyle.Render(m.sp.Orientation().String()),
		statusStyle.Render("first ") + statusValueStyle.Render(describe(first, c.DragAdjusted(splitpane.First))),
		statusStyle.Render("second ") + statusValueStyle.Render(describe(second, c.DragAdjusted(splitpane.Second))),
	}
	if m.firstN.count > 0 {
		parts = append(parts, statusStyle.Render(fmt.Sprintf("resize #%d ", m.firstN.count))+statusValueStyle.Render(m.firstN.last))
	}
	parts = append(parts, statusStyle.Render("o:flip r:reset q:quit"))

	line := strings.Join(parts, statusStyle.Render(" · "))
	return ansi.Truncate(line, m.width, "…")
}
