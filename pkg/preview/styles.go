package preview

import "github.com/charmbracelet/lipgloss"

// Preview palette.
var (
	primaryColor = lipgloss.Color("212")
	mutedColor   = lipgloss.Color("241")
	dividerColor = lipgloss.Color("240")
	activeColor  = lipgloss.Color("45")
)

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dividerColor)

	paneFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(primaryColor)

	dividerStyle = lipgloss.NewStyle().
			Foreground(dividerColor)

	dividerDragStyle = lipgloss.NewStyle().
				Foreground(activeColor).
				Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	statusValueStyle = lipgloss.NewStyle().
				Foreground(primaryColor)
)
