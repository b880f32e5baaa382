package ui

import "github.com/charmbracelet/lipgloss"

var (
	unfocusedBorderColor = lipgloss.Color("240")
	focusedBorderColor   = lipgloss.Color("39")

	unfocusedPanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(unfocusedBorderColor)

	focusedPanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(focusedBorderColor)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	playingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))
)

// panelStyle returns the border style for a panel based on focus.
func panelStyle(focused bool) lipgloss.Style {
	if focused {
		return focusedPanelStyle
	}
	return unfocusedPanelStyle
}
