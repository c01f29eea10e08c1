package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")
	dimFg     = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	edgeFg    = lipgloss.Color("#333333")
	markFg    = lipgloss.Color("#111111")
	errorFg   = lipgloss.Color("#DC2626")

	titleStyle  = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(dimFg)
	errorStyle  = lipgloss.NewStyle().Foreground(errorFg).Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
)
