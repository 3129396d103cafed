package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Palette shared with the table export.
	accentColor  = lipgloss.Color("#7aa2f7") // blue
	dimColor     = lipgloss.Color("#565f89") // dim gray
	textColor    = lipgloss.Color("#c0caf5") // light text
	bgColor      = lipgloss.Color("#1a1b26") // dark background
	borderColor  = lipgloss.Color("#3b4261")
	successColor = lipgloss.Color("#9ece6a") // green
	warningColor = lipgloss.Color("#e0af68") // amber
	errorColor   = lipgloss.Color("#f7768e") // red

	titleStyle = lipgloss.NewStyle().
			Foreground(bgColor).
			Background(accentColor).
			Bold(true).
			Padding(0, 1)

	dirStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			Padding(0, 1)

	// Status bar
	statusBarStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Padding(0, 1)

	statusKeyStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	statusDescStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	// Detail pane key-value
	infoKeyStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	infoValueStyle = lipgloss.NewStyle().
			Foreground(textColor)

	detailBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	// Summary counters
	successStyle = lipgloss.NewStyle().Foreground(successColor)
	warningStyle = lipgloss.NewStyle().Foreground(warningColor)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor)
)

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Foreground(accentColor).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(bgColor).
		Background(accentColor).
		Bold(false)
	return s
}
