package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("39")  // blue
	colorAccent  = lipgloss.Color("170") // purple
	colorSuccess = lipgloss.Color("42")  // green
	colorMuted   = lipgloss.Color("241") // gray
	colorDanger  = lipgloss.Color("196") // red

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	selectedFieldStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent)

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1).
			MarginRight(2)

	betterPanelStyle = panelStyle.
				BorderForeground(colorSuccess)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	verdictStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess)

	errStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorDanger)
)
