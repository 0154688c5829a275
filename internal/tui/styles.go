package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("236")).
			Padding(0, 2).
			Bold(true)

	goalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("111"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	quoteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("111")).
			Width(60)

	docStyle = lipgloss.NewStyle().Margin(1, 2)
)
