package ui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("#00FFFF")
	magenta = lipgloss.Color("#FF00FF")
	yellow  = lipgloss.Color("#FFFF00")
	green   = lipgloss.Color("#39FF14")
	red     = lipgloss.Color("#FF0000")
	dim     = lipgloss.Color("#B0B0B0")

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(magenta).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(accent).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(yellow)

	dimStyle = lipgloss.NewStyle().
			Foreground(dim).
			Faint(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(green).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(red).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(yellow)
)
