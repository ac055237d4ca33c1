package tui

import "github.com/charmbracelet/lipgloss"

// Static styles shared by the progress view, the ask prompt and command output
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	HandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	WinStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	TieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7"))

	LossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	GainStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	LabelStyle = lipgloss.NewStyle().
			Width(12)
)
