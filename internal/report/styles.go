package report

import "github.com/charmbracelet/lipgloss"

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	CellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	InjuredStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	FailedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("242"))

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("238"))
)
