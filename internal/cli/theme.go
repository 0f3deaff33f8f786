package cli

import "github.com/charmbracelet/lipgloss"

type theme struct {
	Title lipgloss.Style
	Label lipgloss.Style
	OK    lipgloss.Style
	Fail  lipgloss.Style
	Faint lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		Title: lipgloss.NewStyle().Bold(true),
		Label: lipgloss.NewStyle().Faint(true).Width(10),
		OK:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Fail:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Faint: lipgloss.NewStyle().Faint(true),
	}
}
