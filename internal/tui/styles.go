package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Header    lipgloss.Style
	User      lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Modal     lipgloss.Style
	Label     lipgloss.Style
	FieldErr  lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Header:    lipgloss.NewStyle().Bold(true).MarginBottom(1),
		User:      lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7")),
		Tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#565f89")),
		ActiveTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(lipgloss.Color("#c0caf5")),
		Modal:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#7aa2f7")).Padding(0, 1),
		Label:     lipgloss.NewStyle().Bold(true),
		FieldErr:  lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89")),
	}
}
