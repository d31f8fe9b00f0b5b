package tasklist

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by Render.
type Styles struct {
	Title       lipgloss.Style
	Selected    lipgloss.Style
	Muted       lipgloss.Style
	Description lipgloss.Style
	Due         lipgloss.Style
	Overdue     lipgloss.Style
	Confirm     lipgloss.Style
	Busy        lipgloss.Style
	Badges      map[Tone]lipgloss.Style
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	badge := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true),
		Selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7")),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89")).Italic(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("#a9b1d6")),
		Due:         lipgloss.NewStyle().Foreground(lipgloss.Color("#a9b1d6")),
		Overdue:     lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")).Bold(true),
		Confirm:     lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68")).Bold(true),
		Busy:        lipgloss.NewStyle().Foreground(lipgloss.Color("#7dcfff")),
		Badges: map[Tone]lipgloss.Style{
			ToneNeutral: badge.Foreground(lipgloss.Color("#1a1b26")).Background(lipgloss.Color("#a9b1d6")),
			ToneActive:  badge.Foreground(lipgloss.Color("#1a1b26")).Background(lipgloss.Color("#7aa2f7")),
			ToneSuccess: badge.Foreground(lipgloss.Color("#1a1b26")).Background(lipgloss.Color("#9ece6a")),
		},
	}
}
