package timer

import "github.com/charmbracelet/lipgloss"

const (
	padding  = 2
	maxWidth = 60
)

type styles struct {
	base    lipgloss.Style
	title   lipgloss.Style
	clock   lipgloss.Style
	hint    lipgloss.Style
	good    lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
}

func newStyles(dark bool) styles {
	accent := lipgloss.Color("#5A56E0")
	muted := lipgloss.Color("#6C6C6C")

	if dark {
		accent = lipgloss.Color("#A7A4FF")
		muted = lipgloss.Color("#9E9E9E")
	}

	return styles{
		base:    lipgloss.NewStyle().Padding(1, padding),
		title:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		clock:   lipgloss.NewStyle().Bold(true).Foreground(accent).MarginTop(1).MarginBottom(1),
		hint:    lipgloss.NewStyle().Foreground(muted),
		good:    lipgloss.NewStyle().Foreground(lipgloss.Color("#43BF6D")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B")),
		err:     lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75")),
	}
}
