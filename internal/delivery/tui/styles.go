package tui

import "github.com/charmbracelet/lipgloss"

// Styles — оформление терминального интерфейса.
type Styles struct {
	Title  lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Help   lipgloss.Style
	Form   lipgloss.Style
	Label  lipgloss.Style
	Active lipgloss.Style
}

func DefaultStyles() Styles {
	accent := lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	muted := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	danger := lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#FF5F87"}

	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Status: lipgloss.NewStyle().Foreground(muted),
		Error:  lipgloss.NewStyle().Foreground(danger),
		Help:   lipgloss.NewStyle().Foreground(muted).MarginTop(1),
		Form: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2),
		Label:  lipgloss.NewStyle().Width(13),
		Active: lipgloss.NewStyle().Foreground(accent).Bold(true),
	}
}
