package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains pre-configured lipgloss styles for the chat view.
type Styles struct {
	// Title style for the header line.
	Title lipgloss.Style

	// Question style for user questions in the transcript.
	Question lipgloss.Style

	// Answer style for answers in the transcript.
	Answer lipgloss.Style

	// Muted style for hints and the status line.
	Muted lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Border wraps the input line.
	Border lipgloss.Style
}

// DefaultStyles returns the default chat styles.
func DefaultStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7C3AED")).
			Bold(true),
		Question: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#06B6D4")).
			Bold(true),
		Answer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CDD6F4")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F38BA8")).
			Bold(true),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1),
	}
}
