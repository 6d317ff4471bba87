package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Header    lipgloss.Style
	Language  lipgloss.Style
	Status    lipgloss.Style
	Section   lipgloss.Style
	Progress  lipgloss.Style
	Animating lipgloss.Style
	Notice    lipgloss.Style
	Help      lipgloss.Style

	// help pager
	Title       lipgloss.Style
	HelpSection lipgloss.Style
	Key         lipgloss.Style
	Desc        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Language:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Section:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Progress:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Animating: lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Notice:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:      lipgloss.NewStyle().Faint(true),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		HelpSection: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1),
		Key:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Desc: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}
