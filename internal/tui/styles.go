package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ethanbaker/til/pkg/facts"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#fafaf9")).
			Background(lipgloss.Color("#3b82f6")).
			Padding(0, 1)

	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#a8a29e"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#78716c"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fafaf9"))
	disputedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444"))
	counterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#fef3c7"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b"))

	noticeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#fafaf9")).
			Background(lipgloss.Color("#b91c1c")).
			Padding(0, 1)

	formStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#57534e")).
			Padding(0, 1)

	allFilterStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#fafaf9")).
			Background(lipgloss.Color("#ec4899")).
			Padding(0, 1)
)

// categoryStyle renders a category tag in its registry color
func categoryStyle(c facts.Category) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafaf9")).
		Background(lipgloss.Color(c.Hex)).
		Padding(0, 1)
}
