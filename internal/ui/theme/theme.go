// Package theme holds the colors and text styles of the terminal quiz.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#2563EB")
	Secondary = lipgloss.Color("#14B8A6")
	Accent    = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#16A34A")
	Error     = lipgloss.Color("#DC2626")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

func fg(c color.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

var (
	Title = fg(Primary).Bold(true)
	Body  = fg(Text)
	Hint  = fg(TextDim).Italic(true)
	Alert = fg(Error).Bold(true)

	// Option rows in a question.
	Selected   = fg(Primary).Bold(true)
	Unselected = fg(Text)

	// Answer review.
	Correct   = fg(Success).Bold(true)
	Incorrect = fg(Error).Bold(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// Mark renders a check or a cross.
func Mark(correct bool) string {
	if correct {
		return Correct.Render("✓")
	}
	return Incorrect.Render("✗")
}
