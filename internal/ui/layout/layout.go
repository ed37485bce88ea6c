// Package layout draws the frame shared by every terminal screen: a header
// bar, the screen body, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/quizforge/quizforge/internal/ui/theme"
)

// Below this size the frame is replaced by a resize notice.
const (
	MinWidth  = 60
	MinHeight = 20
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Status is the right-hand side of the header. An empty Player hides it and
// a zero Total hides the score.
type Status struct {
	Player string
	Score  int
	Total  int
}

var (
	barStyle = lipgloss.NewStyle().
			Background(theme.BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border)

	brandStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	titleStyle = lipgloss.NewStyle().Foreground(theme.Text)
	dimStyle   = lipgloss.NewStyle().Foreground(theme.TextDim)
	scoreStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	keyStyle   = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
)

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage fills the window with a resize notice.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, titleStyle.Render(msg))
}

// RenderHeader puts the brand on the left, title in the middle and the
// player status on the right.
func RenderHeader(title string, status Status, width int) string {
	left := brandStyle.Render("  QuizForge")
	center := titleStyle.Render(title)

	var right string
	if status.Player != "" {
		right = dimStyle.Render(status.Player)
		if status.Total > 0 {
			right += scoreStyle.Render(fmt.Sprintf("   ★ %d/%d", status.Score, status.Total))
		}
	}

	inner := max(width-4, 0)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	gapL := max((inner-cw)/2-lw, 1)
	gapR := max(inner-lw-gapL-cw-rw, 1)

	line := left + strings.Repeat(" ", gapL) + center + strings.Repeat(" ", gapR) + right
	return barStyle.Width(width).Render(line)
}

// RenderFooter lists the key hints.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keyStyle.Render(h.Key) + " " + dimStyle.Render(h.Description)
	}
	return barStyle.Width(width).Render("  " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, content and footer, sizing the content to
// whatever height remains.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rest).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
