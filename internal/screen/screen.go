// Package screen defines what the router needs from a terminal screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/quizforge/quizforge/internal/ui/layout"
)

// Screen is a full-window view. The app draws the header and footer around
// whatever View returns.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string

	// Title is shown in the middle of the header. Empty hides it.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider lets a screen fill the player and score in the header.
type StatusProvider interface {
	Status() layout.Status
}
