// Package router owns the active terminal screen and switches between them.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/quizforge/quizforge/internal/screen"
)

// ReplaceScreenMsg asks the router to make Screen the active screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router forwards messages to one active screen. The program only ever moves
// forward (splash, then quiz), so there is no back stack.
type Router struct {
	active screen.Screen
	size   *tea.WindowSizeMsg
}

// New creates a Router showing initial.
func New(initial screen.Screen) *Router {
	return &Router{active: initial}
}

// Replace installs s and runs its Init. A screen installed after the first
// resize still receives the current window size.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.active = s
	if s == nil {
		return nil
	}
	cmd := s.Init()
	if r.size != nil {
		size := *r.size
		cmd = tea.Batch(cmd, func() tea.Msg { return size })
	}
	return cmd
}

// Active returns the current screen, or nil before one is set.
func (r *Router) Active() screen.Screen {
	return r.active
}

// Update handles ReplaceScreenMsg and forwards everything else.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case tea.WindowSizeMsg:
		r.size = &msg
	}

	if r.active == nil {
		return nil
	}
	var cmd tea.Cmd
	r.active, cmd = r.active.Update(msg)
	return cmd
}

// View renders the active screen into the given content area.
func (r *Router) View(width, height int) string {
	if r.active == nil {
		return ""
	}
	return r.active.View(width, height)
}
