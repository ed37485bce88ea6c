package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quizforge/quizforge/internal/router"
	"github.com/quizforge/quizforge/internal/screen"
	"github.com/quizforge/quizforge/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	cardsEnd     = 600 * time.Millisecond
	totalDur     = 1500 * time.Millisecond
)

const Tagline = "Turn any text into a quiz"

// Four answer cards, revealed one per phase step.
var cards = []string{"A", "B", "C", "D"}

type tickMsg time.Time

// WelcomeScreen shows a short splash before handing over to the quiz.
// Any key skips the animation.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with next() on a keypress.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// revealed returns how many answer cards are visible.
func (w *WelcomeScreen) revealed() int {
	step := cardsEnd / time.Duration(len(cards))
	n := int(w.elapsed / step)
	return min(n, len(cards))
}

func (w *WelcomeScreen) View(width, height int) string {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Foreground(theme.Accent).
		Bold(true).
		Padding(0, 2)

	shown := make([]string, 0, len(cards))
	for i := 0; i < w.revealed(); i++ {
		shown = append(shown, card.Render(cards[i]))
	}

	sections := []string{lipgloss.JoinHorizontal(lipgloss.Top, shown...)}

	if w.elapsed >= totalDur {
		sections = append(sections,
			"",
			renderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(Tagline),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
