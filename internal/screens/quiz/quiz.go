// Package quiz is the terminal screen that plays a quiz session.
package quiz

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/quizforge/quizforge/internal/logging"
	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/screen"
	"github.com/quizforge/quizforge/internal/session"
	"github.com/quizforge/quizforge/internal/ui/components"
	"github.com/quizforge/quizforge/internal/ui/layout"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Screen walks one player through name, topic, questions and result. Every
// state change goes through session.Apply.
type Screen struct {
	ctx    context.Context
	source quiz.Source
	state  session.State

	nameInput  components.Field
	topicInput components.Field
	choice     components.MultiChoice

	// alert is the message from the last rejected action.
	alert   string
	spinner int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)

// New creates a quiz screen that generates questions from source.
func New(ctx context.Context, source quiz.Source) *Screen {
	return &Screen{
		ctx:        ctx,
		source:     source,
		nameInput:  components.NewField("Your name", 64),
		topicInput: components.NewField("Paste a topic or paragraph", 0),
	}
}

// State returns the current session state.
func (s *Screen) State() session.State {
	return s.state
}

func (s *Screen) Init() tea.Cmd {
	return s.nameInput.Focus()
}

func (s *Screen) Title() string {
	switch s.state.Phase {
	case session.PhaseInProgress:
		return "Quiz"
	case session.PhaseFinished:
		return "Result"
	default:
		return "New Quiz"
	}
}

func (s *Screen) Status() layout.Status {
	return layout.Status{
		Player: s.state.Name,
		Score:  s.state.Score,
		Total:  s.state.Total(),
	}
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.state.Phase {
	case session.PhaseNotStarted:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case session.PhaseAwaitingInput:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Generate"},
			{Key: "Ctrl+S", Description: "Sample quiz"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case session.PhaseGenerating:
		return []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case session.PhaseInProgress:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "1-4", Description: "Pick"},
			{Key: "Enter", Description: "Answer"},
		}
	default:
		return []layout.KeyHint{
			{Key: "N", Description: "New quiz"},
			{Key: "R", Description: "Restart"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		return s.handleGenerated(msg)

	case spinnerTickMsg:
		if s.state.Phase != session.PhaseGenerating {
			return s, nil
		}
		s.spinner = (s.spinner + 1) % len(spinnerFrames)
		return s, spinnerTick()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	return s.forward(msg)
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch s.state.Phase {
	case session.PhaseNotStarted:
		if msg.String() == "enter" {
			return s, s.apply(session.SubmitName{Name: s.nameInput.Value()})
		}

	case session.PhaseAwaitingInput:
		switch msg.String() {
		case "enter":
			return s, s.apply(session.StartGeneration{Text: s.topicInput.Value()})
		case "ctrl+s":
			return s, s.apply(session.LoadSample{Questions: s.source.Sample()})
		}

	case session.PhaseGenerating:
		return s, nil

	case session.PhaseInProgress:
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Submitted {
			return s, tea.Batch(cmd, s.apply(session.SubmitAnswer{Option: s.choice.Chosen()}))
		}
		return s, cmd

	case session.PhaseFinished:
		switch msg.String() {
		case "n":
			return s, s.apply(session.NewQuiz{})
		case "r":
			return s, s.apply(session.Reset{})
		}
		return s, nil
	}

	return s.forward(msg)
}

// forward hands msg to the text input of the current phase.
func (s *Screen) forward(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.state.Phase {
	case session.PhaseNotStarted:
		s.nameInput, cmd = s.nameInput.Update(msg)
	case session.PhaseAwaitingInput:
		s.topicInput, cmd = s.topicInput.Update(msg)
	}
	return s, cmd
}

// apply runs ev through the session and returns the command the new phase
// needs. A rejected event leaves the state untouched and sets the alert.
func (s *Screen) apply(ev session.Event) tea.Cmd {
	prev := s.state
	next, err := session.Apply(s.state, ev)
	if err != nil {
		s.alert = err.Error()
		return nil
	}
	s.state = next
	s.alert = ""
	return s.enter(prev)
}

// enter prepares widgets for the phase just entered from prev.
func (s *Screen) enter(prev session.State) tea.Cmd {
	switch s.state.Phase {
	case session.PhaseNotStarted:
		s.topicInput.SetValue("")
		return s.nameInput.Reset()

	case session.PhaseAwaitingInput:
		// Keep the topic after a failed generation so it can be retried.
		if prev.Phase == session.PhaseGenerating {
			return s.topicInput.Focus()
		}
		return s.topicInput.Reset()

	case session.PhaseGenerating:
		s.spinner = 0
		return tea.Batch(s.generate(s.state.Generation, s.state.InputText), spinnerTick())

	case session.PhaseInProgress:
		s.resetChoice()
	}
	return nil
}

func (s *Screen) resetChoice() {
	q := s.state.Current()
	if q == nil {
		return
	}
	s.choice = components.NewMultiChoice(q.Question, q.Options)
}

func (s *Screen) handleGenerated(msg generatedMsg) (screen.Screen, tea.Cmd) {
	if msg.Generation != s.state.Generation {
		logging.WithContext(s.ctx).WithField("generation", msg.Generation).Debug("dropping stale generation result")
		return s, nil
	}
	if msg.Err != nil {
		logging.WithContext(s.ctx).WithError(msg.Err).Warn("quiz generation failed")
		return s, s.apply(session.GenerationFailed{Generation: msg.Generation, Err: msg.Err})
	}
	return s, s.apply(session.GenerationSucceeded{Generation: msg.Generation, Questions: msg.Questions})
}

func (s *Screen) generate(generation int, text string) tea.Cmd {
	ctx, source := s.ctx, s.source
	return func() tea.Msg {
		questions, err := source.Generate(ctx, text)
		return generatedMsg{Generation: generation, Questions: questions, Err: err}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
