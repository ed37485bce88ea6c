package session

import "github.com/quizforge/quizforge/internal/quiz"

// Phase is the stage of a quiz session.
type Phase int

const (
	PhaseNotStarted    Phase = iota // No name entered yet
	PhaseAwaitingInput              // Waiting for a topic or the sample
	PhaseGenerating                 // A generation request is outstanding
	PhaseInProgress                 // Answering questions
	PhaseFinished                   // Every question answered
)

var phaseNames = [...]string{"not-started", "awaiting-input", "generating", "in-progress", "finished"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// State is one player's quiz session. It is a value: Apply never modifies
// its input, and Questions is never written after it is set.
type State struct {
	Phase Phase

	// Name is the player's name, kept across new quizzes.
	Name string

	// InputText is the topic or paragraph the quiz was generated from.
	InputText string

	Questions    []quiz.Question
	CurrentIndex int
	Score        int
	Finished     bool

	// Answers logs every submitted answer in order.
	Answers []Answer

	// Generation numbers generation requests. It survives Reset so a
	// result from before a reset can never match a later request.
	Generation int

	// LastError is the message of the last failed generation, shown on the
	// input page until the next successful transition.
	LastError string
}

// Answer records one submitted answer.
type Answer struct {
	Index   int
	Chosen  string
	Correct bool
}

// Current returns the question being asked, or nil outside a quiz.
func (s State) Current() *quiz.Question {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentIndex]
}

// Total returns the number of questions in the quiz.
func (s State) Total() int {
	return len(s.Questions)
}
