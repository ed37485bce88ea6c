package session

import "github.com/quizforge/quizforge/internal/quiz"

// Event is an input to Apply.
type Event interface {
	event()
}

// SubmitName starts a session for the named player.
type SubmitName struct{ Name string }

// StartGeneration marks a generation request for Text as outstanding.
type StartGeneration struct{ Text string }

// GenerationSucceeded delivers the questions of a finished generation.
// Generation is the State.Generation the request was started under.
type GenerationSucceeded struct {
	Generation int
	Questions  []quiz.Question
}

// GenerationFailed reports a failed generation.
type GenerationFailed struct {
	Generation int
	Err        error
}

// LoadSample starts a quiz from the built-in questions.
type LoadSample struct{ Questions []quiz.Question }

// SubmitAnswer answers the current question with Option.
type SubmitAnswer struct{ Option string }

// NewQuiz discards the current quiz and returns to topic entry.
type NewQuiz struct{}

// Reset clears everything, including the name.
type Reset struct{}

func (SubmitName) event()          {}
func (StartGeneration) event()     {}
func (GenerationSucceeded) event() {}
func (GenerationFailed) event()    {}
func (LoadSample) event()          {}
func (SubmitAnswer) event()        {}
func (NewQuiz) event()             {}
func (Reset) event()               {}
