package quiz

import (
	"time"

	"github.com/quizforge/quizforge/internal/quiz"
)

// generatedMsg carries the outcome of a generation request.
type generatedMsg struct {
	Generation int
	Questions  []quiz.Question
	Err        error
}

// spinnerTickMsg animates the spinner while a quiz is generated.
type spinnerTickMsg time.Time
