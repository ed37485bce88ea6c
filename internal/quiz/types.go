package quiz

import "context"

// DefaultCount is the number of questions requested per generation.
const DefaultCount = 5

// Question is one multiple-choice question. Options holds exactly four
// choices and Answer is the text of the correct one.
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// IsCorrect reports whether option is the correct answer. The comparison
// is exact: no trimming or case folding.
func (q Question) IsCorrect(option string) bool {
	return option == q.Answer
}

// Source produces question sequences for a quiz.
type Source interface {
	// Generate builds questions from free-form text. The text must be
	// non-empty after trimming, otherwise ErrEmptyTopic is returned and
	// no request is made.
	Generate(ctx context.Context, text string) ([]Question, error)

	// Sample returns the built-in quiz without any network access.
	Sample() []Question
}
