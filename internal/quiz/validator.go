package quiz

import "fmt"

// Validator checks a single parsed question.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages and logs,
	// e.g. "structural" or "answer-format".
	Name() string

	// Validate returns nil if q passes the check.
	Validate(q *Question) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Index     int    // Zero-based position of the question in the reply
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: question %d: %s", e.Validator, e.Index+1, e.Message)
}

// Validate runs every validator over every question in order and returns
// the first failure.
func Validate(questions []Question, validators []Validator) *ValidationError {
	for i := range questions {
		for _, v := range validators {
			if verr := v.Validate(&questions[i]); verr != nil {
				verr.Index = i
				return verr
			}
		}
	}
	return nil
}
