package quiz

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// OptionCount is the number of options every question carries.
const OptionCount = 4

// AnswerFormatValidator checks the multiple choice constraints: four
// non-empty distinct options, one of which is exactly the answer.
type AnswerFormatValidator struct{}

func (v *AnswerFormatValidator) Name() string { return "answer-format" }

func (v *AnswerFormatValidator) Validate(q *Question) *ValidationError {
	if len(q.Options) != OptionCount {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("must have exactly %d options, got %d", OptionCount, len(q.Options)),
		}
	}

	for i, o := range q.Options {
		if strings.TrimSpace(o) == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("option %d is empty", i+1),
			}
		}
	}
	if dups := lo.FindDuplicates(q.Options); len(dups) > 0 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("duplicate option %q", dups[0]),
		}
	}

	// Scoring compares exactly, so membership does too.
	if !lo.Contains(q.Options, q.Answer) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("answer %q not found in options", q.Answer),
		}
	}
	return nil
}
