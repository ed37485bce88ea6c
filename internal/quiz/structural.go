package quiz

import "strings"

// StructuralValidator checks that required fields are present. It does not
// judge content or length.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	if strings.TrimSpace(q.Question) == "" {
		return &ValidationError{Validator: v.Name(), Message: "question is empty"}
	}
	if len(q.Options) == 0 {
		return &ValidationError{Validator: v.Name(), Message: "options are missing"}
	}
	if q.Answer == "" {
		return &ValidationError{Validator: v.Name(), Message: "answer is empty"}
	}
	return nil
}
