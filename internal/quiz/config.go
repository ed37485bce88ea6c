package quiz

// Config controls the behavior of the LLMSource.
type Config struct {
	// Count is the number of questions a quiz must have. Longer replies
	// are truncated, shorter ones rejected.
	Count int

	// Validators run in order on every parsed question; the first
	// failure rejects the whole reply.
	Validators []Validator

	// MaxTokens is the token budget for the model reply.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the standard validator chain and request limits.
func DefaultConfig() Config {
	return Config{
		Count: DefaultCount,
		Validators: []Validator{
			&StructuralValidator{},
			&AnswerFormatValidator{},
		},
		MaxTokens:   700,
		Temperature: 0.3,
	}
}
