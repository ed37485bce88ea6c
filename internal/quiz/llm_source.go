package quiz

import (
	"context"
	"fmt"
	"strings"

	"github.com/quizforge/quizforge/internal/llm"
	"github.com/quizforge/quizforge/internal/logging"
)

// Purpose labels quiz generation requests in the audit log.
const Purpose = "quiz-gen"

// LLMSource implements Source using an LLM provider.
type LLMSource struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMSource with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMSource {
	if cfg.Count <= 0 {
		cfg.Count = DefaultCount
	}
	return &LLMSource{provider: provider, config: cfg}
}

// Generate asks the model for Count questions about text and returns them
// once the reply passes schema and validator checks.
func (s *LLMSource) Generate(ctx context.Context, text string) ([]Question, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyTopic
	}

	ctx = llm.WithPurpose(ctx, Purpose)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(text, s.config.Count)},
		},
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("llm request: %w", err)
	}

	raw, questions, err := parse(resp.Text())
	if err != nil {
		logging.WithContext(ctx).WithError(err).Warn("unusable quiz reply")
		if resp.StopReason == "max_tokens" {
			return nil, &FormatError{
				Reason: "reply was cut off, raise the token limit",
				Err:    &llm.ErrMaxTokensExceeded{Content: resp.Content},
			}
		}
		return nil, err
	}

	if err := llm.ValidateJSON(QuestionsSchema, raw); err != nil {
		return nil, &FormatError{Reason: "reply does not match the question schema", Err: err}
	}
	if verr := Validate(questions, s.config.Validators); verr != nil {
		return nil, &FormatError{Reason: "reply contains an invalid question", Err: verr}
	}

	if len(questions) < s.config.Count {
		return nil, &FormatError{
			Reason: fmt.Sprintf("expected %d questions, got %d", s.config.Count, len(questions)),
		}
	}
	return questions[:s.config.Count], nil
}

// Sample returns the built-in quiz.
func (s *LLMSource) Sample() []Question {
	return Sample()
}
