package llm

import (
	"context"
	"fmt"

	"github.com/quizforge/quizforge/internal/store"
)

// NewProvider builds the configured provider and wraps it, outermost first,
// in timeout (when set), retry and logging. Every attempt is logged.
//
// Missing credentials do not fail here. The returned provider fails each
// Generate with ErrProviderUnavailable instead, so the app still starts and
// the player sees the reason on the topic page.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if cfg.Provider == "mock" {
		return NewMockProvider(), nil
	}

	base, err := newBaseProvider(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := WithRetry(WithLogging(base, cfg.Provider, eventRepo), cfg.Retry)
	if cfg.Timeout > 0 {
		p = WithTimeout(p, cfg.Timeout)
	}
	return p, nil
}

func newBaseProvider(ctx context.Context, cfg Config) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return unconfigured{provider: cfg.Provider, err: err}, nil
	}
	var (
		p   Provider
		err error
	)
	switch cfg.Provider {
	case "openai":
		p, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		p, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "anthropic":
		p, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		p, err = NewGeminiProvider(ctx, cfg.Gemini)
	default:
		err = fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	return p, err
}

// unconfigured stands in for a provider whose settings are invalid.
type unconfigured struct {
	provider string
	err      error
}

func (u unconfigured) Generate(context.Context, Request) (*Response, error) {
	return nil, &ErrProviderUnavailable{Err: u.err}
}

func (u unconfigured) ModelID() string {
	return u.provider + " (unconfigured)"
}
