package llm

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config selects and configures the quiz generation backend.
type Config struct {
	// Provider is one of "openai", "anthropic", "gemini", "openrouter"
	// or "mock".
	Provider string

	OpenAI     OpenAIConfig
	Anthropic  AnthropicConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one generation including retries. Zero waits for as
	// long as the service takes.
	Timeout time.Duration
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // compatible APIs and tests
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string // vendor-prefixed, e.g. "openai/gpt-4o-mini"
	BaseURL string
}

// RetryConfig controls WithRetry. MaxAttempts of 1 means no retries.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig is OpenAI gpt-4o-mini with one attempt and no timeout.
func DefaultConfig() Config {
	return Config{
		Provider:   "openai",
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "openai/gpt-4o-mini"},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
	}
}

// credentials points into a Config at one provider's key and model.
type credentials struct {
	provider string
	key      *string
	model    *string
}

// vendorKeyVar is the variable the vendor's own tooling reads.
func (c credentials) vendorKeyVar() string {
	return strings.ToUpper(c.provider) + "_API_KEY"
}

func (c credentials) envVar(suffix string) string {
	return "QUIZFORGE_" + strings.ToUpper(c.provider) + "_" + suffix
}

// credentials lists the keyed providers in discovery order.
func (c *Config) credentials() []credentials {
	return []credentials{
		{"openai", &c.OpenAI.APIKey, &c.OpenAI.Model},
		{"gemini", &c.Gemini.APIKey, &c.Gemini.Model},
		{"anthropic", &c.Anthropic.APIKey, &c.Anthropic.Model},
		{"openrouter", &c.OpenRouter.APIKey, &c.OpenRouter.Model},
	}
}

// ConfigFromEnv starts from DiscoverConfig (or the defaults) and applies
// the QUIZFORGE_* overrides.
func ConfigFromEnv() Config {
	cfg, ok := DiscoverConfig()
	if !ok {
		cfg = DefaultConfig()
	}

	if p := os.Getenv("QUIZFORGE_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	for _, cred := range cfg.credentials() {
		setFromEnv(cred.key, cred.envVar("API_KEY"))
		setFromEnv(cred.model, cred.envVar("MODEL"))
	}
	setFromEnv(&cfg.OpenAI.BaseURL, "QUIZFORGE_OPENAI_BASE_URL")
	setFromEnv(&cfg.OpenRouter.BaseURL, "QUIZFORGE_OPENROUTER_BASE_URL")

	if n, err := strconv.Atoi(os.Getenv("QUIZFORGE_LLM_MAX_ATTEMPTS")); err == nil && n > 0 {
		cfg.Retry.MaxAttempts = n
	}
	if d, err := time.ParseDuration(os.Getenv("QUIZFORGE_LLM_TIMEOUT")); err == nil {
		cfg.Timeout = d
	}
	return cfg
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

// DiscoverConfig picks the first provider whose vendor key variable is set,
// checking OPENAI, GEMINI, ANTHROPIC and OPENROUTER in that order.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, cred := range cfg.credentials() {
		if k := os.Getenv(cred.vendorKeyVar()); k != "" {
			cfg.Provider = cred.provider
			*cred.key = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider exists and has a key.
func (c Config) Validate() error {
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	if c.Provider == "mock" {
		return nil
	}
	for _, cred := range c.credentials() {
		if cred.provider != c.Provider {
			continue
		}
		if *cred.key == "" {
			return fmt.Errorf("%s or %s is required for the %s provider",
				cred.envVar("API_KEY"), cred.vendorKeyVar(), c.Provider)
		}
		return nil
	}
	return fmt.Errorf("unknown LLM provider: %q", c.Provider)
}
