package llm

import (
	"fmt"
	"net/http"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// openRouterTitle identifies the app on OpenRouter's usage dashboards.
	openRouterTitle   = "QuizForge"
	openRouterReferer = "https://github.com/quizforge/quizforge"
)

// OpenRouterProvider sends chat completions through OpenRouter, which
// accepts the OpenAI wire format and vendor-prefixed model IDs such as
// "openai/gpt-4o-mini".
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider for the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	client := &http.Client{Transport: attributionTransport{base: http.DefaultTransport}}
	return &OpenRouterProvider{
		OpenAIProvider: newChatCompletionsProvider(cfg.APIKey, baseURL, cfg.Model, client),
	}, nil
}

// attributionTransport adds the app attribution headers OpenRouter reads.
type attributionTransport struct {
	base http.RoundTripper
}

func (t attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("HTTP-Referer", openRouterReferer)
	req.Header.Set("X-Title", openRouterTitle)
	return t.base.RoundTrip(req)
}
