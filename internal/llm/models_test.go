package llm

import "testing"

func TestResolveModel(t *testing.T) {
	tests := []struct {
		provider, name, want string
	}{
		{"openai", "mini", "gpt-4o-mini"},
		{"openai", "gpt-4.1", "gpt-4.1"},
		{"anthropic", "claude-haiku", "claude-haiku-4-5"},
		{"anthropic", "claude-sonnet-4-20250514", "claude-sonnet-4-20250514"},
		{"gemini", "gemini-flash", "gemini-2.5-flash"},
		{"gemini", "gemini-2.0-flash", "gemini-2.0-flash"},
		{"openrouter", "openai/gpt-4o-mini", "openai/gpt-4o-mini"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.provider, tt.name); got != tt.want {
			t.Errorf("resolveModel(%q, %q) = %q, want %q", tt.provider, tt.name, got, tt.want)
		}
	}
}

func TestDefaultModelsHavePricing(t *testing.T) {
	cfg := DefaultConfig()
	for provider, name := range map[string]string{
		"openai":     cfg.OpenAI.Model,
		"anthropic":  cfg.Anthropic.Model,
		"gemini":     cfg.Gemini.Model,
		"openrouter": cfg.OpenRouter.Model,
	} {
		if LookupCost(resolveModel(provider, name)) == nil {
			t.Errorf("no pricing for default %s model %q", provider, name)
		}
	}
}
