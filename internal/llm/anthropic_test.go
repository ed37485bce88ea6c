package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{
		client: &client,
		model:  "claude-sonnet-4-20250514",
	}
}

func TestAnthropicProvider_HappyPath(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":   "msg_test",
			"type": "message",
			"role": "assistant",
			"content": []map[string]any{
				{"type": "text", "text": `[{"question":"Q","options":["A","B","C","D"],"answer":"A"}]`},
			},
			"model":       "claude-sonnet-4-20250514",
			"stop_reason": "end_turn",
			"usage": map[string]any{
				"input_tokens":  50,
				"output_tokens": 30,
			},
		})
	}

	p := newTestAnthropicProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:    "You create quizzes.",
		Messages:  []Message{{Role: RoleUser, Content: "Create 5 questions."}},
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 50 {
		t.Fatalf("expected 50 input tokens, got %d", resp.Usage.InputTokens)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}
	if !strings.HasPrefix(string(resp.Content), "[{") {
		t.Fatalf("expected raw reply text, got %s", resp.Content)
	}
}

func anthropicErrorHandler(status int, errType, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": errType, "message": message},
		})
	}
}

func TestAnthropicProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name:    "bad request carries body",
			handler: anthropicErrorHandler(http.StatusBadRequest, "invalid_request_error", "max_tokens: too large"),
			check: func(t *testing.T, err error) {
				var st *ErrServiceStatus
				if !errors.As(err, &st) || st.StatusCode != http.StatusBadRequest {
					t.Fatalf("expected 400 ErrServiceStatus, got %T (%v)", err, err)
				}
				if !strings.Contains(st.Body, "max_tokens: too large") {
					t.Fatalf("body = %q", st.Body)
				}
				var rl *ErrRateLimit
				if errors.As(err, &rl) {
					t.Fatal("400 must not be a rate limit")
				}
			},
		},
		{
			name:    "rate limit",
			handler: anthropicErrorHandler(http.StatusTooManyRequests, "rate_limit_error", "Rate limit exceeded"),
			check: func(t *testing.T, err error) {
				var rl *ErrRateLimit
				if !errors.As(err, &rl) {
					t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
				}
			},
		},
		{
			name:    "server error",
			handler: anthropicErrorHandler(http.StatusInternalServerError, "api_error", "Internal server error"),
			check: func(t *testing.T, err error) {
				var unavail *ErrProviderUnavailable
				if !errors.As(err, &unavail) {
					t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropicProvider(t, tt.handler)
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{UserMessage("test")},
				MaxTokens: 100,
			})
			if err == nil {
				t.Fatal("expected error")
			}
			tt.check(t, err)
		})
	}
}

func TestAnthropicParams(t *testing.T) {
	params := anthropicParams("claude-haiku-4-5", Request{
		System: "sys",
		Messages: []Message{
			UserMessage("first"),
			{Role: RoleAssistant, Content: "reply"},
		},
		Temperature: 0.3,
	})

	if params.MaxTokens != anthropicDefaultMaxTokens {
		t.Fatalf("MaxTokens = %d, want default %d", params.MaxTokens, anthropicDefaultMaxTokens)
	}
	if len(params.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(params.Messages))
	}
	if params.Messages[1].Role != anthropic.MessageParamRoleAssistant {
		t.Fatalf("second role = %q", params.Messages[1].Role)
	}
	if len(params.System) != 1 || params.System[0].Text != "sys" {
		t.Fatalf("system = %+v", params.System)
	}
}

func TestNewAnthropicProvider(t *testing.T) {
	if _, err := NewAnthropicProvider(AnthropicConfig{}); err == nil {
		t.Fatal("expected error for empty API key")
	}
	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "k", Model: "claude-haiku"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "claude-haiku-4-5" {
		t.Fatalf("ModelID = %q", p.ModelID())
	}
}
