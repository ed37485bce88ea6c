package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	client := openai.NewClientWithConfig(config)

	return &OpenAIProvider{
		client: client,
		model:  "gpt-4o-mini",
	}
}

func chatCompletion(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     40,
			"completion_tokens": 25,
			"total_tokens":      65,
		},
	}
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	reply := "Here you go:\n[{\"question\":\"Q\",\"options\":[\"A\",\"B\",\"C\",\"D\"],\"answer\":\"B\"}]"

	var got map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(reply))
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:      "You create quizzes.",
		Messages:    []Message{{Role: RoleUser, Content: "Create 5 questions."}},
		MaxTokens:   700,
		Temperature: 0.3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != reply {
		t.Fatalf("content = %q, want raw reply text", resp.Content)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 {
		t.Fatalf("unexpected usage: %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}

	if got["model"] != "gpt-4o-mini" {
		t.Errorf("model = %v", got["model"])
	}
	if got["max_tokens"] != float64(700) {
		t.Errorf("max_tokens = %v, want 700", got["max_tokens"])
	}
	if temp, _ := got["temperature"].(float64); temp < 0.29 || temp > 0.31 {
		t.Errorf("temperature = %v, want 0.3", got["temperature"])
	}
	msgs, _ := got["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected system + user messages, got %d", len(msgs))
	}
	if role := msgs[0].(map[string]any)["role"]; role != "system" {
		t.Errorf("first role = %v, want system", role)
	}
	if _, ok := got["response_format"]; ok {
		t.Error("no response_format expected without a schema")
	}
}

func TestOpenAIProvider_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantBody   string
		check      func(error) bool
	}{
		{
			name:       "unauthorized",
			status:     http.StatusUnauthorized,
			body:       `{"error":{"type":"invalid_request_error","message":"Incorrect API key provided","code":"invalid_api_key"}}`,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `"message":"Incorrect API key provided"`,
			check:      func(err error) bool { var rl *ErrRateLimit; return !errors.As(err, &rl) },
		},
		{
			name:       "rate limited",
			status:     http.StatusTooManyRequests,
			body:       `{"error":{"type":"tokens","message":"Rate limit exceeded","code":"rate_limit_exceeded"}}`,
			wantStatus: http.StatusTooManyRequests,
			wantBody:   "Rate limit exceeded",
			check:      func(err error) bool { var rl *ErrRateLimit; return errors.As(err, &rl) },
		},
		{
			name:       "server error",
			status:     http.StatusInternalServerError,
			body:       `{"error":{"type":"server_error","message":"Internal server error"}}`,
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Internal server error",
			check:      func(err error) bool { var u *ErrProviderUnavailable; return errors.As(err, &u) },
		},
		{
			name:       "plain text body",
			status:     http.StatusBadGateway,
			body:       "upstream exploded",
			wantStatus: http.StatusBadGateway,
			wantBody:   "upstream exploded",
			check:      func(err error) bool { var u *ErrProviderUnavailable; return errors.As(err, &u) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "test"}},
				MaxTokens: 100,
			})
			if err == nil {
				t.Fatal("expected error")
			}
			var st *ErrServiceStatus
			if !errors.As(err, &st) {
				t.Fatalf("expected ErrServiceStatus, got: %T (%v)", err, err)
			}
			if st.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", st.StatusCode, tt.wantStatus)
			}
			if !strings.Contains(st.Body, tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", st.Body, tt.wantBody)
			}
			if !strings.Contains(err.Error(), tt.wantBody) {
				t.Errorf("error message %q does not carry the body", err.Error())
			}
			if !tt.check(err) {
				t.Errorf("unexpected error classification: %T", err)
			}
		})
	}
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		resp := chatCompletion("")
		resp["choices"] = []map[string]any{}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})
	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestOpenAIProvider_ModelID(t *testing.T) {
	p := &OpenAIProvider{model: "gpt-4o-mini"}
	if p.ModelID() != "gpt-4o-mini" {
		t.Fatalf("expected 'gpt-4o-mini', got %q", p.ModelID())
	}
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o-mini"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o", BaseURL: "https://example.test/v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o" {
		t.Fatalf("expected 'gpt-4o', got %q", p.ModelID())
	}
}

func TestOpenAIRequest_Schema(t *testing.T) {
	req, err := openaiRequest("gpt-4o-mini", Request{
		Messages: []Message{UserMessage("q"), {Role: RoleAssistant, Content: "a"}},
		Schema:   &Schema{Name: "questions", Definition: map[string]any{"type": "array"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(req.Messages) != 2 || req.Messages[1].Role != openai.ChatMessageRoleAssistant {
		t.Fatalf("messages = %+v", req.Messages)
	}
	rf := req.ResponseFormat
	if rf == nil || rf.JSONSchema == nil || rf.JSONSchema.Name != "questions" || !rf.JSONSchema.Strict {
		t.Fatalf("response format = %+v", rf)
	}

	_, err = openaiRequest("gpt-4o-mini", Request{
		Schema: &Schema{Name: "bad", Definition: map[string]any{"x": make(chan int)}},
	})
	if err == nil {
		t.Fatal("unmarshalable schema should fail")
	}
}

func TestOpenAIErrorBody_KeepsPayloadFields(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":{"type":"invalid_request_error","message":"bad schema","param":"response_format","code":"invalid_value"}}`)
	})
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		MaxTokens: 100,
	})

	var st *ErrServiceStatus
	if !errors.As(err, &st) {
		t.Fatalf("expected ErrServiceStatus, got: %T (%v)", err, err)
	}
	var payload struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
			Param   string `json:"param"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(st.Body), &payload); err != nil {
		t.Fatalf("body %q is not JSON: %v", st.Body, err)
	}
	if payload.Error.Type != "invalid_request_error" || payload.Error.Message != "bad schema" ||
		payload.Error.Param != "response_format" || payload.Error.Code != "invalid_value" {
		t.Errorf("payload = %+v", payload.Error)
	}
}
