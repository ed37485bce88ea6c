// Package llm talks to chat-completion services. Providers share one request
// shape and are composed with logging, retry and timeout decorators.
package llm

import (
	"context"
	"encoding/json"
)

// Provider sends one chat-completion request and returns the reply.
type Provider interface {
	// Generate performs the request. Without a Schema the reply text is
	// returned untouched in Response.Content; with one the provider asks
	// for structured output and validates it before returning.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID names the model requests are sent to.
	ModelID() string
}

// Role is who authored a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// UserMessage is shorthand for a single user turn.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Request is a single chat-completion call.
type Request struct {
	// System is sent as the system message.
	System string

	Messages []Message

	// Schema, when set, switches the provider to structured output.
	Schema *Schema

	// MaxTokens caps the reply length. Zero leaves it to the provider.
	MaxTokens int

	// Temperature in [0, 1].
	Temperature float64
}

// Schema is a named JSON Schema for structured replies.
type Schema struct {
	// Name is kebab-case, e.g. "quiz-questions". Anthropic uses it as the
	// tool name and OpenAI as the json_schema name.
	Name string

	Description string

	Definition map[string]any
}

// Response is a provider reply.
type Response struct {
	// Content is the reply. It is raw text unless the request had a Schema,
	// in which case it is the validated JSON document.
	Content json.RawMessage

	Usage Usage

	// Model is the model that served the request, which may be a dated
	// snapshot of ModelID.
	Model string

	// StopReason is "end", "max_tokens" or "error".
	StopReason string
}

// Text returns Content as a string.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Content)
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
