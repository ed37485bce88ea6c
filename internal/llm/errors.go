package llm

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned content that does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded reports a reply that stopped at the MaxTokens limit
// and could not be used as it was.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ErrServiceStatus indicates the provider answered with a non-success HTTP
// status. Body holds the error payload of the reply. Where the vendor client
// only keeps the decoded error (go-openai JSON errors, genai), Body is that
// error re-encoded or its message.
type ErrServiceStatus struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ErrServiceStatus) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("service error: %d", e.StatusCode)
	}
	return fmt.Sprintf("service error: %d: %s", e.StatusCode, e.Body)
}

func (e *ErrServiceStatus) Unwrap() error { return e.Err }

// statusError classifies a non-success HTTP reply: 429 becomes ErrRateLimit,
// 5xx ErrProviderUnavailable, and anything else a bare ErrServiceStatus.
func statusError(code int, body string, cause error) error {
	status := &ErrServiceStatus{StatusCode: code, Body: body, Err: cause}
	switch {
	case code == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: status}
	case code >= 500:
		return &ErrProviderUnavailable{Err: status}
	}
	return status
}
