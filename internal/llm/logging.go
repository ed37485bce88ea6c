package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/quizforge/quizforge/internal/logging"
	"github.com/quizforge/quizforge/internal/store"
)

// LoggingProvider writes a log line and an audit event for every request.
type LoggingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
}

// WithLogging wraps p. provider is the configured name ("openai", ...).
// A nil repo only logs.
func WithLogging(p Provider, provider string, repo store.EventRepo) Provider {
	if repo == nil {
		repo = store.NopEventRepo{}
	}
	return &LoggingProvider{inner: p, provider: provider, events: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	ev := l.record(ctx, req, resp, err, time.Since(start))

	entry := logging.WithContext(ctx).WithFields(logrus.Fields{
		"provider":   ev.Provider,
		"model":      ev.Model,
		"purpose":    ev.Purpose,
		"latency_ms": ev.LatencyMs,
		"tokens_in":  ev.InputTokens,
		"tokens_out": ev.OutputTokens,
	})
	if err != nil {
		entry.WithError(err).Warn("llm request failed")
	} else {
		entry.Info("llm request")
	}

	// An audit failure never fails the request.
	if aerr := l.events.AppendLLMRequest(ctx, ev); aerr != nil {
		entry.WithError(aerr).Warn("failed to record llm request event")
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *LoggingProvider) record(ctx context.Context, req Request, resp *Response, err error, took time.Duration) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   took.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}
	if resp != nil {
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
		if resp.Model != "" {
			ev.Model = resp.Model
		}
	}
	return ev
}

// transcript renders req as "[role]" sections for `quizforge llm view`.
func transcript(req Request) string {
	var b strings.Builder
	section := func(label, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", label, body)
	}

	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		section(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
