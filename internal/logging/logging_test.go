package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

func TestSetup(t *testing.T) {
	t.Cleanup(func() { _ = Setup("info", "text") })

	tests := []struct {
		level, format string
		wantErr       bool
	}{
		{"debug", "json", false},
		{"warn", "text", false},
		{"info", "", false},
		{"loud", "text", true},
		{"info", "xml", true},
	}
	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			err := Setup(tt.level, tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Setup(%q, %q) err = %v, wantErr %v", tt.level, tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestWithContextFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	if err := Setup("info", "json"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		SetOutput(logrus.StandardLogger().Out)
		_ = Setup("info", "text")
	})

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	ctx = WithSessionID(ctx, "sess-1")
	WithContext(ctx).Info("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if line["request_id"] != "req-1" {
		t.Errorf("request_id = %v, want req-1", line["request_id"])
	}
	if line["session_id"] != "sess-1" {
		t.Errorf("session_id = %v, want sess-1", line["session_id"])
	}
	if line["msg"] != "hello" {
		t.Errorf("msg = %v, want hello", line["msg"])
	}
}
