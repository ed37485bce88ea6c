package quiz

import (
	"errors"
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"leading prose", "Here you go:\n[1,2]", "[1,2]"},
		{"code fence", "```json\n[{}]\n```", "[{}]\n```"},
		{"bare array", "[]", "[]"},
		{"no bracket", "sorry, I can't", "sorry, I can't"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extract(tt.reply); got != tt.want {
				t.Errorf("Extract(%q) = %q, want %q", tt.reply, got, tt.want)
			}
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	reply := "Here you go:\n[{\"question\":\"Q\",\"options\":[\"A\",\"B\",\"C\",\"D\"],\"answer\":\"B\"}]"

	got, err := Parse(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Question{{Question: "Q", Options: []string{"A", "B", "C", "D"}, Answer: "B"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse() = %+v, want %+v", got, want)
	}
}

func TestParse_TrailingTextIgnored(t *testing.T) {
	reply := "```json\n[{\"question\":\"Q\",\"options\":[\"A\",\"B\",\"C\",\"D\"],\"answer\":\"A\"}]\n```\nHope this helps!"

	got, err := Parse(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Answer != "A" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"no bracket", "I cannot help with that."},
		{"empty array", "[]"},
		{"truncated", `[{"question":"Q","options":["A","B"`},
		{"array of strings", `["a","b"]`},
		{"empty reply", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.reply)
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FormatError, got %T (%v)", err, err)
			}
		})
	}
}
