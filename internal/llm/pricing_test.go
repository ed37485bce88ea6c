package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		want  float64
		found bool
	}{
		{"gpt-4o-mini", 0.15, true},
		{"openai/gpt-4o-mini", 0.15, true},
		{"gpt-4o-mini-2024-07-18", 0.15, true},
		{"gemini-2.0-flash", 0.1, true},
		{"mock", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			c := LookupCost(tt.model)
			if (c != nil) != tt.found {
				t.Fatalf("LookupCost(%q) found = %v, want %v", tt.model, c != nil, tt.found)
			}
			if c != nil && c.InputPerMTok != tt.want {
				t.Fatalf("input price = %v, want %v", c.InputPerMTok, tt.want)
			}
		})
	}
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 0.15, OutputPerMTok: 0.6}
	got := c.Cost(1_000_000, 500_000)
	if math.Abs(got-0.45) > 1e-9 {
		t.Fatalf("cost = %v, want 0.45", got)
	}
}
