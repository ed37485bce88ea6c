package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

func TestMultiChoice_Navigation(t *testing.T) {
	m := NewMultiChoice("Q?", []string{"A", "B", "C", "D"})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}
	if m.Chosen() != "" {
		t.Fatal("nothing should be chosen before enter")
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !m.Submitted || m.Chosen() != "B" {
		t.Fatalf("expected B chosen, got %q (submitted=%v)", m.Chosen(), m.Submitted)
	}

	// Further keys are ignored once submitted.
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 1 {
		t.Fatal("selection moved after submit")
	}
}

func TestMultiChoice_NumberKeys(t *testing.T) {
	m := NewMultiChoice("Q?", []string{"A", "B", "C", "D"})

	m, _ = m.Update(tea.KeyPressMsg{Code: '9', Text: "9"})
	if m.Submitted {
		t.Fatal("out-of-range number must not submit")
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if m.Chosen() != "C" {
		t.Fatalf("expected C, got %q", m.Chosen())
	}
}

func TestMultiChoice_BoundsAndView(t *testing.T) {
	m := NewMultiChoice("Which tag links a CSS file?", []string{"<css>", "<link>", "<style>", "<script>"})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 0 {
		t.Fatalf("Selected = %d, want 0", m.Selected)
	}

	view := m.View()
	for _, want := range []string{"Which tag links a CSS file?", "A)  <css>", "D)  <script>"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestQuestionTrack(t *testing.T) {
	tests := []struct {
		name  string
		track QuestionTrack
		want  int
	}{
		{"fits width", QuestionTrack{Total: 5, Width: 29}, 5},
		{"capped", QuestionTrack{Total: 5, Width: 200}, 8},
		{"never below one", QuestionTrack{Total: 5, Width: 3}, 1},
		{"empty", QuestionTrack{Total: 0, Width: 40}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.track.segmentWidth(); got != tt.want {
				t.Fatalf("segmentWidth = %d, want %d", got, tt.want)
			}
		})
	}

	track := QuestionTrack{Results: []bool{true, false}, Total: 5, Width: 29}
	if got := lipgloss.Width(track.View()); got != 5*5+4 {
		t.Fatalf("rendered width = %d, want 29", got)
	}
	if (QuestionTrack{}).View() != "" {
		t.Fatal("empty track should render nothing")
	}
}

func TestField(t *testing.T) {
	f := NewField("Your name", 5)
	f, _ = f.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	f, _ = f.Update(tea.KeyPressMsg{Code: 'b', Text: "b"})
	if f.Value() != "ab" {
		t.Fatalf("Value = %q, want ab", f.Value())
	}

	f.SetValue("abcdefgh")
	if f.Value() != "abcde" {
		t.Fatalf("limit not applied: %q", f.Value())
	}

	f.Reset()
	if f.Value() != "" {
		t.Fatalf("Reset left %q", f.Value())
	}
	if !strings.Contains(f.View(), "our name") {
		t.Error("placeholder should show when empty")
	}
}
