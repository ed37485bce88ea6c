package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/samber/lo"

	"github.com/quizforge/quizforge/internal/session"
	"github.com/quizforge/quizforge/internal/ui/components"
	"github.com/quizforge/quizforge/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	var body string
	switch s.state.Phase {
	case session.PhaseNotStarted:
		body = s.renderName()
	case session.PhaseAwaitingInput:
		body = s.renderTopic()
	case session.PhaseGenerating:
		body = s.renderGenerating()
	case session.PhaseInProgress:
		body = s.renderQuestion(width)
	default:
		body = s.renderResult(width)
	}

	if s.alert != "" {
		body = theme.Alert.Render(s.alert) + "\n\n" + body
	}

	card := theme.Card.Width(min(width-4, 76)).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *Screen) renderName() string {
	return theme.Title.Render("Welcome!") + "\n\n" +
		theme.Body.Render("What should we call you?") + "\n\n" +
		s.nameInput.View()
}

func (s *Screen) renderTopic() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Hello " + s.state.Name))
	b.WriteString("\n\n")
	if s.state.LastError != "" {
		b.WriteString(theme.Alert.Render("Generation failed: " + s.state.LastError))
		b.WriteString("\n\n")
	}
	b.WriteString(theme.Body.Render("Paste a topic or a paragraph to turn into a quiz."))
	b.WriteString("\n\n")
	b.WriteString(s.topicInput.View())
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("No API key? Press Ctrl+S for the sample quiz."))
	return b.String()
}

func (s *Screen) renderGenerating() string {
	spin := lipgloss.NewStyle().Foreground(theme.Accent).Render(spinnerFrames[s.spinner])
	return spin + " " + theme.Body.Render("Generating questions...") + "\n\n" +
		theme.Hint.Render(truncate(s.state.InputText, 60))
}

func (s *Screen) renderQuestion(width int) string {
	total := s.state.Total()
	n := s.state.CurrentIndex + 1

	info := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("Question %d of %d", n, total))
	score := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Score: %d", s.state.Score))

	track := components.QuestionTrack{
		Results: lo.Map(s.state.Answers, func(a session.Answer, _ int) bool { return a.Correct }),
		Total:   total,
		Width:   min(width-12, 60),
	}

	return info + "   " + score + "\n" +
		track.View() + "\n\n" +
		s.choice.View()
}

func (s *Screen) renderResult(width int) string {
	sum := session.BuildSummary(s.state)

	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("%s, your score: %d / %d (%.0f%%)",
		sum.Name, sum.Score, sum.Total, sum.Accuracy*100)))
	b.WriteString("\n\n")

	for i, item := range sum.Review {
		fmt.Fprintf(&b, "%s %d. %s\n", theme.Mark(item.Correct), i+1, truncate(item.Question, min(width-16, 64)))
		if !item.Correct {
			b.WriteString(theme.Hint.Render(fmt.Sprintf("     you: %s  answer: %s", item.Chosen, item.Answer)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("n: new quiz   r: restart"))
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if n <= 1 || len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
