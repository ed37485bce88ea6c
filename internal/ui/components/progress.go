package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/quizforge/quizforge/internal/ui/theme"
)

// QuestionTrack draws one segment per question: green or red for answered
// ones, highlighted for the current one, dim for the rest.
type QuestionTrack struct {
	Results []bool // correctness of each answered question, in order
	Total   int
	Width   int
}

// segmentWidth fits Total segments with a one-cell gap into Width.
func (q QuestionTrack) segmentWidth() int {
	if q.Total <= 0 {
		return 0
	}
	w := (q.Width - (q.Total - 1)) / q.Total
	return max(1, min(w, 8))
}

// View renders the track.
func (q QuestionTrack) View() string {
	w := q.segmentWidth()
	if w == 0 {
		return ""
	}
	block := strings.Repeat(" ", w)

	segments := make([]string, q.Total)
	for i := range q.Total {
		var bg = theme.Border
		switch {
		case i < len(q.Results) && q.Results[i]:
			bg = theme.Success
		case i < len(q.Results):
			bg = theme.Error
		case i == len(q.Results):
			bg = theme.Secondary
		}
		segments[i] = lipgloss.NewStyle().Background(bg).Render(block)
	}
	return strings.Join(segments, " ")
}
