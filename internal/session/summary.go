package session

// Summary holds the data displayed on the result page.
type Summary struct {
	Name     string
	Score    int
	Total    int
	Accuracy float64
	Review   []ReviewItem
}

// ReviewItem pairs a question with the answer the player gave.
type ReviewItem struct {
	Question string
	Chosen   string
	Answer   string
	Correct  bool
}

// BuildSummary creates a Summary from the session state.
func BuildSummary(s State) Summary {
	var accuracy float64
	if len(s.Questions) > 0 {
		accuracy = float64(s.Score) / float64(len(s.Questions))
	}

	review := make([]ReviewItem, 0, len(s.Answers))
	for _, a := range s.Answers {
		if a.Index < 0 || a.Index >= len(s.Questions) {
			continue
		}
		q := s.Questions[a.Index]
		review = append(review, ReviewItem{
			Question: q.Question,
			Chosen:   a.Chosen,
			Answer:   q.Answer,
			Correct:  a.Correct,
		})
	}

	return Summary{
		Name:     s.Name,
		Score:    s.Score,
		Total:    len(s.Questions),
		Accuracy: accuracy,
		Review:   review,
	}
}
