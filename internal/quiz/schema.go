package quiz

import "github.com/quizforge/quizforge/internal/llm"

// QuestionsSchema describes the array of questions a model must return.
var QuestionsSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "An array of four-option multiple-choice questions",
	Definition: map[string]any{
		"type":     "array",
		"minItems": 1,
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"minLength":   1,
					"description": "The question shown to the player",
				},
				"options": map[string]any{
					"type":        "array",
					"minItems":    4,
					"maxItems":    4,
					"items":       map[string]any{"type": "string"},
					"description": "Exactly four answer options",
				},
				"answer": map[string]any{
					"type":        "string",
					"description": "The text of the correct option",
				},
			},
			"required": []any{"question", "options", "answer"},
		},
	},
}
