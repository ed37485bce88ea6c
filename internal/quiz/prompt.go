package quiz

import "fmt"

const systemPrompt = "You are a helpful assistant that creates clear multiple-choice quiz questions (4 options) from the given text/topic. Reply with a JSON array named questions where each item is {question, options, answer}."

// buildUserMessage embeds the content verbatim after the instruction.
func buildUserMessage(text string, count int) string {
	return fmt.Sprintf("Create %d multiple-choice questions (with exactly 4 options each) based on this content. Output only valid JSON. Content:\n\n%s", count, text)
}
