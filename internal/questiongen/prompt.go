package questiongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write multiple-choice trivia questions for a timed terminal quiz.

Rules:
- Every question has exactly 4 short options and exactly one correct answer.
- Options must be distinct. Distractors should be plausible, not jokes.
- Questions must be answerable in under 30 seconds without a calculator.
- Keep each question under 200 characters and each option under 60.
- Use plain text. No markdown, no numbering, no "all of the above".
- Match the requested difficulty. If the difficulty is "mixed", spread the batch across easy, medium and hard.
- Do not repeat or paraphrase any question from the "already in the bank" list.`

// buildPrompt renders the user turn for one request.
func buildPrompt(in Input, cfg Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Category: %s\n", in.Category.Name)
	if in.Category.Description != "" {
		fmt.Fprintf(&b, "About: %s\n", in.Category.Description)
	}
	diff := in.Difficulty
	if diff == "" {
		diff = "mixed"
	}
	fmt.Fprintf(&b, "Difficulty: %s\n", diff)
	fmt.Fprintf(&b, "Number of questions: %d\n", in.Count)

	b.WriteString("\nAlready in the bank:\n")
	b.WriteString(numbered(in.Prior, cfg.MaxPrior))
	return b.String()
}

// numbered lists the last max items, or "None".
func numbered(items []string, max int) string {
	if len(items) == 0 {
		return "None"
	}
	if max > 0 && len(items) > max {
		items = items[len(items)-max:]
	}
	var b strings.Builder
	for i, it := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, it)
	}
	return strings.TrimRight(b.String(), "\n")
}
