package quiz

import (
	"fmt"
	"strings"
)

// Difficulty levels used by the default bank. Questions may carry any
// string; the provider filters by exact match.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Difficulties lists the known difficulty levels in ascending order.
var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Question is a single multiple-choice question.
type Question struct {
	ID           string   `json:"id"`
	CategoryID   string   `json:"category_id"`
	Difficulty   string   `json:"difficulty"`
	Text         string   `json:"question_text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_answer_index"`
}

// Category groups questions by topic.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Validate checks the structural rules every stored question must satisfy.
func (q Question) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return fmt.Errorf("question has no id")
	}
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("question %s: empty text", q.ID)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("question %s: need at least 2 options, got %d", q.ID, len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("question %s: correct index %d out of range [0,%d)", q.ID, q.CorrectIndex, len(q.Options))
	}
	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		key := strings.ToLower(strings.TrimSpace(opt))
		if key == "" {
			return fmt.Errorf("question %s: empty option", q.ID)
		}
		if seen[key] {
			return fmt.Errorf("question %s: duplicate option %q", q.ID, opt)
		}
		seen[key] = true
	}
	return nil
}

// IsCorrect reports whether the option at index is the correct one.
func (q Question) IsCorrect(index int) bool {
	return index == q.CorrectIndex
}

// Clone returns a deep copy that shares no backing arrays with q.
func (q Question) Clone() Question {
	c := q
	c.Options = append([]string(nil), q.Options...)
	return c
}

// CloneAll deep-copies a question list.
func CloneAll(qs []Question) []Question {
	if qs == nil {
		return nil
	}
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}

// Filter returns the questions matching categoryID and difficulty.
// An empty selector matches everything.
func Filter(qs []Question, categoryID, difficulty string) []Question {
	var out []Question
	for _, q := range qs {
		if categoryID != "" && q.CategoryID != categoryID {
			continue
		}
		if difficulty != "" && q.Difficulty != difficulty {
			continue
		}
		out = append(out, q)
	}
	return out
}
