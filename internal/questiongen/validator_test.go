package questiongen

import (
	"strings"
	"testing"

	"github.com/abhisek/quizly/internal/quiz"
)

func validQuestion() quiz.Question {
	return quiz.Question{
		ID:           "science-1",
		CategoryID:   "science",
		Difficulty:   "easy",
		Text:         "What is the boiling point of water at sea level in Celsius?",
		Options:      []string{"90", "100", "110", "120"},
		CorrectIndex: 1,
	}
}

func TestStructuralValidator(t *testing.T) {
	tests := []struct {
		name   string
		modify func(q *quiz.Question)
		ok     bool
	}{
		{"valid", func(*quiz.Question) {}, true},
		{"empty text", func(q *quiz.Question) { q.Text = "  " }, false},
		{"long text", func(q *quiz.Question) { q.Text = strings.Repeat("x", 301) }, false},
		{"three options", func(q *quiz.Question) { q.Options = q.Options[:3] }, false},
		{"duplicate options", func(q *quiz.Question) { q.Options[2] = "100" }, false},
		{"index out of range", func(q *quiz.Question) { q.CorrectIndex = 4 }, false},
		{"long option", func(q *quiz.Question) { q.Options[0] = strings.Repeat("o", 101) }, false},
		{"unknown difficulty", func(q *quiz.Question) { q.Difficulty = "extreme" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.modify(&q)
			err := StructuralValidator{}.Validate(q, Input{})
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected a validation error")
			}
			if err != nil && err.Validator != "structural" {
				t.Errorf("validator = %q", err.Validator)
			}
		})
	}
}

func TestDuplicateValidator(t *testing.T) {
	q := validQuestion()
	in := Input{Prior: []string{"what is the BOILING point of water at sea-level, in celsius"}}
	if err := (DuplicateValidator{}).Validate(q, in); err == nil {
		t.Error("expected duplicate to be rejected")
	}
	if err := (DuplicateValidator{}).Validate(q, Input{Prior: []string{"What is the freezing point of water?"}}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
