package questiongen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/abhisek/quizly/internal/quiz"
)

// Validator checks one generated question. Implementations are stateless.
type Validator interface {
	Name() string
	Validate(q quiz.Question, in Input) *ValidationError
}

// ValidationError explains why a question was dropped.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

const (
	maxTextLen   = 300
	maxOptionLen = 100
	optionCount  = 4
)

// StructuralValidator enforces the question invariants and length limits.
type StructuralValidator struct{}

func (StructuralValidator) Name() string { return "structural" }

func (v StructuralValidator) Validate(q quiz.Question, _ Input) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}
	if strings.TrimSpace(q.Text) == "" {
		return fail("text is empty")
	}
	if len(q.Text) > maxTextLen {
		return fail("text exceeds %d characters", maxTextLen)
	}
	if err := q.Validate(); err != nil {
		return fail("%v", err)
	}
	if len(q.Options) != optionCount {
		return fail("need %d options, got %d", optionCount, len(q.Options))
	}
	for i, o := range q.Options {
		if len(o) > maxOptionLen {
			return fail("option %d exceeds %d characters", i, maxOptionLen)
		}
	}
	switch q.Difficulty {
	case quiz.DifficultyEasy, quiz.DifficultyMedium, quiz.DifficultyHard:
	default:
		return fail("difficulty %q is not easy, medium or hard", q.Difficulty)
	}
	return nil
}

// DuplicateValidator rejects questions whose normalized text is already in
// Input.Prior.
type DuplicateValidator struct{}

func (DuplicateValidator) Name() string { return "duplicate" }

func (v DuplicateValidator) Validate(q quiz.Question, in Input) *ValidationError {
	key := normalize(q.Text)
	for _, p := range in.Prior {
		if normalize(p) == key {
			return &ValidationError{Validator: v.Name(), Message: "already in the bank: " + q.Text}
		}
	}
	return nil
}

// normalize lowercases and keeps only letters and digits.
func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}
