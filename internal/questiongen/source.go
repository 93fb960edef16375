package questiongen

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/abhisek/quizly/internal/llm"
	"github.com/abhisek/quizly/internal/quiz"
)

// Bank is the part of quiz.BankProvider the live source needs.
type Bank interface {
	Categories(ctx context.Context) ([]quiz.Category, error)
	Questions(ctx context.Context) ([]quiz.Question, error)
	Append(ctx context.Context, qs ...quiz.Question) (int, error)
}

// Source serves each session from a fresh LLM batch and keeps the result
// in the bank. It implements quiz.Provider.
type Source struct {
	gen   *Generator
	bank  Bank
	count int
}

var _ quiz.Provider = (*Source)(nil)

// NewSource creates a source asking for count questions per session.
func NewSource(gen *Generator, bank Bank, count int) *Source {
	if count <= 0 {
		count = 5
	}
	return &Source{gen: gen, bank: bank, count: count}
}

func (s *Source) Fetch(ctx context.Context, categoryID, difficulty string) ([]quiz.Question, error) {
	cats, err := s.bank.Categories(ctx)
	if err != nil {
		return nil, quiz.NetworkError("Failed to retrieve questions", err)
	}
	cat := quiz.Category{ID: "general", Name: "General Knowledge"}
	if categoryID != "" {
		found := false
		for _, c := range cats {
			if c.ID == categoryID {
				cat, found = c, true
				break
			}
		}
		if !found {
			return nil, quiz.ContentError("No questions available for category: " + categoryID)
		}
	}

	var prior []string
	if existing, err := s.bank.Questions(ctx); err == nil {
		for _, q := range quiz.Filter(existing, cat.ID, "") {
			prior = append(prior, q.Text)
		}
	}

	qs, err := s.gen.Generate(ctx, Input{Category: cat, Difficulty: difficulty, Count: s.count, Prior: prior})
	if err != nil {
		return nil, toQuizError(cat.ID, err)
	}
	if _, err := s.bank.Append(ctx, qs...); err != nil {
		log.Warn().Err(err).Str("category", cat.ID).Msg("keep generated questions")
	}
	return qs, nil
}

// toQuizError maps generation failures onto the quiz error taxonomy.
func toQuizError(categoryID string, err error) error {
	var (
		unavailable *llm.ErrProviderUnavailable
		rateLimited *llm.ErrRateLimit
		invalid     *llm.ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return quiz.TimeoutError("Request timed out", err)
	case errors.As(err, &unavailable), errors.As(err, &rateLimited):
		return quiz.NetworkError("Failed to retrieve questions", err)
	case errors.As(err, &invalid), errors.Is(err, ErrNoValidQuestions):
		return quiz.ContentError("No questions available for category: " + categoryID)
	}
	return quiz.UnknownError(fmt.Sprintf("question generation failed: %v", err), err)
}
