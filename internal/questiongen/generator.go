// Package questiongen authors multiple-choice questions with an LLM and
// checks them against the bank's rules before they are stored or asked.
package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/quizly/internal/llm"
	"github.com/abhisek/quizly/internal/quiz"
)

// ErrNoValidQuestions is returned when every generated question was dropped.
var ErrNoValidQuestions = errors.New("questiongen: no valid questions generated")

// Input describes one batch to author.
type Input struct {
	Category quiz.Category

	// Difficulty is easy, medium or hard. Empty asks for a mix.
	Difficulty string

	Count int

	// Prior holds question texts already in the bank.
	Prior []string
}

// Generator authors questions with an LLM provider.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// New creates a Generator.
func New(provider llm.Provider, cfg Config) *Generator {
	if cfg.MaxPerRequest <= 0 {
		cfg.MaxPerRequest = DefaultConfig().MaxPerRequest
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &Generator{provider: provider, cfg: cfg}
}

// Generate runs one LLM request and returns the questions that passed
// validation, each with a fresh ID. Count is capped at MaxPerRequest.
func (g *Generator) Generate(ctx context.Context, in Input) ([]quiz.Question, error) {
	if in.Count <= 0 {
		in.Count = 1
	}
	if in.Count > g.cfg.MaxPerRequest {
		in.Count = g.cfg.MaxPerRequest
	}

	resp, err := g.provider.Generate(llm.WithPurpose(ctx, "question-gen"), llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(in, g.cfg),
		Schema:      QuestionsSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate %s questions: %w", in.Category.ID, err)
	}

	var out questionsOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}

	// Questions accepted earlier in this batch count as prior for the rest.
	seen := in
	seen.Prior = append([]string(nil), in.Prior...)

	var qs []quiz.Question
	for _, raw := range out.Questions {
		q := quiz.Question{
			ID:           in.Category.ID + "-" + uuid.NewString()[:8],
			CategoryID:   in.Category.ID,
			Difficulty:   raw.Difficulty,
			Text:         raw.Text,
			Options:      raw.Options,
			CorrectIndex: raw.CorrectIndex,
		}
		if in.Difficulty != "" && q.Difficulty != in.Difficulty {
			q.Difficulty = in.Difficulty
		}
		if verr := g.validate(q, seen); verr != nil {
			log.Warn().Str("category", in.Category.ID).Str("validator", verr.Validator).Msg(verr.Message)
			continue
		}
		seen.Prior = append(seen.Prior, q.Text)
		qs = append(qs, q)
		if len(qs) == in.Count {
			break
		}
	}
	if len(qs) == 0 {
		return nil, ErrNoValidQuestions
	}
	return qs, nil
}

func (g *Generator) validate(q quiz.Question, in Input) *ValidationError {
	for _, v := range g.cfg.Validators {
		if err := v.Validate(q, in); err != nil {
			return err
		}
	}
	return nil
}

// Result is the outcome of one Input in a batch.
type Result struct {
	Input     Input
	Questions []quiz.Question
	Err       error
}

// GenerateBatch runs inputs concurrently, bounded by Config.Concurrency.
// Per-input failures are reported in the results; the returned error is
// only set when ctx ends first.
func (g *Generator) GenerateBatch(ctx context.Context, inputs []Input) ([]Result, error) {
	results := make([]Result, len(inputs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.Concurrency)

	for i, in := range inputs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			qs, err := g.Generate(ctx, in)
			results[i] = Result{Input: in, Questions: qs, Err: err}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
