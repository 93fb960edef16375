package questiongen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/quizly/internal/llm"
	"github.com/abhisek/quizly/internal/quiz"
)

type fakeBank struct {
	categories []quiz.Category
	questions  []quiz.Question
	appended   []quiz.Question
	err        error
}

func (b *fakeBank) Categories(context.Context) ([]quiz.Category, error) {
	return b.categories, b.err
}

func (b *fakeBank) Questions(context.Context) ([]quiz.Question, error) {
	return b.questions, b.err
}

func (b *fakeBank) Append(_ context.Context, qs ...quiz.Question) (int, error) {
	b.appended = append(b.appended, qs...)
	return len(qs), nil
}

func newBank() *fakeBank {
	q := validQuestion()
	return &fakeBank{categories: quiz.DefaultCategories(), questions: []quiz.Question{q}}
}

func TestSourceFetch(t *testing.T) {
	bank := newBank()
	mock := llm.NewMockProvider(llm.MockResponse{Content: batchJSON("Which particle has a negative charge?")})
	src := NewSource(New(mock, DefaultConfig()), bank, 1)

	qs, err := src.Fetch(context.Background(), "science", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 1 || qs[0].CategoryID != "science" {
		t.Fatalf("unexpected questions: %+v", qs)
	}
	if len(bank.appended) != 1 {
		t.Errorf("generated questions should be appended to the bank")
	}
	// Existing bank questions are passed as prior context.
	if prompt := mock.Calls()[0].Prompt; !strings.Contains(prompt, validQuestion().Text) {
		t.Errorf("prompt missing prior question:\n%s", prompt)
	}
}

func TestSourceFetch_AnyCategory(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: batchJSON("Any question?")})
	src := NewSource(New(mock, DefaultConfig()), newBank(), 1)

	qs, err := src.Fetch(context.Background(), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qs[0].CategoryID != "general" {
		t.Errorf("category = %q, want general", qs[0].CategoryID)
	}
}

func TestSourceFetch_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		category string
		resp     llm.MockResponse
		want     quiz.Kind
	}{
		{"unknown category", "cooking", llm.MockResponse{}, quiz.KindContent},
		{"unavailable", "science", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("503")}}, quiz.KindNetwork},
		{"rate limited", "science", llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}}, quiz.KindNetwork},
		{"deadline", "science", llm.MockResponse{Err: context.DeadlineExceeded}, quiz.KindTimeout},
		{"bad content", "science", llm.MockResponse{Content: []byte(`{"questions":[]}`)}, quiz.KindContent},
		{"other", "science", llm.MockResponse{Err: errors.New("boom")}, quiz.KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(tt.resp)
			src := NewSource(New(mock, DefaultConfig()), newBank(), 3)

			_, err := src.Fetch(context.Background(), tt.category, "")
			if err == nil {
				t.Fatal("expected an error")
			}
			var qe *quiz.Error
			if !errors.As(err, &qe) {
				t.Fatalf("err = %T %v, want *quiz.Error", err, err)
			}
			if qe.Kind != tt.want {
				t.Errorf("kind = %v, want %v", qe.Kind, tt.want)
			}
		})
	}
}

func TestSourceFetch_BankFailure(t *testing.T) {
	bank := newBank()
	bank.err = errors.New("disk gone")
	src := NewSource(New(llm.NewMockProvider(), DefaultConfig()), bank, 1)

	_, err := src.Fetch(context.Background(), "science", "")
	if quiz.Classify(err) != quiz.KindNetwork {
		t.Errorf("kind = %v, want network", quiz.Classify(err))
	}
}
