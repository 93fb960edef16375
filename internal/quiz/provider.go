package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/abhisek/quizly/internal/store"
)

// Blob store keys for the persisted question bank.
const (
	KeyQuestions  = "quiz_questions"
	KeyCategories = "quiz_categories"
	KeyLastSync   = "quiz_last_sync"
)

// Provider supplies the ordered question list for a session. Empty
// selectors mean "any". Implementations fail with a *Error of kind
// KindContent when nothing matches and KindNetwork on storage or
// transport faults. A successful result always has at least one question.
type Provider interface {
	Fetch(ctx context.Context, categoryID, difficulty string) ([]Question, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, categoryID, difficulty string) ([]Question, error)

func (f ProviderFunc) Fetch(ctx context.Context, categoryID, difficulty string) ([]Question, error) {
	return f(ctx, categoryID, difficulty)
}

// BankProvider serves questions from the persisted blob store. The bank is
// read once on first use and seeded with defaults when both keys are absent.
type BankProvider struct {
	blobs store.BlobStore
	group singleflight.Group
	now   func() time.Time

	mu         sync.Mutex
	loaded     bool
	questions  []Question
	categories []Category
}

var _ Provider = (*BankProvider)(nil)

// NewBankProvider creates a provider over blobs.
func NewBankProvider(blobs store.BlobStore) *BankProvider {
	return &BankProvider{blobs: blobs, now: time.Now}
}

// Initialize loads the bank. Concurrent callers share a single load.
func (p *BankProvider) Initialize(ctx context.Context) error {
	p.mu.Lock()
	loaded := p.loaded
	p.mu.Unlock()
	if loaded {
		return nil
	}

	_, err, _ := p.group.Do("init", func() (any, error) {
		return nil, p.load(ctx)
	})
	return err
}

func (p *BankProvider) load(ctx context.Context) error {
	qRaw, qOK, err := p.blobs.Get(ctx, KeyQuestions)
	if err != nil {
		return fmt.Errorf("read %s: %w", KeyQuestions, err)
	}
	cRaw, cOK, err := p.blobs.Get(ctx, KeyCategories)
	if err != nil {
		return fmt.Errorf("read %s: %w", KeyCategories, err)
	}

	if !qOK && !cOK {
		log.Info().Msg("question bank empty, seeding defaults")
		return p.write(ctx, DefaultQuestions(), DefaultCategories())
	}

	questions := DefaultQuestions()
	if qOK {
		questions = nil
		if err := json.Unmarshal(qRaw, &questions); err != nil {
			return ContentError("Failed to load quiz data from storage")
		}
	}
	categories := DefaultCategories()
	if cOK {
		categories = nil
		if err := json.Unmarshal(cRaw, &categories); err != nil {
			return ContentError("Failed to load quiz data from storage")
		}
	}

	p.mu.Lock()
	p.questions = questions
	p.categories = categories
	p.loaded = true
	p.mu.Unlock()
	return nil
}

// write persists both lists and the sync timestamp, then updates the cache.
func (p *BankProvider) write(ctx context.Context, questions []Question, categories []Category) error {
	qRaw, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	cRaw, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}
	if err := p.blobs.Put(ctx, KeyQuestions, qRaw); err != nil {
		return fmt.Errorf("write %s: %w", KeyQuestions, err)
	}
	if err := p.blobs.Put(ctx, KeyCategories, cRaw); err != nil {
		return fmt.Errorf("write %s: %w", KeyCategories, err)
	}
	stamp := p.now().UTC().Format(time.RFC3339)
	if err := p.blobs.Put(ctx, KeyLastSync, []byte(stamp)); err != nil {
		return fmt.Errorf("write %s: %w", KeyLastSync, err)
	}

	p.mu.Lock()
	p.questions = questions
	p.categories = categories
	p.loaded = true
	p.mu.Unlock()
	return nil
}

// Fetch implements Provider.
func (p *BankProvider) Fetch(ctx context.Context, categoryID, difficulty string) ([]Question, error) {
	if err := p.Initialize(ctx); err != nil {
		if Classify(err) == KindContent {
			return nil, err
		}
		return nil, NetworkError("Failed to retrieve questions", err)
	}

	p.mu.Lock()
	all := p.questions
	p.mu.Unlock()

	if len(all) == 0 {
		return nil, ContentError("No questions available")
	}

	filtered := all
	if categoryID != "" {
		filtered = Filter(filtered, categoryID, "")
		if len(filtered) == 0 {
			return nil, ContentError("No questions available for category: " + categoryID)
		}
	}
	if difficulty != "" {
		filtered = Filter(filtered, "", difficulty)
		if len(filtered) == 0 {
			return nil, ContentError("No questions available for difficulty: " + difficulty)
		}
	}

	return CloneAll(filtered), nil
}

// Questions returns a copy of the whole bank.
func (p *BankProvider) Questions(ctx context.Context) ([]Question, error) {
	if err := p.Initialize(ctx); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return CloneAll(p.questions), nil
}

// Categories returns the category list.
func (p *BankProvider) Categories(ctx context.Context) ([]Category, error) {
	if err := p.Initialize(ctx); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Category(nil), p.categories...), nil
}

// Append validates qs and adds them to the bank. Questions whose ID is
// already present are skipped. It returns the number added.
func (p *BankProvider) Append(ctx context.Context, qs ...Question) (int, error) {
	if err := p.Initialize(ctx); err != nil {
		return 0, err
	}
	for _, q := range qs {
		if err := q.Validate(); err != nil {
			return 0, err
		}
	}

	p.mu.Lock()
	existing := make(map[string]bool, len(p.questions))
	for _, q := range p.questions {
		existing[q.ID] = true
	}
	merged := CloneAll(p.questions)
	categories := append([]Category(nil), p.categories...)
	p.mu.Unlock()

	added := 0
	for _, q := range qs {
		if existing[q.ID] {
			continue
		}
		existing[q.ID] = true
		merged = append(merged, q.Clone())
		added++
	}
	if added == 0 {
		return 0, nil
	}
	if err := p.write(ctx, merged, categories); err != nil {
		return 0, err
	}
	return added, nil
}

// Reset restores the default bank.
func (p *BankProvider) Reset(ctx context.Context) error {
	return p.write(ctx, DefaultQuestions(), DefaultCategories())
}

// LastSync returns when the bank was last written, or the zero time.
func (p *BankProvider) LastSync(ctx context.Context) (time.Time, error) {
	raw, ok, err := p.blobs.Get(ctx, KeyLastSync)
	if err != nil || !ok {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, string(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s: %w", KeyLastSync, err)
	}
	return t, nil
}
