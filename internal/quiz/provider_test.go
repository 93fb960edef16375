package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memBlobs is an in-memory store.BlobStore.
type memBlobs struct {
	mu     sync.Mutex
	data   map[string][]byte
	puts   int
	getErr error
}

func newMemBlobs() *memBlobs {
	return &memBlobs{data: map[string][]byte{}}
}

func (m *memBlobs) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memBlobs) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memBlobs) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func TestBankProviderSeedsDefaults(t *testing.T) {
	blobs := newMemBlobs()
	p := NewBankProvider(blobs)
	p.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	ctx := context.Background()

	qs, err := p.Fetch(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, qs, len(DefaultQuestions()))

	assert.Contains(t, blobs.data, KeyQuestions)
	assert.Contains(t, blobs.data, KeyCategories)

	stamp, err := p.LastSync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2026, stamp.Year())

	// A second provider over the same blobs reads instead of reseeding.
	puts := blobs.puts
	p2 := NewBankProvider(blobs)
	_, err = p2.Fetch(ctx, "science", "")
	require.NoError(t, err)
	assert.Equal(t, puts, blobs.puts)
}

func TestBankProviderConcurrentInitSeedsOnce(t *testing.T) {
	blobs := newMemBlobs()
	p := NewBankProvider(blobs)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = p.Fetch(context.Background(), "", "")
		}()
	}
	wg.Wait()

	// One seed writes three keys.
	assert.LessOrEqual(t, blobs.puts, 6)
	assert.GreaterOrEqual(t, blobs.puts, 3)
}

func TestBankProviderFilters(t *testing.T) {
	p := NewBankProvider(newMemBlobs())
	ctx := context.Background()

	qs, err := p.Fetch(ctx, "science", "")
	require.NoError(t, err)
	for _, q := range qs {
		assert.Equal(t, "science", q.CategoryID)
	}

	qs, err = p.Fetch(ctx, "history", DifficultyMedium)
	require.NoError(t, err)
	require.NotEmpty(t, qs)
	for _, q := range qs {
		assert.Equal(t, "history", q.CategoryID)
		assert.Equal(t, DifficultyMedium, q.Difficulty)
	}
}

func TestBankProviderContentErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewBankProvider(newMemBlobs()).Fetch(ctx, "sports", "")
	require.Error(t, err)
	assert.Equal(t, KindContent, Classify(err))
	assert.Equal(t, "No questions available for category: sports", err.Error())

	_, err = NewBankProvider(newMemBlobs()).Fetch(ctx, "", "impossible")
	require.Error(t, err)
	assert.Equal(t, "No questions available for difficulty: impossible", err.Error())

	empty := newMemBlobs()
	empty.data[KeyQuestions] = []byte(`[]`)
	_, err = NewBankProvider(empty).Fetch(ctx, "", "")
	require.Error(t, err)
	assert.Equal(t, KindContent, Classify(err))
	assert.Equal(t, "No questions available", err.Error())
}

func TestBankProviderStorageFaultIsNetwork(t *testing.T) {
	blobs := newMemBlobs()
	blobs.getErr = errors.New("disk on fire")

	_, err := NewBankProvider(blobs).Fetch(context.Background(), "", "")
	require.Error(t, err)
	assert.Equal(t, KindNetwork, Classify(err))
}

func TestBankProviderCorruptBlob(t *testing.T) {
	blobs := newMemBlobs()
	blobs.data[KeyQuestions] = []byte(`{not json`)

	_, err := NewBankProvider(blobs).Fetch(context.Background(), "", "")
	require.Error(t, err)
	assert.Equal(t, KindContent, Classify(err))
}

func TestBankProviderFetchReturnsCopies(t *testing.T) {
	p := NewBankProvider(newMemBlobs())
	ctx := context.Background()

	qs, err := p.Fetch(ctx, "geography", "")
	require.NoError(t, err)
	original := qs[0].Options[0]
	qs[0].Options[0] = "mutated"
	qs[0].Text = "mutated"

	again, err := p.Fetch(ctx, "geography", "")
	require.NoError(t, err)
	assert.Equal(t, original, again[0].Options[0])
	assert.NotEqual(t, "mutated", again[0].Text)
}

func TestBankProviderAppendAndReset(t *testing.T) {
	blobs := newMemBlobs()
	p := NewBankProvider(blobs)
	ctx := context.Background()

	extra := Question{
		ID: "sports-1", CategoryID: "sports", Difficulty: DifficultyEasy,
		Text: "How many players on a soccer team?", Options: []string{"9", "10", "11"}, CorrectIndex: 2,
	}
	n, err := p.Append(ctx, extra, extra)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	qs, err := p.Fetch(ctx, "sports", "")
	require.NoError(t, err)
	assert.Len(t, qs, 1)

	var stored []Question
	require.NoError(t, json.Unmarshal(blobs.data[KeyQuestions], &stored))
	assert.Len(t, stored, len(DefaultQuestions())+1)

	_, err = p.Append(ctx, Question{ID: "bad", Text: "?", Options: []string{"only"}})
	assert.Error(t, err)

	require.NoError(t, p.Reset(ctx))
	_, err = p.Fetch(ctx, "sports", "")
	assert.Equal(t, KindContent, Classify(err))
}

func TestBankProviderCategories(t *testing.T) {
	p := NewBankProvider(newMemBlobs())
	cats, err := p.Categories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 5)
}

func TestDefaultQuestionsValid(t *testing.T) {
	ids := map[string]bool{}
	cats := map[string]bool{}
	for _, c := range DefaultCategories() {
		cats[c.ID] = true
	}
	for _, q := range DefaultQuestions() {
		assert.NoError(t, q.Validate())
		assert.False(t, ids[q.ID], "duplicate id %s", q.ID)
		ids[q.ID] = true
		assert.True(t, cats[q.CategoryID], "unknown category %s", q.CategoryID)
	}
}
