package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizly/internal/quiz"
	"github.com/abhisek/quizly/internal/store"
)

func TestCheckDifficulty(t *testing.T) {
	for _, d := range []string{"", "easy", "medium", "hard"} {
		assert.NoError(t, checkDifficulty(d), d)
	}
	assert.Error(t, checkDifficulty("expert"))
}

func TestSelectCategories(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "cmd.db"))
	require.NoError(t, err)
	defer st.Close()
	bank := quiz.NewBankProvider(st.BlobStore())
	ctx := context.Background()

	all, err := selectCategories(ctx, bank, nil)
	require.NoError(t, err)
	assert.Len(t, all, len(quiz.DefaultCategories()))

	some, err := selectCategories(ctx, bank, []string{"science", " history"})
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, "science", some[0].ID)
	assert.Equal(t, "history", some[1].ID)

	_, err = selectCategories(ctx, bank, []string{"cooking"})
	assert.ErrorContains(t, err, "cooking")
}

func TestFindCategory(t *testing.T) {
	c, ok := findCategory(quiz.DefaultCategories(), "geography")
	require.True(t, ok)
	assert.Equal(t, "geography", c.ID)

	_, ok = findCategory(quiz.DefaultCategories(), "nope")
	assert.False(t, ok)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
