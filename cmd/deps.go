package cmd

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizly/internal/config"
	"github.com/abhisek/quizly/internal/llm"
	"github.com/abhisek/quizly/internal/questiongen"
	"github.com/abhisek/quizly/internal/quiz"
	"github.com/abhisek/quizly/internal/store"
)

// deps holds the stores every command works against.
type deps struct {
	store *store.Store
	redis *redis.Client
	bank  *quiz.BankProvider
}

// openDeps opens the SQLite store and the configured blob backend.
func openDeps(cmd *cobra.Command) (*deps, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	d := &deps{store: st}

	blobs := st.BlobStore()
	if cfg.BlobStore == config.BlobRedis {
		d.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := d.redis.Ping(cmd.Context()).Err(); err != nil {
			d.Close()
			return nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}
		blobs = store.NewRedisBlobStore(d.redis, cfg.Redis.Prefix)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("question bank on redis")
	}
	d.bank = quiz.NewBankProvider(blobs)
	return d, nil
}

func (d *deps) Close() {
	if d.redis != nil {
		_ = d.redis.Close()
	}
	_ = d.store.Close()
}

// generator builds a question generator on the configured LLM provider.
func (d *deps) generator(ctx context.Context) (*questiongen.Generator, error) {
	llmCfg, err := llm.Resolve()
	if err != nil {
		return nil, fmt.Errorf("LLM provider: %w", err)
	}
	provider, err := llm.NewProvider(ctx, llmCfg, d.store.EventRepo())
	if err != nil {
		return nil, fmt.Errorf("LLM provider: %w", err)
	}
	return questiongen.New(provider, questiongen.DefaultConfig()), nil
}

// questionSource returns the provider quizzes draw from. The LLM source
// falls back to the bank when no provider is configured.
func (d *deps) questionSource(ctx context.Context) quiz.Provider {
	if cfg.QuestionSource != config.SourceLLM {
		return d.bank
	}
	gen, err := d.generator(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("llm question source unavailable, using the bank")
		return d.bank
	}
	return questiongen.NewSource(gen, d.bank, 0)
}
