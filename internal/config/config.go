// Package config loads quizly's YAML configuration and applies environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Question sources.
const (
	SourceBank = "bank"
	SourceLLM  = "llm"
)

// Blob store backends.
const (
	BlobSQLite = "sqlite"
	BlobRedis  = "redis"
)

// Config is the application configuration.
type Config struct {
	DBPath         string `yaml:"db_path"`
	QuestionBudget string `yaml:"question_budget"`
	FeedbackDelay  string `yaml:"feedback_delay"`
	FetchTimeout   string `yaml:"fetch_timeout"`
	TestMode       bool   `yaml:"test_mode"`
	QuestionSource string `yaml:"question_source"`
	BlobStore      string `yaml:"blob_store"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	} `yaml:"redis"`

	Log struct {
		File  string `yaml:"file"`
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	cfg := Config{
		QuestionBudget: "30s",
		FeedbackDelay:  "1s",
		FetchTimeout:   "10s",
		QuestionSource: SourceBank,
		BlobStore:      BlobSQLite,
	}
	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.Prefix = "quizly:"
	cfg.Log.Level = "info"
	return cfg
}

// Load reads YAML config from path on top of the defaults. A missing file
// is not an error. Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	if v := os.Getenv("QUIZLY_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("QUIZLY_TEST_MODE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.TestMode = b
		}
	}
	if v := os.Getenv("QUIZLY_QUESTION_SOURCE"); v != "" {
		c.QuestionSource = v
	}
	if v := os.Getenv("QUIZLY_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
		c.BlobStore = BlobRedis
	}
	if v := os.Getenv("QUIZLY_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("QUIZLY_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.QuestionSource {
	case SourceBank, SourceLLM:
	default:
		return fmt.Errorf("unknown question_source %q", c.QuestionSource)
	}
	switch c.BlobStore {
	case BlobSQLite, BlobRedis:
	default:
		return fmt.Errorf("unknown blob_store %q", c.BlobStore)
	}
	return nil
}

// BudgetSeconds returns the per-question budget in whole seconds, at least 1.
func (c Config) BudgetSeconds() int {
	secs := int(Duration(c.QuestionBudget, 30*time.Second) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

// FeedbackDuration returns the feedback display delay.
func (c Config) FeedbackDuration() time.Duration {
	return Duration(c.FeedbackDelay, time.Second)
}

// FetchTimeoutDuration returns the bound on a single question fetch.
func (c Config) FetchTimeoutDuration() time.Duration {
	return Duration(c.FetchTimeout, 10*time.Second)
}

// Duration parses a duration string or returns the fallback if empty or
// malformed.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// DefaultPath returns $XDG_CONFIG_HOME/quizly/config.yaml, falling back to
// ~/.config/quizly/config.yaml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "quizly", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "quizly", "config.yaml")
}
