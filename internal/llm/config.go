package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures one provider.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig

	// Timeout bounds a single request. Default: 60s.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// DefaultConfig returns the default models for every provider.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Timeout:    60 * time.Second,
	}
}

// ConfigFromEnv reads QUIZLY_LLM_PROVIDER and the QUIZLY_<PROVIDER>_*
// variables on top of the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	bindings := []struct {
		env string
		dst *string
	}{
		{"QUIZLY_LLM_PROVIDER", &cfg.Provider},
		{"QUIZLY_ANTHROPIC_API_KEY", &cfg.Anthropic.APIKey},
		{"QUIZLY_ANTHROPIC_MODEL", &cfg.Anthropic.Model},
		{"QUIZLY_OPENAI_API_KEY", &cfg.OpenAI.APIKey},
		{"QUIZLY_OPENAI_MODEL", &cfg.OpenAI.Model},
		{"QUIZLY_OPENAI_BASE_URL", &cfg.OpenAI.BaseURL},
		{"QUIZLY_GEMINI_API_KEY", &cfg.Gemini.APIKey},
		{"QUIZLY_GEMINI_MODEL", &cfg.Gemini.Model},
		{"QUIZLY_OPENROUTER_API_KEY", &cfg.OpenRouter.APIKey},
		{"QUIZLY_OPENROUTER_MODEL", &cfg.OpenRouter.Model},
	}
	for _, b := range bindings {
		if v := os.Getenv(b.env); v != "" {
			*b.dst = v
		}
	}
	if v := os.Getenv("QUIZLY_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	return cfg
}

// DiscoverConfig falls back to the vendors' standard key variables, in the
// order Gemini, OpenAI, Anthropic, OpenRouter. ok is false when none is set.
func DiscoverConfig() (cfg Config, ok bool) {
	cfg = DefaultConfig()
	candidates := []struct {
		env      string
		provider string
		dst      *string
	}{
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &cfg.OpenRouter.APIKey},
	}
	for _, c := range candidates {
		if k := os.Getenv(c.env); k != "" {
			cfg.Provider = c.provider
			*c.dst = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Resolve returns ConfigFromEnv when it names a usable provider, otherwise
// whatever DiscoverConfig finds.
func Resolve() (Config, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err == nil {
		return cfg, nil
	}
	if found, ok := DiscoverConfig(); ok {
		return found, nil
	}
	return cfg, cfg.Validate()
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "QUIZLY_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "QUIZLY_OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "QUIZLY_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "QUIZLY_OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
