// Package llm is a thin, provider-neutral client for structured JSON
// generation. quizly uses it to author quiz questions.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a JSON document from a prompt.
type Provider interface {
	// Generate runs one single-turn completion. When req.Schema is set the
	// returned Content has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model this provider sends requests to.
	ModelID() string
}

// Request is a single-turn generation request.
type Request struct {
	// System sets the model's role and output rules.
	System string

	// Prompt is the user turn.
	Prompt string

	// Schema, when set, switches the provider to its structured output mode.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Schema names a JSON Schema document.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "quiz-questions".
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the provider's output.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is "end" or "max_tokens".
	StopReason string
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

// Stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// resolveModel maps a friendly alias to a model ID. Unknown names pass
// through unchanged.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
