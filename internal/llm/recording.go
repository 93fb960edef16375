package llm

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/abhisek/quizly/internal/store"
)

// RecordingProvider appends an event for every request it forwards.
type RecordingProvider struct {
	inner  Provider
	name   string
	events store.EventRepo
}

// WithRecording wraps p. A nil repo only logs.
func WithRecording(p Provider, providerName string, events store.EventRepo) Provider {
	return &RecordingProvider{inner: p, name: providerName, events: events}
}

func (r *RecordingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := r.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:  r.name,
		Model:     r.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	entry := log.Info()
	if err != nil {
		entry = log.Warn().Err(err)
	}
	entry.Str("provider", ev.Provider).Str("model", ev.Model).Str("purpose", ev.Purpose).
		Int("input_tokens", ev.InputTokens).Int("output_tokens", ev.OutputTokens).
		Int64("latency_ms", ev.LatencyMs).Msg("llm request")

	if r.events != nil {
		// Use a fresh context so a cancelled request is still recorded.
		if recErr := r.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); recErr != nil {
			log.Error().Err(recErr).Msg("record llm request")
		}
	}
	return resp, err
}

func (r *RecordingProvider) ModelID() string {
	return r.inner.ModelID()
}
