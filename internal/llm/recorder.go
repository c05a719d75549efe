package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/serenity-circle/serenity/internal/store"
)

type recorder struct {
	inner  Provider
	events store.EventRepo
	log    *zap.Logger
}

// WithRecorder logs every call and appends it to events when events is
// non-nil. Recording failures never fail the call.
func WithRecorder(p Provider, events store.EventRepo, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &recorder{inner: p, events: events, log: log}
}

func (r *recorder) Name() string  { return r.inner.Name() }
func (r *recorder) Model() string { return r.inner.Model() }

func (r *recorder) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	start := time.Now()
	c, err := r.inner.Complete(ctx, p)
	elapsed := time.Since(start)

	ev := store.LLMRequestEventData{
		Provider:  r.inner.Name(),
		Model:     r.inner.Model(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: elapsed.Milliseconds(),
		Success:   err == nil,
	}
	if c != nil {
		ev.Model = c.Model
		ev.InputTokens = c.Tokens.Input
		ev.OutputTokens = c.Tokens.Output
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	fields := []zap.Field{
		zap.String("provider", ev.Provider),
		zap.String("model", ev.Model),
		zap.String("purpose", ev.Purpose),
		zap.Duration("latency", elapsed),
		zap.Int("input_tokens", ev.InputTokens),
		zap.Int("output_tokens", ev.OutputTokens),
	}
	if err != nil {
		r.log.Warn("llm call failed", append(fields, zap.Error(err))...)
	} else {
		r.log.Debug("llm call", fields...)
	}

	if r.events != nil {
		// Record even when the caller's context is already cancelled.
		if rerr := r.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); rerr != nil {
			r.log.Warn("record llm event", zap.Error(rerr))
		}
	}
	return c, err
}
