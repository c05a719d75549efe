package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo.
type eventRepo struct {
	q querier
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := insert(ctx, r.q, builder.Insert(TableLLMEvents).
		Columns("provider", "model", "purpose", "input_tokens", "output_tokens",
			"latency_ms", "success", "error_message", colCreatedAt).
		Values(data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
			data.LatencyMs, data.Success, data.ErrorMessage, now()))
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

// LLMRequestEvent is a stored LLM call.
type LLMRequestEvent struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	LLMRequestEventData
}

// LLMRequests returns recorded LLM calls, newest first. An empty purpose
// matches every call.
func (s *Store) LLMRequests(ctx context.Context, purpose string, opts QueryOpts) ([]LLMRequestEvent, error) {
	sel := builder.Select(colID, "provider", "model", "purpose", "input_tokens", "output_tokens",
		"latency_ms", "success", "error_message", colCreatedAt).
		From(entsql.Table(TableLLMEvents)).
		OrderBy(entsql.Desc(colCreatedAt), entsql.Desc(colID))
	if purpose != "" {
		sel.Where(entsql.EQ("purpose", purpose))
	}
	out, err := queryAll(ctx, s.db, applyOpts(sel, opts), func(sc scanner) (LLMRequestEvent, error) {
		var e LLMRequestEvent
		err := sc.Scan(&e.ID, &e.Provider, &e.Model, &e.Purpose, &e.InputTokens, &e.OutputTokens,
			&e.LatencyMs, &e.Success, &e.ErrorMessage, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM request events: %w", err)
	}
	return out, nil
}
