package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/serenity-circle/serenity/internal/store"
)

type memEvents struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (m *memEvents) AppendLLMRequest(_ context.Context, e store.LLMRequestEventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return m.err
}

func TestRecorderAppendsEvents(t *testing.T) {
	events := &memEvents{}
	core, logs := observer.New(zap.DebugLevel)
	s := NewScripted(
		Reply{JSON: json.RawMessage(`{"ok":true}`), Tokens: TokenUsage{Input: 9, Output: 3}},
		Reply{Err: &UnavailableError{Err: errors.New("down")}},
	)
	p := WithRecorder(s, events, zap.New(core))
	ctx := WithPurpose(context.Background(), PurposeAffirmation)

	if _, err := p.Complete(ctx, Ask("", "a")); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := p.Complete(ctx, Ask("", "b")); err == nil {
		t.Fatal("second call should fail")
	}

	if len(events.events) != 2 {
		t.Fatalf("got %d events, want 2", len(events.events))
	}
	ok, failed := events.events[0], events.events[1]
	if !ok.Success || ok.Purpose != PurposeAffirmation || ok.InputTokens != 9 || ok.Provider != ProviderMock {
		t.Errorf("success event = %+v", ok)
	}
	if failed.Success || failed.ErrorMessage == "" {
		t.Errorf("failure event = %+v", failed)
	}
	if logs.FilterMessage("llm call failed").Len() != 1 {
		t.Errorf("expected one failure log line, got %d", logs.FilterMessage("llm call failed").Len())
	}
}

func TestRecorderIgnoresEventErrors(t *testing.T) {
	events := &memEvents{err: errors.New("disk full")}
	p := WithRecorder(NewScripted(okReply), events, nil)
	if _, err := p.Complete(context.Background(), Ask("", "x")); err != nil {
		t.Fatalf("recording failure leaked: %v", err)
	}
}

func TestPurposeDefault(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != PurposeUnknown {
		t.Errorf("got %q, want %q", got, PurposeUnknown)
	}
	if got := PurposeFrom(WithPurpose(context.Background(), "")); got != PurposeUnknown {
		t.Errorf("empty tag: got %q, want %q", got, PurposeUnknown)
	}
}
