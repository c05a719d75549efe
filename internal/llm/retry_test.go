package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

var okReply = Reply{JSON: json.RawMessage(`{"ok":true}`)}

func fastRetry(p Provider, attempts int) *retrier {
	r := WithRetry(p, RetryPolicy{Attempts: attempts, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2}).(*retrier)
	r.sleep = func(context.Context, time.Duration) error { return nil }
	return r
}

func TestRetry(t *testing.T) {
	down := Reply{Err: &UnavailableError{Err: errors.New("down")}}
	limited := Reply{Err: &RateLimitError{Err: errors.New("429")}}
	bad := Reply{Err: &BadOutputError{Err: errors.New("junk")}}
	trunc := Reply{Err: &TruncatedError{}}
	cancelled := Reply{Err: context.Canceled}

	tests := []struct {
		name      string
		script    []Reply
		wantErr   bool
		wantCalls int
	}{
		{"first try", []Reply{okReply}, false, 1},
		{"outage then ok", []Reply{down, okReply}, false, 2},
		{"rate limit then ok", []Reply{limited, okReply}, false, 2},
		{"all attempts fail", []Reply{down, down, down, okReply}, true, 3},
		{"bad output retried once", []Reply{bad, okReply}, false, 2},
		{"bad output twice gives up", []Reply{bad, bad, okReply}, true, 2},
		{"truncation not retried", []Reply{trunc, okReply}, true, 1},
		{"cancellation not retried", []Reply{cancelled, okReply}, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScripted(tt.script...)
			_, err := fastRetry(s, 3).Complete(context.Background(), Ask("", "x"))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got := len(s.Prompts()); got != tt.wantCalls {
				t.Errorf("calls = %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestRetryStopsWhenSleepInterrupted(t *testing.T) {
	s := NewScripted(Reply{Err: &UnavailableError{}}, okReply)
	r := fastRetry(s, 3)
	r.sleep = func(context.Context, time.Duration) error { return context.Canceled }

	_, err := r.Complete(context.Background(), Ask("", "x"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestRetryDelay(t *testing.T) {
	r := &retrier{policy: RetryPolicy{BaseDelay: 100 * time.Millisecond, MaxDelay: 300 * time.Millisecond, Multiplier: 2}}

	for attempt, want := range []time.Duration{100, 200, 300, 300} {
		want *= time.Millisecond
		got := r.delay(attempt, &UnavailableError{})
		lo, hi := time.Duration(float64(want)*0.8), time.Duration(float64(want)*1.2)
		if got < lo || got > hi {
			t.Errorf("attempt %d: delay %v outside [%v, %v]", attempt, got, lo, hi)
		}
	}

	if got := r.delay(0, &RateLimitError{RetryAfter: 7 * time.Second}); got != 7*time.Second {
		t.Errorf("rate limit delay = %v, want 7s", got)
	}
}

func TestWithTimeout(t *testing.T) {
	slow := &blocking{}
	p := WithTimeout(slow, 10*time.Millisecond)
	_, err := p.Complete(context.Background(), Ask("", "x"))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v, want deadline exceeded", err)
	}
	if WithTimeout(slow, 0) != Provider(slow) {
		t.Error("zero timeout should return the provider unchanged")
	}
}

type blocking struct{}

func (*blocking) Name() string  { return "blocking" }
func (*blocking) Model() string { return "blocking" }
func (*blocking) Complete(ctx context.Context, _ Prompt) (*Completion, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
