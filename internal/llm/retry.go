package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

type retrier struct {
	inner  Provider
	policy RetryPolicy
	sleep  func(context.Context, time.Duration) error
}

// WithRetry retries rate limits and outages with jittered exponential
// backoff. A bad reply is retried once; truncation and cancellation are
// returned immediately.
func WithRetry(p Provider, policy RetryPolicy) Provider {
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}
	if policy.Multiplier < 1 {
		policy.Multiplier = 1
	}
	return &retrier{inner: p, policy: policy, sleep: sleepCtx}
}

func (r *retrier) Name() string  { return r.inner.Name() }
func (r *retrier) Model() string { return r.inner.Model() }

func (r *retrier) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	var (
		err        error
		badRetried bool
	)
	for attempt := range r.policy.Attempts {
		var c *Completion
		c, err = r.inner.Complete(ctx, p)
		if err == nil {
			return c, nil
		}
		if !retryable(err, &badRetried) || attempt == r.policy.Attempts-1 {
			return nil, err
		}
		if serr := r.sleep(ctx, r.delay(attempt, err)); serr != nil {
			return nil, serr
		}
	}
	return nil, err
}

func retryable(err error, badRetried *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var trunc *TruncatedError
	if errors.As(err, &trunc) {
		return false
	}
	var bad *BadOutputError
	if errors.As(err, &bad) {
		if *badRetried {
			return false
		}
		*badRetried = true
	}
	return true
}

// delay is BaseDelay*Multiplier^attempt capped at MaxDelay, with ±20%
// jitter. A rate limit's RetryAfter takes precedence.
func (r *retrier) delay(attempt int, err error) time.Duration {
	var rl *RateLimitError
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	d := float64(r.policy.BaseDelay)
	for range attempt {
		d *= r.policy.Multiplier
	}
	if r.policy.MaxDelay > 0 {
		d = min(d, float64(r.policy.MaxDelay))
	}
	d += d * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(max(d, 0))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type deadline struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout bounds each call, retries included, to timeout. A
// non-positive timeout returns p unchanged.
func WithTimeout(p Provider, timeout time.Duration) Provider {
	if timeout <= 0 {
		return p
	}
	return &deadline{inner: p, timeout: timeout}
}

func (d *deadline) Name() string  { return d.inner.Name() }
func (d *deadline) Model() string { return d.inner.Model() }

func (d *deadline) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.inner.Complete(ctx, p)
}
