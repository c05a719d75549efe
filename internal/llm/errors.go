package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrDisabled is returned by New when no provider is configured.
var ErrDisabled = errors.New("llm provider disabled")

// RateLimitError is a 429 from the provider.
type RateLimitError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// UnavailableError covers 5xx responses and transport failures.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return "llm provider unavailable"
	}
	return fmt.Sprintf("llm provider unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// BadOutputError means the reply was not JSON or did not match the schema.
type BadOutputError struct {
	Raw json.RawMessage
	Err error
}

func (e *BadOutputError) Error() string {
	return fmt.Sprintf("bad llm output: %v", e.Err)
}

func (e *BadOutputError) Unwrap() error { return e.Err }

// TruncatedError means generation stopped at the token limit.
type TruncatedError struct {
	Raw json.RawMessage
}

func (e *TruncatedError) Error() string {
	return "llm output truncated at max tokens"
}

// statusError classifies an HTTP status from a provider SDK error.
func statusError(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &RateLimitError{Err: err}
	}
	return &UnavailableError{Err: err}
}
