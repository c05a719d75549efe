// Package llm wraps the hosted language model APIs behind one Provider
// interface. Every provider asks for JSON shaped by a Format and checks the
// reply against its schema before returning it.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider completes a prompt.
type Provider interface {
	Complete(ctx context.Context, p Prompt) (*Completion, error)

	// Name identifies the backend, e.g. "anthropic".
	Name() string

	// Model is the configured model id.
	Model() string
}

// Prompt is a single completion request.
type Prompt struct {
	System string
	Turns  []Turn

	// Format, when set, asks for a JSON object matching its schema.
	Format *Format

	MaxTokens   int
	Temperature float64
}

// Speaker is the author of a turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Turn is one message of the conversation.
type Turn struct {
	Speaker Speaker
	Text    string
}

// Ask builds a one-turn prompt.
func Ask(system, text string) Prompt {
	return Prompt{System: system, Turns: []Turn{{Speaker: SpeakerUser, Text: text}}}
}

// Format is a named JSON schema for structured output.
type Format struct {
	Name        string
	Description string
	Schema      map[string]any
}

// Completion is a provider reply.
type Completion struct {
	// JSON is the reply body. It has been validated when the prompt had a Format.
	JSON   json.RawMessage
	Tokens TokenUsage
	Model  string

	// Finish is "end" or "max_tokens".
	Finish string
}

// TokenUsage counts tokens for one call.
type TokenUsage struct {
	Input  int
	Output int
}

// Total is Input plus Output.
func (u TokenUsage) Total() int { return u.Input + u.Output }

// Decode unmarshals a completion into T.
func Decode[T any](c *Completion) (T, error) {
	var v T
	if c == nil {
		return v, fmt.Errorf("decode completion: nil")
	}
	if err := json.Unmarshal(c.JSON, &v); err != nil {
		return v, &BadOutputError{Raw: c.JSON, Err: err}
	}
	return v, nil
}
