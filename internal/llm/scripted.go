package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// Reply is one scripted outcome for Scripted.
type Reply struct {
	JSON   json.RawMessage
	Tokens TokenUsage
	Err    error
}

// Scripted plays back replies in order and records every prompt. When the
// script runs out it returns UnavailableError. Formatted replies are
// validated like a real backend's.
type Scripted struct {
	mu      sync.Mutex
	replies []Reply
	prompts []Prompt
}

// NewScripted returns a provider that will play replies in order.
func NewScripted(replies ...Reply) *Scripted {
	return &Scripted{replies: replies}
}

func (s *Scripted) Name() string  { return ProviderMock }
func (s *Scripted) Model() string { return "scripted" }

func (s *Scripted) Complete(_ context.Context, p Prompt) (*Completion, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, p)
	if len(s.replies) == 0 {
		s.mu.Unlock()
		return nil, &UnavailableError{}
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	s.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	return finish(p, &Completion{JSON: r.JSON, Tokens: r.Tokens, Model: "scripted", Finish: "end"})
}

// Push appends replies to the script.
func (s *Scripted) Push(replies ...Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, replies...)
}

// Prompts returns every prompt received so far.
func (s *Scripted) Prompts() []Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Prompt(nil), s.prompts...)
}
