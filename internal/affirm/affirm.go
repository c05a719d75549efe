// Package affirm serves short affirmations, personalised by a language
// model when one is configured.
package affirm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/serenity-circle/serenity/internal/assessment"
	"github.com/serenity-circle/serenity/internal/llm"
)

var static = [...]string{
	"You are stronger than you know. 💪",
	"Your feelings are valid and important. 💝",
	"Healing is not linear, and that's okay. 🌱",
	"You deserve love and compassion. 💕",
	"Every small step forward matters. 👣",
	"You are worthy of support and care. 🤗",
	"Your story matters, and so do you. 📖",
	"It's okay to not be okay sometimes. 🫂",
	"You have survived difficult times before. 🌟",
	"Your courage to seek help is inspiring. 🦋",
}

// Static returns the built-in affirmations.
func Static() []string {
	return append([]string(nil), static[:]...)
}

// Affirmation is one message for a member.
type Affirmation struct {
	Text      string              `json:"text"`
	Category  assessment.Category `json:"category"`
	Generated bool                `json:"generated"`
}

var format = &llm.Format{
	Name:        "affirmation",
	Description: "A single supportive affirmation",
	Schema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"affirmation": map[string]any{
				"type":        "string",
				"description": "One or two gentle sentences addressed to the reader",
				"minLength":   1,
				"maxLength":   280,
			},
		},
		"required":             []string{"affirmation"},
		"additionalProperties": false,
	},
}

const system = `You write short affirmations for members of a peer mental-health community.
Be warm and gentle. Never give medical advice, diagnoses or instructions.
Address the reader directly in one or two sentences.`

// Source hands out affirmations. The zero value is not usable; call New.
type Source struct {
	provider llm.Provider
	log      *zap.Logger
	cursor   atomic.Uint64
}

// New returns a Source. provider may be nil, in which case only the
// built-in affirmations are used.
func New(provider llm.Provider, log *zap.Logger) *Source {
	if log == nil {
		log = zap.NewNop()
	}
	return &Source{provider: provider, log: log}
}

// Next returns an affirmation suited to category c. Any model failure falls
// back to the next built-in affirmation in rotation.
func (s *Source) Next(ctx context.Context, c assessment.Category) Affirmation {
	p := assessment.Profile(c)
	if s.provider != nil {
		text, err := s.generate(ctx, p)
		if err == nil {
			return Affirmation{Text: text, Category: p.Category, Generated: true}
		}
		if !errors.Is(err, context.Canceled) {
			s.log.Warn("affirmation generation failed, using built-in", zap.Error(err))
		}
	}
	i := s.cursor.Add(1) - 1
	return Affirmation{Text: static[i%uint64(len(static))], Category: p.Category}
}

func (s *Source) generate(ctx context.Context, p assessment.CategoryProfile) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeAffirmation)
	prompt := llm.Ask(system, fmt.Sprintf(
		"The reader belongs to the %s community (%s). They are working on: %s. Write one affirmation for them.",
		p.Name, strings.Join(p.Traits, ", "), p.MentalHealthFocus,
	))
	prompt.Format = format
	prompt.MaxTokens = 200
	prompt.Temperature = 0.8

	c, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	out, err := llm.Decode[struct {
		Affirmation string `json:"affirmation"`
	}](c)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(out.Affirmation)
	if text == "" {
		return "", fmt.Errorf("empty affirmation")
	}
	return text, nil
}
