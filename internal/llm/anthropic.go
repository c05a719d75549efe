package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Anthropic talks to the Messages API.
type Anthropic struct {
	client anthropic.Client
	model  string
}

// NewAnthropic returns a provider for model. Extra request options are
// appended after the API key.
func NewAnthropic(apiKey, model string, opts ...option.RequestOption) *Anthropic {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Anthropic{client: anthropic.NewClient(opts...), model: model}
}

func (a *Anthropic) Name() string  { return ProviderAnthropic }
func (a *Anthropic) Model() string { return a.model }

func (a *Anthropic) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(p.MaxTokens),
		Messages:  make([]anthropic.MessageParam, 0, len(p.Turns)),
	}
	for _, t := range p.Turns {
		role := anthropic.MessageParamRoleUser
		if t.Speaker == SpeakerAssistant {
			role = anthropic.MessageParamRoleAssistant
		}
		params.Messages = append(params.Messages, anthropic.MessageParam{
			Role:    role,
			Content: []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(t.Text)},
		})
	}
	if p.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: p.System}}
	}
	if p.Temperature > 0 {
		params.Temperature = anthropic.Float(p.Temperature)
	}
	if p.Format != nil {
		params.OutputConfig = anthropic.OutputConfigParam{
			Format: anthropic.JSONOutputFormatParam{Schema: p.Format.Schema},
		}
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return nil, statusError(apiErr.StatusCode, err)
		}
		return nil, &UnavailableError{Err: err}
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return nil, &BadOutputError{Err: fmt.Errorf("anthropic reply has no text block")}
	}

	c := &Completion{
		JSON:   json.RawMessage(text),
		Tokens: TokenUsage{Input: int(msg.Usage.InputTokens), Output: int(msg.Usage.OutputTokens)},
		Model:  string(msg.Model),
		Finish: "end",
	}
	if msg.StopReason == anthropic.StopReasonMaxTokens {
		c.Finish = "max_tokens"
	}
	return finish(p, c)
}
