package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI talks to the chat completions API or any compatible endpoint.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI returns a provider for model. baseURL may be empty.
func NewOpenAI(apiKey, model, baseURL string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: model}
}

func (o *OpenAI) Name() string  { return ProviderOpenAI }
func (o *OpenAI) Model() string { return o.model }

func (o *OpenAI) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	req := openai.ChatCompletionRequest{
		Model:               o.model,
		MaxCompletionTokens: p.MaxTokens,
		Temperature:         float32(p.Temperature),
	}
	if p.System != "" {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: p.System,
		})
	}
	for _, t := range p.Turns {
		role := openai.ChatMessageRoleUser
		if t.Speaker == SpeakerAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: role, Content: t.Text})
	}
	if p.Format != nil {
		schema, err := json.Marshal(p.Format.Schema)
		if err != nil {
			return nil, fmt.Errorf("marshal schema %s: %w", p.Format.Name, err)
		}
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        p.Format.Name,
				Description: p.Format.Description,
				Schema:      json.RawMessage(schema),
				Strict:      true,
			},
		}
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, statusError(apiErr.HTTPStatusCode, err)
		}
		return nil, &UnavailableError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &BadOutputError{Err: fmt.Errorf("openai reply has no choices")}
	}

	choice := resp.Choices[0]
	c := &Completion{
		JSON:   json.RawMessage(choice.Message.Content),
		Tokens: TokenUsage{Input: resp.Usage.PromptTokens, Output: resp.Usage.CompletionTokens},
		Model:  resp.Model,
		Finish: "end",
	}
	if choice.FinishReason == openai.FinishReasonLength {
		c.Finish = "max_tokens"
	}
	return finish(p, c)
}
