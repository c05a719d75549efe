package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Gemini talks to the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini returns a provider for model.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Name() string  { return ProviderGemini }
func (g *Gemini) Model() string { return g.model }

func (g *Gemini) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	cfg := &genai.GenerateContentConfig{MaxOutputTokens: int32(p.MaxTokens)}
	if p.Temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(p.Temperature))
	}
	if p.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(p.System, genai.RoleUser)
	}
	if p.Format != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = geminiSchema(p.Format.Schema)
	}

	contents := make([]*genai.Content, 0, len(p.Turns))
	for _, t := range p.Turns {
		role := genai.Role(genai.RoleUser)
		if t.Speaker == SpeakerAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(t.Text, role))
	}

	res, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		var apiErr *genai.APIError
		if errors.As(err, &apiErr) {
			return nil, statusError(apiErr.Code, err)
		}
		return nil, &UnavailableError{Err: err}
	}

	c := &Completion{JSON: json.RawMessage(res.Text()), Model: g.model, Finish: "end"}
	if res.UsageMetadata != nil {
		c.Tokens = TokenUsage{
			Input:  int(res.UsageMetadata.PromptTokenCount),
			Output: int(res.UsageMetadata.CandidatesTokenCount),
		}
	}
	if len(res.Candidates) > 0 && res.Candidates[0].FinishReason == genai.FinishReasonMaxTokens {
		c.Finish = "max_tokens"
	}
	return finish(p, c)
}

// geminiSchema converts the subset of JSON Schema used by our formats.
func geminiSchema(def map[string]any) *genai.Schema {
	s := &genai.Schema{}
	if t, ok := def["type"].(string); ok {
		s.Type = geminiTypes[t]
	}
	if d, ok := def["description"].(string); ok {
		s.Description = d
	}
	if props, ok := def["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, v := range props {
			if sub, ok := v.(map[string]any); ok {
				s.Properties[name] = geminiSchema(sub)
			}
		}
	}
	s.Required = stringList(def["required"])
	s.Enum = stringList(def["enum"])
	if items, ok := def["items"].(map[string]any); ok {
		s.Items = geminiSchema(items)
	}
	return s
}

var geminiTypes = map[string]genai.Type{
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
	"array":   genai.TypeArray,
	"object":  genai.TypeObject,
}

// stringList accepts []string or []any of strings.
func stringList(v any) []string {
	switch l := v.(type) {
	case []string:
		return l
	case []any:
		var out []string
		for _, e := range l {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
