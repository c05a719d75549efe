package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"affirmation": map[string]any{"type": "string", "description": "one sentence"},
			"tone":        map[string]any{"type": "string", "enum": []any{"gentle", "bright"}},
			"tags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []string{"affirmation"},
	}

	s := geminiSchema(def)
	if s.Type != genai.TypeObject {
		t.Fatalf("type = %s, want OBJECT", s.Type)
	}
	if len(s.Properties) != 3 {
		t.Fatalf("got %d properties, want 3", len(s.Properties))
	}
	if got := s.Properties["affirmation"]; got.Type != genai.TypeString || got.Description != "one sentence" {
		t.Errorf("affirmation = %+v", got)
	}
	if len(s.Properties["tone"].Enum) != 2 {
		t.Errorf("tone enum = %v", s.Properties["tone"].Enum)
	}
	if s.Properties["tags"].Items.Type != genai.TypeString {
		t.Errorf("tags items = %s", s.Properties["tags"].Items.Type)
	}
	if len(s.Required) != 1 || s.Required[0] != "affirmation" {
		t.Errorf("required = %v", s.Required)
	}
}
