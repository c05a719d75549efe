package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LLMRequestEvent records a single LLM API call for cost and latency review.
type LLMRequestEvent struct {
	ent.Schema
}

func (LLMRequestEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{TimeMixin{}}
}

func (LLMRequestEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("provider").NotEmpty(),
		field.String("model").NotEmpty(),
		field.String("purpose").NotEmpty(), // affirmation
		field.Int("input_tokens").Default(0),
		field.Int("output_tokens").Default(0),
		field.Int64("latency_ms"),
		field.Bool("success"),
		field.String("error_message").Optional().Default(""),
	}
}

func (LLMRequestEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("purpose"),
	}
}
