package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// AssessmentResult records one completed questionnaire and its outcome.
type AssessmentResult struct {
	ent.Schema
}

func (AssessmentResult) Mixin() []ent.Mixin {
	return []ent.Mixin{OwnedMixin{}, TimeMixin{}}
}

func (AssessmentResult) Fields() []ent.Field {
	return []ent.Field{
		field.Text("responses").NotEmpty(), // JSON array of {question_id, selected_option}
		field.String("category").NotEmpty().MaxLen(20),
		field.Text("suggested_support").Optional().Default(""),
	}
}
