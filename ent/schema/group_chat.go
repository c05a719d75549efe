package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// GroupChat is a peer-support group; every category routes to one.
type GroupChat struct {
	ent.Schema
}

func (GroupChat) Mixin() []ent.Mixin {
	return []ent.Mixin{TimeMixin{}}
}

func (GroupChat) Fields() []ent.Field {
	return []ent.Field{
		field.String("name").NotEmpty().Unique().MaxLen(100),
		field.String("category").NotEmpty().MaxLen(20),
		field.Text("description").Optional().Default(""),
	}
}
