package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Poem is a journal entry; private by default.
type Poem struct {
	ent.Schema
}

func (Poem) Mixin() []ent.Mixin {
	return []ent.Mixin{OwnedMixin{}, TimeMixin{}}
}

func (Poem) Fields() []ent.Field {
	return []ent.Field{
		field.String("title").Optional().Default("").MaxLen(200),
		field.Text("content").NotEmpty(),
		field.Bool("is_private").Default(true),
		field.Time("updated_at").Default(time.Now).UpdateDefault(time.Now),
	}
}

func (Poem) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "updated_at"),
	}
}
