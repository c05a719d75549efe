package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Announcement is a site-wide notice shown on the landing page.
type Announcement struct {
	ent.Schema
}

func (Announcement) Mixin() []ent.Mixin {
	return []ent.Mixin{TimeMixin{}}
}

func (Announcement) Fields() []ent.Field {
	return []ent.Field{
		field.String("title").NotEmpty().MaxLen(200),
		field.Text("content").NotEmpty(),
		field.Bool("is_active").Default(true),
	}
}
