package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// User is a registered, pseudonymous member.
type User struct {
	ent.Schema
}

func (User) Mixin() []ent.Mixin {
	return []ent.Mixin{TimeMixin{}}
}

func (User) Fields() []ent.Field {
	return []ent.Field{
		field.String("nickname").NotEmpty().Unique().MaxLen(64),
		field.String("email").Optional().Nillable().Unique().MaxLen(120),
		field.String("password_hash").NotEmpty().Sensitive(),
		field.String("category").Optional().Nillable().MaxLen(20), // grey, blue, green, yellow, pink
		field.Bool("assessment_completed").Default(false),
		field.Int("group_chat_id").Optional().Nillable(),
		field.Bool("dark_mode").Default(false),
	}
}
