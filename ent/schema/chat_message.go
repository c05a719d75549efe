package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ChatMessage is a message posted to a group chat.
type ChatMessage struct {
	ent.Schema
}

func (ChatMessage) Mixin() []ent.Mixin {
	return []ent.Mixin{OwnedMixin{}, TimeMixin{}}
}

func (ChatMessage) Fields() []ent.Field {
	return []ent.Field{
		field.Int("group_chat_id").Immutable(),
		field.Text("content").NotEmpty(),
		field.Bool("is_moderated").Default(false),
	}
}

func (ChatMessage) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("group_chat_id", "created_at"),
	}
}
