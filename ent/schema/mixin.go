package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// TimeMixin provides the creation timestamp shared by every record type.
type TimeMixin struct {
	mixin.Schema
}

func (TimeMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Time("created_at").
			Default(time.Now).
			Immutable().
			Comment("UTC wall-clock time the record was created"),
	}
}

func (TimeMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("created_at"),
	}
}

// OwnedMixin marks records that belong to a single user.
type OwnedMixin struct {
	mixin.Schema
}

func (OwnedMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int("user_id").Immutable(),
	}
}

func (OwnedMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id"),
	}
}
