package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// MoodEntry is a self-reported mood on a 1-10 scale.
type MoodEntry struct {
	ent.Schema
}

func (MoodEntry) Mixin() []ent.Mixin {
	return []ent.Mixin{OwnedMixin{}, TimeMixin{}}
}

func (MoodEntry) Fields() []ent.Field {
	return []ent.Field{
		field.Int("mood_level").Range(1, 10),
		field.String("mood_type").NotEmpty().MaxLen(50),
		field.Text("notes").Optional().Default(""),
	}
}

// HabitEntry records whether a named habit was completed on a given day.
type HabitEntry struct {
	ent.Schema
}

func (HabitEntry) Mixin() []ent.Mixin {
	return []ent.Mixin{OwnedMixin{}, TimeMixin{}}
}

func (HabitEntry) Fields() []ent.Field {
	return []ent.Field{
		field.String("habit_name").NotEmpty().MaxLen(100),
		field.Bool("completed").Default(false),
		field.Int("streak_count").Default(0),
	}
}

func (HabitEntry) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "habit_name"),
	}
}

// EmotionEntry is a named emotion with an intensity and optional trigger.
type EmotionEntry struct {
	ent.Schema
}

func (EmotionEntry) Mixin() []ent.Mixin {
	return []ent.Mixin{OwnedMixin{}, TimeMixin{}}
}

func (EmotionEntry) Fields() []ent.Field {
	return []ent.Field{
		field.String("emotion_name").NotEmpty().MaxLen(50),
		field.Int("intensity").Range(1, 10),
		field.Text("trigger").Optional().Default(""),
	}
}
