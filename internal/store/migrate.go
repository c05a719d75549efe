package store

// Schema migration.
//
// Tables are derived from the declarative entity definitions in ent/schema:
// every mixin and schema field becomes a column, every index descriptor an
// index, and ent's migrator diffs the result against the live database.
// Each table also gets an auto-increment integer "id" primary key.

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	sqlschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/serenity-circle/serenity/ent/schema"
)

// Table names.
const (
	TableUsers         = "users"
	TableAssessments   = "assessment_results"
	TableGroups        = "group_chats"
	TableMessages      = "chat_messages"
	TableMoods         = "mood_entries"
	TableHabits        = "habit_entries"
	TableEmotions      = "emotion_entries"
	TablePoems         = "poems"
	TableAnnouncements = "announcements"
	TableLLMEvents     = "llm_request_events"
)

type entity struct {
	table string
	def   ent.Interface
}

var entities = []entity{
	{TableUsers, entschema.User{}},
	{TableAssessments, entschema.AssessmentResult{}},
	{TableGroups, entschema.GroupChat{}},
	{TableMessages, entschema.ChatMessage{}},
	{TableMoods, entschema.MoodEntry{}},
	{TableHabits, entschema.HabitEntry{}},
	{TableEmotions, entschema.EmotionEntry{}},
	{TablePoems, entschema.Poem{}},
	{TableAnnouncements, entschema.Announcement{}},
	{TableLLMEvents, entschema.LLMRequestEvent{}},
}

// migrate creates or alters every table so it matches ent/schema.
func migrate(ctx context.Context, drv dialect.Driver) error {
	tables, err := buildTables()
	if err != nil {
		return err
	}
	m, err := sqlschema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

func buildTables() ([]*sqlschema.Table, error) {
	tables := make([]*sqlschema.Table, 0, len(entities))
	for _, e := range entities {
		t, err := buildTable(e.table, e.def)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", e.table, err)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func buildTable(name string, def ent.Interface) (*sqlschema.Table, error) {
	t := sqlschema.NewTable(name).
		AddPrimary(&sqlschema.Column{Name: "id", Type: field.TypeInt, Increment: true})

	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range def.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, def.Fields()...)
	indexes = append(indexes, def.Indexes()...)

	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("field %s: %w", d.Name, d.Err)
		}
		col := &sqlschema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Nullable: d.Optional,
			Unique:   d.Unique,
		}
		if d.Size > 0 {
			col.Size = int64(d.Size)
		}
		switch v := d.Default.(type) {
		case bool, int, int64, string:
			col.Default = v
		}
		t.AddColumn(col)
	}

	for _, ix := range indexes {
		d := ix.Descriptor()
		t.AddIndex(name+"_"+strings.Join(d.Fields, "_"), d.Unique, d.Fields)
	}
	return t, nil
}
