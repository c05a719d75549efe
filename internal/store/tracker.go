package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// trackerRepo implements TrackerRepo.
type trackerRepo struct {
	q querier
}

func (r *trackerRepo) AddMood(ctx context.Context, e *MoodEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now()
	}
	id, err := insert(ctx, r.q, builder.Insert(TableMoods).
		Columns(colUserID, "mood_level", "mood_type", "notes", colCreatedAt).
		Values(e.UserID, e.MoodLevel, e.MoodType, e.Notes, e.CreatedAt.UTC()))
	if err != nil {
		return fmt.Errorf("save mood entry: %w", err)
	}
	e.ID = id
	return nil
}

func (r *trackerRepo) Moods(ctx context.Context, userID int, opts QueryOpts) ([]MoodEntry, error) {
	sel := builder.Select(colID, colUserID, "mood_level", "mood_type", "notes", colCreatedAt).
		From(entsql.Table(TableMoods)).
		Where(entsql.EQ(colUserID, userID)).
		OrderBy(entsql.Desc(colCreatedAt), entsql.Desc(colID))
	out, err := queryAll(ctx, r.q, applyOpts(sel, opts), func(s scanner) (MoodEntry, error) {
		var e MoodEntry
		err := s.Scan(&e.ID, &e.UserID, &e.MoodLevel, &e.MoodType, &e.Notes, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("query moods: %w", err)
	}
	return out, nil
}

func (r *trackerRepo) AddEmotion(ctx context.Context, e *EmotionEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now()
	}
	id, err := insert(ctx, r.q, builder.Insert(TableEmotions).
		Columns(colUserID, "emotion_name", "intensity", "trigger", colCreatedAt).
		Values(e.UserID, e.EmotionName, e.Intensity, e.Trigger, e.CreatedAt.UTC()))
	if err != nil {
		return fmt.Errorf("save emotion entry: %w", err)
	}
	e.ID = id
	return nil
}

func (r *trackerRepo) Emotions(ctx context.Context, userID int, opts QueryOpts) ([]EmotionEntry, error) {
	sel := builder.Select(colID, colUserID, "emotion_name", "intensity", "trigger", colCreatedAt).
		From(entsql.Table(TableEmotions)).
		Where(entsql.EQ(colUserID, userID)).
		OrderBy(entsql.Desc(colCreatedAt), entsql.Desc(colID))
	out, err := queryAll(ctx, r.q, applyOpts(sel, opts), func(s scanner) (EmotionEntry, error) {
		var e EmotionEntry
		err := s.Scan(&e.ID, &e.UserID, &e.EmotionName, &e.Intensity, &e.Trigger, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("query emotions: %w", err)
	}
	return out, nil
}

func (r *trackerRepo) AddHabit(ctx context.Context, e *HabitEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now()
	}
	id, err := insert(ctx, r.q, builder.Insert(TableHabits).
		Columns(colUserID, "habit_name", "completed", "streak_count", colCreatedAt).
		Values(e.UserID, e.HabitName, e.Completed, e.StreakCount, e.CreatedAt.UTC()))
	if err != nil {
		return fmt.Errorf("save habit entry: %w", err)
	}
	e.ID = id
	return nil
}

func (r *trackerRepo) UpdateHabit(ctx context.Context, id int, completed bool, streak int) error {
	err := update(ctx, r.q, builder.Update(TableHabits).
		Set("completed", completed).
		Set("streak_count", streak).
		Where(entsql.EQ(colID, id)))
	if err != nil {
		return fmt.Errorf("update habit entry %d: %w", id, err)
	}
	return nil
}

func (r *trackerRepo) HabitIn(ctx context.Context, userID int, name string, opts QueryOpts) (*HabitEntry, error) {
	opts.Limit = 1
	sel := r.habitSelect(userID).Where(entsql.EQ("habit_name", name))
	return queryOne(ctx, r.q, applyOpts(sel, opts), func(s scanner) (*HabitEntry, error) {
		e, err := scanHabit(s)
		return &e, err
	})
}

func (r *trackerRepo) Habits(ctx context.Context, userID int, opts QueryOpts) ([]HabitEntry, error) {
	out, err := queryAll(ctx, r.q, applyOpts(r.habitSelect(userID), opts), scanHabit)
	if err != nil {
		return nil, fmt.Errorf("query habits: %w", err)
	}
	return out, nil
}

func (r *trackerRepo) habitSelect(userID int) *entsql.Selector {
	return builder.Select(colID, colUserID, "habit_name", "completed", "streak_count", colCreatedAt).
		From(entsql.Table(TableHabits)).
		Where(entsql.EQ(colUserID, userID)).
		OrderBy(entsql.Desc(colCreatedAt), entsql.Desc(colID))
}

func scanHabit(s scanner) (HabitEntry, error) {
	var e HabitEntry
	err := s.Scan(&e.ID, &e.UserID, &e.HabitName, &e.Completed, &e.StreakCount, &e.CreatedAt)
	return e, err
}
