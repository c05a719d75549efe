package wellness

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/serenity-circle/serenity/internal/store"
)

const (
	defaultLevel    = 5
	defaultMoodType = "neutral"
)

// TrackMood records a mood check-in. A zero level means the default of 5;
// other levels are clamped to 1..10.
func (s *Service) TrackMood(ctx context.Context, userID, level int, moodType, notes string) (*store.MoodEntry, error) {
	if level == 0 {
		level = defaultLevel
	}
	moodType = strings.TrimSpace(moodType)
	if moodType == "" {
		moodType = defaultMoodType
	}
	e := &store.MoodEntry{
		UserID:    userID,
		MoodLevel: clamp(level, 1, 10),
		MoodType:  moodType,
		Notes:     strings.TrimSpace(notes),
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Repos().Trackers.AddMood(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// TrackEmotion records an emotion check-in with intensity clamped to 1..10.
func (s *Service) TrackEmotion(ctx context.Context, userID int, name string, intensity int, trigger string) (*store.EmotionEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: emotion name is required", ErrInvalidInput)
	}
	if intensity == 0 {
		intensity = defaultLevel
	}
	e := &store.EmotionEntry{
		UserID:      userID,
		EmotionName: name,
		Intensity:   clamp(intensity, 1, 10),
		Trigger:     strings.TrimSpace(trigger),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.Repos().Trackers.AddEmotion(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// TrackHabit records whether a habit was completed today. There is at most
// one entry per member, habit and UTC calendar day; tracking again the same
// day overwrites it. The streak counts consecutive completed days ending
// today and is zero when today is not completed.
func (s *Service) TrackHabit(ctx context.Context, userID int, name string, completed bool) (*store.HabitEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: habit name is required", ErrInvalidInput)
	}

	now := s.now().UTC()
	today := dayWindow(now)
	yesterday := dayWindow(now.AddDate(0, 0, -1))

	var entry *store.HabitEntry
	err := s.store.InTx(ctx, func(r store.Repos) error {
		streak := 0
		if completed {
			streak = 1
			prev, err := r.Trackers.HabitIn(ctx, userID, name, yesterday)
			switch {
			case err == nil && prev.Completed:
				streak = prev.StreakCount + 1
			case err != nil && !errors.Is(err, store.ErrNotFound):
				return err
			}
		}

		existing, err := r.Trackers.HabitIn(ctx, userID, name, today)
		if err == nil {
			if err := r.Trackers.UpdateHabit(ctx, existing.ID, completed, streak); err != nil {
				return err
			}
			existing.Completed = completed
			existing.StreakCount = streak
			entry = existing
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		entry = &store.HabitEntry{
			UserID:      userID,
			HabitName:   name,
			Completed:   completed,
			StreakCount: streak,
			CreatedAt:   now,
		}
		return r.Trackers.AddHabit(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// dayWindow spans the UTC calendar day containing t.
func dayWindow(t time.Time) store.QueryOpts {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return store.QueryOpts{Since: start, Until: start.AddDate(0, 0, 1)}
}
