package wellness

import (
	"context"

	"github.com/serenity-circle/serenity/internal/assessment"
	"github.com/serenity-circle/serenity/internal/store"
)

// Dashboard is a member's last week at a glance.
type Dashboard struct {
	Nickname string                     `json:"nickname"`
	DarkMode bool                       `json:"dark_mode"`
	Profile  assessment.CategoryProfile `json:"profile"`
	Moods    []store.MoodEntry          `json:"moods"`
	Habits   []store.HabitEntry         `json:"habits"`
	Emotions []store.EmotionEntry       `json:"emotions"`
	Poems    []store.Poem               `json:"poems"`
}

// Dashboard collects the member's check-ins from the past seven days and
// their most recently edited poems.
func (s *Service) Dashboard(ctx context.Context, userID int) (*Dashboard, error) {
	u, err := s.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.AssessmentCompleted {
		return nil, ErrAssessmentRequired
	}

	weekAgo := s.now().UTC().AddDate(0, 0, -7)
	r := s.store.Repos()
	d := &Dashboard{
		Nickname: u.Nickname,
		DarkMode: u.DarkMode,
		Profile:  assessment.ProfileFor(u.Category),
	}
	if d.Moods, err = r.Trackers.Moods(ctx, userID, store.QueryOpts{Since: weekAgo, Limit: 7}); err != nil {
		return nil, err
	}
	if d.Habits, err = r.Trackers.Habits(ctx, userID, store.QueryOpts{Since: weekAgo}); err != nil {
		return nil, err
	}
	if d.Emotions, err = r.Trackers.Emotions(ctx, userID, store.QueryOpts{Since: weekAgo, Limit: 5}); err != nil {
		return nil, err
	}
	if d.Poems, err = r.Poems.Recent(ctx, userID, 3); err != nil {
		return nil, err
	}
	return d, nil
}
