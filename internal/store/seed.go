package store

import (
	"context"
	"errors"
	"fmt"
)

// GroupSeed describes a support group that should exist.
type GroupSeed struct {
	Name        string
	Category    string
	Description string
}

var defaultAnnouncements = []Announcement{
	{
		Title:    "Welcome to Serenity",
		Content:  "A safe space for healing, growth, and community support. Your mental health journey matters.",
		IsActive: true,
	},
	{
		Title:    "Mental Health Awareness Month",
		Content:  "This month, we're focusing on breaking stigma and promoting open conversations about mental wellness.",
		IsActive: true,
	},
	{
		Title:    "New Features Coming Soon",
		Content:  "Serenity Journal is launching soon with enhanced reflection tools and guided healing exercises.",
		IsActive: true,
	},
}

// SeedDefaults inserts the default announcements when none exist and
// creates any missing support group from groups. It is idempotent.
func (s *Store) SeedDefaults(ctx context.Context, groups []GroupSeed) error {
	return s.InTx(ctx, func(r Repos) error {
		n, err := r.Announcements.Count(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			for i := range defaultAnnouncements {
				a := defaultAnnouncements[i]
				if err := r.Announcements.Create(ctx, &a); err != nil {
					return err
				}
			}
		}

		for _, gs := range groups {
			_, err := r.Groups.ByName(ctx, gs.Name)
			if err == nil {
				continue
			}
			if !errors.Is(err, ErrNotFound) {
				return fmt.Errorf("look up group %q: %w", gs.Name, err)
			}
			g := GroupChat{Name: gs.Name, Category: gs.Category, Description: gs.Description}
			if err := r.Groups.Create(ctx, &g); err != nil {
				return err
			}
		}
		return nil
	})
}
