package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// announcementRepo implements AnnouncementRepo.
type announcementRepo struct {
	q querier
}

func (r *announcementRepo) Create(ctx context.Context, a *Announcement) error {
	a.CreatedAt = now()
	id, err := insert(ctx, r.q, builder.Insert(TableAnnouncements).
		Columns("title", "content", "is_active", colCreatedAt).
		Values(a.Title, a.Content, a.IsActive, a.CreatedAt))
	if err != nil {
		return fmt.Errorf("save announcement: %w", err)
	}
	a.ID = id
	return nil
}

func (r *announcementRepo) Active(ctx context.Context, limit int) ([]Announcement, error) {
	sel := builder.Select(colID, "title", "content", "is_active", colCreatedAt).
		From(entsql.Table(TableAnnouncements)).
		Where(entsql.EQ("is_active", true)).
		OrderBy(entsql.Desc(colCreatedAt), entsql.Desc(colID))
	if limit > 0 {
		sel.Limit(limit)
	}
	out, err := queryAll(ctx, r.q, sel, func(s scanner) (Announcement, error) {
		var a Announcement
		err := s.Scan(&a.ID, &a.Title, &a.Content, &a.IsActive, &a.CreatedAt)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("query announcements: %w", err)
	}
	return out, nil
}

func (r *announcementRepo) Count(ctx context.Context) (int, error) {
	query, args := builder.Select(entsql.Count("*")).From(entsql.Table(TableAnnouncements)).Query()
	var n int
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count announcements: %w", err)
	}
	return n, nil
}
