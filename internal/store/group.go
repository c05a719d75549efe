package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var groupColumns = []string{colID, "name", "category", "description", colCreatedAt}

// groupRepo implements GroupRepo.
type groupRepo struct {
	q querier
}

func (r *groupRepo) Create(ctx context.Context, g *GroupChat) error {
	g.CreatedAt = now()
	id, err := insert(ctx, r.q, builder.Insert(TableGroups).
		Columns("name", "category", "description", colCreatedAt).
		Values(g.Name, g.Category, g.Description, g.CreatedAt))
	if err != nil {
		return fmt.Errorf("create group %q: %w", g.Name, err)
	}
	g.ID = id
	return nil
}

func (r *groupRepo) ByID(ctx context.Context, id int) (*GroupChat, error) {
	return queryOne(ctx, r.q, r.selectWhere(entsql.EQ(colID, id)).Limit(1), scanGroup)
}

func (r *groupRepo) ByName(ctx context.Context, name string) (*GroupChat, error) {
	return queryOne(ctx, r.q, r.selectWhere(entsql.EQ("name", name)).Limit(1), scanGroup)
}

func (r *groupRepo) List(ctx context.Context) ([]GroupChat, error) {
	sel := builder.Select(groupColumns...).
		From(entsql.Table(TableGroups)).
		OrderBy(entsql.Asc(colID))
	groups, err := queryAll(ctx, r.q, sel, func(s scanner) (GroupChat, error) {
		g, err := scanGroup(s)
		if err != nil {
			return GroupChat{}, err
		}
		return *g, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

func (r *groupRepo) selectWhere(p *entsql.Predicate) *entsql.Selector {
	return builder.Select(groupColumns...).
		From(entsql.Table(TableGroups)).
		Where(p)
}

func scanGroup(s scanner) (*GroupChat, error) {
	var g GroupChat
	if err := s.Scan(&g.ID, &g.Name, &g.Category, &g.Description, &g.CreatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}
