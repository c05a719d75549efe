package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var poemColumns = []string{colID, colUserID, "title", "content", "is_private", colCreatedAt, "updated_at"}

// poemRepo implements PoemRepo.
type poemRepo struct {
	q querier
}

func (r *poemRepo) Create(ctx context.Context, p *Poem) error {
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	id, err := insert(ctx, r.q, builder.Insert(TablePoems).
		Columns(poemColumns[1:]...).
		Values(p.UserID, p.Title, p.Content, p.IsPrivate, p.CreatedAt, p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("save poem: %w", err)
	}
	p.ID = id
	return nil
}

func (r *poemRepo) Update(ctx context.Context, p *Poem) error {
	p.UpdatedAt = now()
	err := update(ctx, r.q, builder.Update(TablePoems).
		Set("title", p.Title).
		Set("content", p.Content).
		Set("is_private", p.IsPrivate).
		Set("updated_at", p.UpdatedAt).
		Where(entsql.And(entsql.EQ(colID, p.ID), entsql.EQ(colUserID, p.UserID))))
	if err != nil {
		return fmt.Errorf("update poem %d: %w", p.ID, err)
	}
	return nil
}

func (r *poemRepo) ByID(ctx context.Context, userID, id int) (*Poem, error) {
	sel := builder.Select(poemColumns...).
		From(entsql.Table(TablePoems)).
		Where(entsql.And(entsql.EQ(colID, id), entsql.EQ(colUserID, userID))).
		Limit(1)
	return queryOne(ctx, r.q, sel, func(s scanner) (*Poem, error) {
		p, err := scanPoem(s)
		return &p, err
	})
}

func (r *poemRepo) Recent(ctx context.Context, userID, limit int) ([]Poem, error) {
	sel := builder.Select(poemColumns...).
		From(entsql.Table(TablePoems)).
		Where(entsql.EQ(colUserID, userID)).
		OrderBy(entsql.Desc("updated_at"), entsql.Desc(colID))
	if limit > 0 {
		sel.Limit(limit)
	}
	out, err := queryAll(ctx, r.q, sel, scanPoem)
	if err != nil {
		return nil, fmt.Errorf("query poems: %w", err)
	}
	return out, nil
}

func scanPoem(s scanner) (Poem, error) {
	var p Poem
	err := s.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.IsPrivate, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
