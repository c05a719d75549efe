package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// assessmentRepo implements AssessmentRepo.
type assessmentRepo struct {
	q querier
}

func (r *assessmentRepo) Create(ctx context.Context, a *AssessmentResult) error {
	a.CreatedAt = now()
	id, err := insert(ctx, r.q, builder.Insert(TableAssessments).
		Columns(colUserID, "responses", "category", "suggested_support", colCreatedAt).
		Values(a.UserID, a.Responses, a.Category, a.SuggestedSupport, a.CreatedAt))
	if err != nil {
		return fmt.Errorf("save assessment result: %w", err)
	}
	a.ID = id
	return nil
}

func (r *assessmentRepo) Latest(ctx context.Context, userID int) (*AssessmentResult, error) {
	sel := builder.Select(colID, colUserID, "responses", "category", "suggested_support", colCreatedAt).
		From(entsql.Table(TableAssessments)).
		Where(entsql.EQ(colUserID, userID)).
		OrderBy(entsql.Desc(colCreatedAt), entsql.Desc(colID)).
		Limit(1)
	return queryOne(ctx, r.q, sel, func(s scanner) (*AssessmentResult, error) {
		var a AssessmentResult
		if err := s.Scan(&a.ID, &a.UserID, &a.Responses, &a.Category, &a.SuggestedSupport, &a.CreatedAt); err != nil {
			return nil, err
		}
		return &a, nil
	})
}
