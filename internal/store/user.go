package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var userColumns = []string{
	colID, "nickname", "email", "password_hash", "category",
	"assessment_completed", "group_chat_id", "dark_mode", colCreatedAt,
}

// userRepo implements UserRepo.
type userRepo struct {
	q querier
}

func (r *userRepo) Create(ctx context.Context, u *User) error {
	u.CreatedAt = now()
	id, err := insert(ctx, r.q, builder.Insert(TableUsers).
		Columns("nickname", "email", "password_hash", "category",
			"assessment_completed", "group_chat_id", "dark_mode", colCreatedAt).
		Values(u.Nickname, nullString(u.Email), u.PasswordHash, nullString(u.Category),
			u.AssessmentCompleted, nullInt(u.GroupChatID), u.DarkMode, u.CreatedAt))
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	u.ID = id
	return nil
}

func (r *userRepo) ByID(ctx context.Context, id int) (*User, error) {
	return r.one(ctx, entsql.EQ(colID, id))
}

func (r *userRepo) ByNickname(ctx context.Context, nickname string) (*User, error) {
	return r.one(ctx, entsql.EQ("nickname", nickname))
}

func (r *userRepo) ByEmail(ctx context.Context, email string) (*User, error) {
	return r.one(ctx, entsql.EQ("email", email))
}

func (r *userRepo) SetAssessment(ctx context.Context, userID int, category string, groupChatID int) error {
	err := update(ctx, r.q, builder.Update(TableUsers).
		Set("category", category).
		Set("assessment_completed", true).
		Set("group_chat_id", nullInt(groupChatID)).
		Where(entsql.EQ(colID, userID)))
	if err != nil {
		return fmt.Errorf("set assessment for user %d: %w", userID, err)
	}
	return nil
}

func (r *userRepo) SetDarkMode(ctx context.Context, userID int, enabled bool) error {
	err := update(ctx, r.q, builder.Update(TableUsers).
		Set("dark_mode", enabled).
		Where(entsql.EQ(colID, userID)))
	if err != nil {
		return fmt.Errorf("set dark mode for user %d: %w", userID, err)
	}
	return nil
}

func (r *userRepo) one(ctx context.Context, p *entsql.Predicate) (*User, error) {
	sel := builder.Select(userColumns...).
		From(entsql.Table(TableUsers)).
		Where(p).
		Limit(1)
	u, err := queryOne(ctx, r.q, sel, scanUser)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func scanUser(s scanner) (*User, error) {
	var (
		u        User
		email    sql.NullString
		category sql.NullString
		groupID  sql.NullInt64
	)
	err := s.Scan(&u.ID, &u.Nickname, &email, &u.PasswordHash, &category,
		&u.AssessmentCompleted, &groupID, &u.DarkMode, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	u.Email = email.String
	u.Category = category.String
	u.GroupChatID = int(groupID.Int64)
	return &u, nil
}
