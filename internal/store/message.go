package store

import (
	"context"
	"fmt"
	"slices"

	entsql "entgo.io/ent/dialect/sql"
)

// messageRepo implements MessageRepo.
type messageRepo struct {
	q querier
}

func (r *messageRepo) Create(ctx context.Context, m *ChatMessage) error {
	m.CreatedAt = now()
	id, err := insert(ctx, r.q, builder.Insert(TableMessages).
		Columns(colUserID, "group_chat_id", "content", "is_moderated", colCreatedAt).
		Values(m.UserID, m.GroupChatID, m.Content, m.IsModerated, m.CreatedAt))
	if err != nil {
		return fmt.Errorf("save chat message: %w", err)
	}
	m.ID = id
	return nil
}

func (r *messageRepo) Recent(ctx context.Context, groupChatID, limit int) ([]ChatMessage, error) {
	m := entsql.Table(TableMessages).As("m")
	u := entsql.Table(TableUsers).As("u")
	sel := builder.Select(
		m.C(colID), m.C(colUserID), u.C("nickname"), m.C("group_chat_id"),
		m.C("content"), m.C("is_moderated"), m.C(colCreatedAt),
	).
		From(m).
		Join(u).On(m.C(colUserID), u.C(colID)).
		Where(entsql.EQ(m.C("group_chat_id"), groupChatID)).
		OrderBy(entsql.Desc(m.C(colCreatedAt)), entsql.Desc(m.C(colID)))
	if limit > 0 {
		sel.Limit(limit)
	}

	msgs, err := queryAll(ctx, r.q, sel, func(s scanner) (ChatMessage, error) {
		var c ChatMessage
		err := s.Scan(&c.ID, &c.UserID, &c.Nickname, &c.GroupChatID, &c.Content, &c.IsModerated, &c.CreatedAt)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("query messages for group %d: %w", groupChatID, err)
	}
	slices.Reverse(msgs)
	return msgs, nil
}
