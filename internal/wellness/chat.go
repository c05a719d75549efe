package wellness

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/serenity-circle/serenity/internal/store"
)

// ChatRoom is the member's support group and its recent history.
type ChatRoom struct {
	Group    store.GroupChat     `json:"group"`
	Messages []store.ChatMessage `json:"messages"`
}

// memberGroup returns the group a member was assigned by the assessment.
func (s *Service) memberGroup(ctx context.Context, userID int) (*store.User, *store.GroupChat, error) {
	u, err := s.User(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if !u.AssessmentCompleted {
		return nil, nil, ErrAssessmentRequired
	}
	if u.GroupChatID == 0 {
		return nil, nil, ErrNoGroup
	}
	g, err := s.store.Groups().ByID(ctx, u.GroupChatID)
	if err != nil {
		return nil, nil, notFound(err)
	}
	return u, g, nil
}

// GroupOf returns the id of the member's support group.
func (s *Service) GroupOf(ctx context.Context, userID int) (int, error) {
	_, g, err := s.memberGroup(ctx, userID)
	if err != nil {
		return 0, err
	}
	return g.ID, nil
}

// ChatHistory returns the member's group with its newest messages in
// chronological order.
func (s *Service) ChatHistory(ctx context.Context, userID int) (*ChatRoom, error) {
	_, g, err := s.memberGroup(ctx, userID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.store.Messages().Recent(ctx, g.ID, s.historyLimit)
	if err != nil {
		return nil, err
	}
	return &ChatRoom{Group: *g, Messages: msgs}, nil
}

// SendMessage posts to the member's group and publishes the stored message
// to live subscribers.
func (s *Service) SendMessage(ctx context.Context, userID int, content string) (*store.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	u, g, err := s.memberGroup(ctx, userID)
	if err != nil {
		return nil, err
	}

	m := &store.ChatMessage{UserID: u.ID, Nickname: u.Nickname, GroupChatID: g.ID, Content: content}
	if err := s.store.Messages().Create(ctx, m); err != nil {
		return nil, err
	}
	if s.pub != nil {
		s.pub.Publish(g.ID, *m)
	}
	s.log.Debug("chat message sent", zap.Int("user_id", u.ID), zap.Int("group_id", g.ID))
	return m, nil
}
