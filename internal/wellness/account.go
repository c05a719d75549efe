package wellness

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/serenity-circle/serenity/internal/auth"
	"github.com/serenity-circle/serenity/internal/store"
)

// Register creates a member. The email is optional but must be unique
// when given.
func (s *Service) Register(ctx context.Context, nickname, email, password string) (*store.User, error) {
	nickname = strings.TrimSpace(nickname)
	email = strings.TrimSpace(email)
	if nickname == "" || password == "" {
		return nil, fmt.Errorf("%w: nickname and password are required", ErrInvalidInput)
	}

	users := s.store.Users()
	if _, err := users.ByNickname(ctx, nickname); err == nil {
		return nil, ErrNicknameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if email != "" {
		if _, err := users.ByEmail(ctx, email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	hash, err := auth.HashWith(password, s.params)
	if err != nil {
		return nil, err
	}
	u := &store.User{Nickname: nickname, Email: email, PasswordHash: hash}
	if err := users.Create(ctx, u); err != nil {
		return nil, taken(err)
	}
	s.log.Info("member registered", zap.Int("user_id", u.ID))
	return u, nil
}

// taken maps a uniqueness conflict lost to a concurrent registration onto
// the matching sentinel.
func taken(err error) error {
	var ce *store.ConflictError
	if !errors.As(err, &ce) {
		return err
	}
	switch ce.Column {
	case "nickname":
		return ErrNicknameTaken
	case "email":
		return ErrEmailTaken
	}
	return err
}

// Login checks a nickname and password pair.
func (s *Service) Login(ctx context.Context, nickname, password string) (*store.User, error) {
	u, err := s.store.Users().ByNickname(ctx, strings.TrimSpace(nickname))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	ok, err := auth.VerifyPassword(password, u.PasswordHash)
	if err != nil {
		s.log.Warn("unreadable password hash", zap.Int("user_id", u.ID), zap.Error(err))
		return nil, ErrInvalidCredentials
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// User returns the member with id.
func (s *Service) User(ctx context.Context, id int) (*store.User, error) {
	u, err := s.store.Users().ByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// ToggleDarkMode flips the member's theme preference and returns the new value.
func (s *Service) ToggleDarkMode(ctx context.Context, userID int) (bool, error) {
	var enabled bool
	err := s.store.InTx(ctx, func(r store.Repos) error {
		u, err := r.Users.ByID(ctx, userID)
		if err != nil {
			return notFound(err)
		}
		enabled = !u.DarkMode
		return r.Users.SetDarkMode(ctx, userID, enabled)
	})
	return enabled, err
}

// Announcements returns the newest three active announcements.
func (s *Service) Announcements(ctx context.Context) ([]store.Announcement, error) {
	return s.store.Announcements().Active(ctx, 3)
}
