package wellness

import (
	"context"
	"fmt"
	"strings"

	"github.com/serenity-circle/serenity/internal/store"
)

const untitled = "Untitled"

// PoemInput is a new or edited journal entry. A zero ID creates a poem.
type PoemInput struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Private bool   `json:"is_private"`
}

// SavePoem creates a poem or rewrites one the member owns. Editing a poem
// that does not exist or belongs to someone else returns ErrNotFound.
func (s *Service) SavePoem(ctx context.Context, userID int, in PoemInput) (*store.Poem, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: poem content is required", ErrInvalidInput)
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = untitled
	}

	p := &store.Poem{ID: in.ID, UserID: userID, Title: title, Content: content, IsPrivate: in.Private}
	poems := s.store.Repos().Poems
	if in.ID == 0 {
		if err := poems.Create(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	}

	if err := poems.Update(ctx, p); err != nil {
		return nil, notFound(err)
	}
	return poems.ByID(ctx, userID, p.ID)
}

// Poem returns one of the member's poems.
func (s *Service) Poem(ctx context.Context, userID, id int) (*store.Poem, error) {
	p, err := s.store.Repos().Poems.ByID(ctx, userID, id)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

// Poems returns the member's poems, most recently updated first.
func (s *Service) Poems(ctx context.Context, userID, limit int) ([]store.Poem, error) {
	return s.store.Repos().Poems.Recent(ctx, userID, limit)
}
