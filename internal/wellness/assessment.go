package wellness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/serenity-circle/serenity/internal/assessment"
	"github.com/serenity-circle/serenity/internal/store"
)

// Outcome is what a member sees after the assessment.
type Outcome struct {
	Category  assessment.Category        `json:"category"`
	Profile   assessment.CategoryProfile `json:"profile"`
	Insight   assessment.InsightProfile  `json:"insight"`
	GroupName string                     `json:"group_name"`
	GroupID   int                        `json:"group_id"`
}

func outcomeFor(c assessment.Category, groupID int) *Outcome {
	p := assessment.Profile(c)
	return &Outcome{
		Category:  p.Category,
		Profile:   p,
		Insight:   assessment.Insight(c),
		GroupName: assessment.GroupName(c),
		GroupID:   groupID,
	}
}

// GroupSeeds lists the support group of every category.
func GroupSeeds() []store.GroupSeed {
	cats := assessment.AllCategories()
	out := make([]store.GroupSeed, 0, len(cats))
	for _, c := range cats {
		out = append(out, groupSeed(c))
	}
	return out
}

func groupSeed(c assessment.Category) store.GroupSeed {
	return store.GroupSeed{
		Name:        assessment.GroupName(c),
		Category:    string(c),
		Description: fmt.Sprintf("Support group for %s individuals", assessment.Profile(c).Name),
	}
}

// SubmitAssessment scores a completed questionnaire, stores the result and
// assigns the member to the support group of the winning category.
// answers maps question id to the selected option index; every question
// must be present.
func (s *Service) SubmitAssessment(ctx context.Context, userID int, answers map[int]int) (*Outcome, error) {
	questions := assessment.Questions()
	responses := make([]assessment.Response, 0, len(questions))
	for _, q := range questions {
		idx, ok := answers[q.ID]
		if !ok {
			return nil, fmt.Errorf("%w: question %d unanswered", ErrIncompleteAssessment, q.ID)
		}
		responses = append(responses, assessment.Response{QuestionID: q.ID, SelectedOption: idx})
	}

	category := assessment.Classify(responses)
	snapshot, err := json.Marshal(responses)
	if err != nil {
		return nil, fmt.Errorf("encode responses: %w", err)
	}

	var groupID int
	err = s.store.InTx(ctx, func(r store.Repos) error {
		if _, err := r.Users.ByID(ctx, userID); err != nil {
			return notFound(err)
		}
		result := &store.AssessmentResult{
			UserID:           userID,
			Responses:        string(snapshot),
			Category:         string(category),
			SuggestedSupport: assessment.Profile(category).SupportFocus,
		}
		if err := r.Assessments.Create(ctx, result); err != nil {
			return err
		}

		g, err := findOrCreateGroup(ctx, r.Groups, category)
		if err != nil {
			return err
		}
		groupID = g.ID
		return r.Users.SetAssessment(ctx, userID, string(category), g.ID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("assessment completed",
		zap.Int("user_id", userID),
		zap.String("category", string(category)),
		zap.Int("group_id", groupID),
	)
	return outcomeFor(category, groupID), nil
}

func findOrCreateGroup(ctx context.Context, groups store.GroupRepo, c assessment.Category) (*store.GroupChat, error) {
	seed := groupSeed(c)
	g, err := groups.ByName(ctx, seed.Name)
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	g = &store.GroupChat{Name: seed.Name, Category: seed.Category, Description: seed.Description}
	if err := groups.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Results returns the outcome stored on the member. Unknown stored labels
// resolve to the default category.
func (s *Service) Results(ctx context.Context, userID int) (*Outcome, error) {
	u, err := s.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.AssessmentCompleted {
		return nil, ErrAssessmentRequired
	}
	return outcomeFor(assessment.CategoryOrDefault(u.Category), u.GroupChatID), nil
}
