package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by single-record lookups that match nothing.
var ErrNotFound = errors.New("record not found")

// ErrConflict is matched by writes that violate a uniqueness constraint.
var ErrConflict = errors.New("unique constraint violated")

// ConflictError names the column whose uniqueness an insert violated.
type ConflictError struct {
	Table  string
	Column string
	Err    error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("duplicate %s.%s: %v", e.Table, e.Column, e.Err)
}

func (e *ConflictError) Unwrap() []error { return []error{ErrConflict, e.Err} }

// QueryOpts filters and bounds list queries.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	Since time.Time // created_at >= Since
	Until time.Time // created_at < Until
}

// User is a registered member.
type User struct {
	ID                  int       `json:"id"`
	Nickname            string    `json:"nickname"`
	Email               string    `json:"email"` // empty when not provided
	PasswordHash        string    `json:"-"`
	Category            string    `json:"category"` // empty until the assessment is completed
	AssessmentCompleted bool      `json:"assessment_completed"`
	GroupChatID         int       `json:"group_chat_id"` // 0 when unassigned
	DarkMode            bool      `json:"dark_mode"`
	CreatedAt           time.Time `json:"created_at"`
}

// AssessmentResult is a stored questionnaire outcome.
type AssessmentResult struct {
	ID               int       `json:"id"`
	UserID           int       `json:"user_id"`
	Responses        string    `json:"responses"` // JSON snapshot of the submitted responses
	Category         string    `json:"category"`
	SuggestedSupport string    `json:"suggested_support"`
	CreatedAt        time.Time `json:"created_at"`
}

// GroupChat is a peer-support group.
type GroupChat struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChatMessage is a message posted to a group.
type ChatMessage struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Nickname    string    `json:"nickname"` // filled by reads that join users
	GroupChatID int       `json:"group_chat_id"`
	Content     string    `json:"content"`
	IsModerated bool      `json:"is_moderated"`
	CreatedAt   time.Time `json:"created_at"`
}

// MoodEntry is a mood check-in.
type MoodEntry struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	MoodLevel int       `json:"mood_level"`
	MoodType  string    `json:"mood_type"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// HabitEntry is a per-day habit record.
type HabitEntry struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	HabitName   string    `json:"habit_name"`
	Completed   bool      `json:"completed"`
	StreakCount int       `json:"streak_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// EmotionEntry is an emotion check-in.
type EmotionEntry struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	EmotionName string    `json:"emotion_name"`
	Intensity   int       `json:"intensity"`
	Trigger     string    `json:"trigger"`
	CreatedAt   time.Time `json:"created_at"`
}

// Poem is a journal entry.
type Poem struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsPrivate bool      `json:"is_private"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Announcement is a site-wide notice.
type Announcement struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	Purpose      string `json:"purpose"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	LatencyMs    int64  `json:"latency_ms"`
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message"`
}

// UserRepo manages members.
type UserRepo interface {
	Create(ctx context.Context, u *User) error
	ByID(ctx context.Context, id int) (*User, error)
	ByNickname(ctx context.Context, nickname string) (*User, error)
	ByEmail(ctx context.Context, email string) (*User, error)

	// SetAssessment stores the outcome of a completed questionnaire on the user.
	SetAssessment(ctx context.Context, userID int, category string, groupChatID int) error

	SetDarkMode(ctx context.Context, userID int, enabled bool) error
}

// AssessmentRepo stores questionnaire outcomes.
type AssessmentRepo interface {
	Create(ctx context.Context, r *AssessmentResult) error

	// Latest returns the most recent result for the user.
	Latest(ctx context.Context, userID int) (*AssessmentResult, error)
}

// GroupRepo manages support groups.
type GroupRepo interface {
	Create(ctx context.Context, g *GroupChat) error
	ByID(ctx context.Context, id int) (*GroupChat, error)
	ByName(ctx context.Context, name string) (*GroupChat, error)
	List(ctx context.Context) ([]GroupChat, error)
}

// MessageRepo stores group chat messages.
type MessageRepo interface {
	Create(ctx context.Context, m *ChatMessage) error

	// Recent returns the newest limit messages of a group in chronological order.
	Recent(ctx context.Context, groupChatID, limit int) ([]ChatMessage, error)
}

// TrackerRepo stores mood, habit and emotion check-ins.
type TrackerRepo interface {
	AddMood(ctx context.Context, e *MoodEntry) error
	Moods(ctx context.Context, userID int, opts QueryOpts) ([]MoodEntry, error)

	AddEmotion(ctx context.Context, e *EmotionEntry) error
	Emotions(ctx context.Context, userID int, opts QueryOpts) ([]EmotionEntry, error)

	AddHabit(ctx context.Context, e *HabitEntry) error
	UpdateHabit(ctx context.Context, id int, completed bool, streak int) error

	// HabitIn returns the user's entry for habit created within [opts.Since, opts.Until).
	HabitIn(ctx context.Context, userID int, name string, opts QueryOpts) (*HabitEntry, error)
	Habits(ctx context.Context, userID int, opts QueryOpts) ([]HabitEntry, error)
}

// PoemRepo stores journal entries.
type PoemRepo interface {
	Create(ctx context.Context, p *Poem) error

	// Update rewrites title, content, privacy and updated_at of a poem owned by p.UserID.
	Update(ctx context.Context, p *Poem) error
	ByID(ctx context.Context, userID, id int) (*Poem, error)

	// Recent returns the user's poems by most recent update.
	Recent(ctx context.Context, userID, limit int) ([]Poem, error)
}

// AnnouncementRepo stores site notices.
type AnnouncementRepo interface {
	Create(ctx context.Context, a *Announcement) error
	Active(ctx context.Context, limit int) ([]Announcement, error)
	Count(ctx context.Context) (int, error)
}

// EventRepo provides append access to audit events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// Repos bundles every repository over one connection or transaction.
type Repos struct {
	Users         UserRepo
	Assessments   AssessmentRepo
	Groups        GroupRepo
	Messages      MessageRepo
	Trackers      TrackerRepo
	Poems         PoemRepo
	Announcements AnnouncementRepo
	Events        EventRepo
}
