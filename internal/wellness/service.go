// Package wellness implements the member-facing operations of Serenity:
// accounts, the assessment flow, trackers, journaling and group chat.
package wellness

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/serenity-circle/serenity/internal/auth"
	"github.com/serenity-circle/serenity/internal/store"
)

var (
	ErrNicknameTaken        = errors.New("nickname already taken")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid nickname or password")
	ErrIncompleteAssessment = errors.New("every question must be answered")
	ErrAssessmentRequired   = errors.New("assessment not completed")
	ErrNoGroup              = errors.New("not assigned to a support group")
	ErrEmptyMessage         = errors.New("message is empty")
	ErrNotFound             = errors.New("not found")
	ErrInvalidInput         = errors.New("invalid input")
)

// DefaultHistoryLimit is the number of chat messages returned by ChatHistory.
const DefaultHistoryLimit = 50

// Publisher fans a stored chat message out to live subscribers of a group.
type Publisher interface {
	Publish(groupID int, msg store.ChatMessage)
}

// Options configures a Service. Zero values select defaults.
type Options struct {
	Publisher      Publisher
	Logger         *zap.Logger
	HistoryLimit   int
	PasswordParams auth.Params
	Clock          func() time.Time
}

// Service is safe for concurrent use.
type Service struct {
	store        *store.Store
	pub          Publisher
	log          *zap.Logger
	historyLimit int
	params       auth.Params
	now          func() time.Time
}

// New returns a Service backed by st.
func New(st *store.Store, opts Options) *Service {
	s := &Service{
		store:        st,
		pub:          opts.Publisher,
		log:          opts.Logger,
		historyLimit: opts.HistoryLimit,
		params:       opts.PasswordParams,
		now:          opts.Clock,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.historyLimit <= 0 {
		s.historyLimit = DefaultHistoryLimit
	}
	if s.params == (auth.Params{}) {
		s.params = auth.DefaultParams
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// SetPublisher attaches the live fan-out used by SendMessage.
func (s *Service) SetPublisher(p Publisher) {
	s.pub = p
}

// notFound maps store.ErrNotFound to ErrNotFound and passes other errors through.
func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
