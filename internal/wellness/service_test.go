package wellness

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serenity-circle/serenity/internal/assessment"
	"github.com/serenity-circle/serenity/internal/auth"
	"github.com/serenity-circle/serenity/internal/store"
)

var testParams = auth.Params{Time: 1, Memory: 1024, Threads: 1, KeyLength: 16, SaltLength: 8}

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type recordingPublisher struct {
	mu   sync.Mutex
	sent map[int][]store.ChatMessage
}

func (p *recordingPublisher) Publish(groupID int, msg store.ChatMessage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sent == nil {
		p.sent = make(map[int][]store.ChatMessage)
	}
	p.sent[groupID] = append(p.sent[groupID], msg)
}

type fixture struct {
	svc   *Service
	store *store.Store
	clock *clock
	pub   *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	c := &clock{t: time.Date(2026, 5, 14, 15, 30, 0, 0, time.UTC)}
	pub := &recordingPublisher{}
	svc := New(st, Options{Publisher: pub, PasswordParams: testParams, Clock: c.Now})
	return &fixture{svc: svc, store: st, clock: c, pub: pub}
}

func (f *fixture) register(t *testing.T, nickname string) *store.User {
	t.Helper()
	u, err := f.svc.Register(context.Background(), nickname, "", "secret")
	require.NoError(t, err)
	return u
}

// answersFor builds a complete answer set that selects option idx for
// every question.
func answersFor(idx int) map[int]int {
	out := make(map[int]int)
	for _, q := range assessment.Questions() {
		out[q.ID] = idx
	}
	return out
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.svc.Register(ctx, "  river ", "river@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "river", u.Nickname)
	assert.NotEqual(t, "secret", u.PasswordHash)

	got, err := f.svc.Login(ctx, "river", "secret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = f.svc.Login(ctx, "river", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.svc.Login(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, "river", "river@example.com", "secret")
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, "river", "", "secret")
	assert.ErrorIs(t, err, ErrNicknameTaken)

	_, err = f.svc.Register(ctx, "brook", "river@example.com", "secret")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = f.svc.Register(ctx, "", "", "secret")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.svc.Register(ctx, "brook", "", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Email is optional and several members may omit it.
	_, err = f.svc.Register(ctx, "brook", "", "secret")
	assert.NoError(t, err)
	_, err = f.svc.Register(ctx, "creek", "", "secret")
	assert.NoError(t, err)
}

func TestRegisterConcurrentDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.svc.Register(ctx, "dup", "", "secret")
		}()
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, ErrNicknameTaken)
	}
	assert.Equal(t, 1, ok)
}

func TestTakenMapsStoreConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	users := f.store.Users()
	require.NoError(t, users.Create(ctx, &store.User{Nickname: "river", Email: "river@example.com", PasswordHash: "h"}))

	err := users.Create(ctx, &store.User{Nickname: "river", PasswordHash: "h"})
	assert.ErrorIs(t, taken(err), ErrNicknameTaken)

	err = users.Create(ctx, &store.User{Nickname: "brook", Email: "river@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, taken(err), ErrEmailTaken)
}

func TestSubmitAssessmentAssignsGroup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "fern")

	// Index 2 leans green on every question.
	out, err := f.svc.SubmitAssessment(ctx, u.ID, answersFor(2))
	require.NoError(t, err)
	assert.Equal(t, assessment.CategoryGreen, out.Category)
	assert.Equal(t, assessment.GroupName(assessment.CategoryGreen), out.GroupName)
	assert.Equal(t, "Grounded Souls Garden", out.GroupName)
	assert.NotZero(t, out.GroupID)

	stored, err := f.svc.User(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, stored.AssessmentCompleted)
	assert.Equal(t, "green", stored.Category)
	assert.Equal(t, out.GroupID, stored.GroupChatID)

	g, err := f.store.Groups().ByID(ctx, out.GroupID)
	require.NoError(t, err)
	assert.Equal(t, "Support group for "+assessment.Profile(assessment.CategoryGreen).Name+" individuals", g.Description)
	assert.Equal(t, "Support group for Grounded Souls individuals", g.Description)

	latest, err := f.store.Repos().Assessments.Latest(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "green", latest.Category)
	assert.Equal(t, assessment.Profile(assessment.CategoryGreen).SupportFocus, latest.SuggestedSupport)
	assert.Contains(t, latest.Responses, `"question_id":1`)
}

func TestSubmitAssessmentReusesGroup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.register(t, "a")
	b := f.register(t, "b")

	outA, err := f.svc.SubmitAssessment(ctx, a.ID, answersFor(0))
	require.NoError(t, err)
	outB, err := f.svc.SubmitAssessment(ctx, b.ID, answersFor(0))
	require.NoError(t, err)
	assert.Equal(t, outA.GroupID, outB.GroupID)

	groups, err := f.store.Groups().List(ctx)
	require.NoError(t, err)
	assert.Len(t, groups, 1)
}

func TestSubmitAssessmentIncomplete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "moss")

	answers := answersFor(1)
	delete(answers, 5)
	_, err := f.svc.SubmitAssessment(ctx, u.ID, answers)
	assert.ErrorIs(t, err, ErrIncompleteAssessment)

	stored, err := f.svc.User(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, stored.AssessmentCompleted)
}

func TestSubmitAssessmentIgnoresOutOfRangeOptions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "stone")

	// Every answer is present but none scores, so the default applies.
	out, err := f.svc.SubmitAssessment(ctx, u.ID, answersFor(9))
	require.NoError(t, err)
	assert.Equal(t, assessment.DefaultCategory, out.Category)
	assert.Equal(t, "Wave Whisperers Sanctuary", out.GroupName)
}

func TestResults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "sky")

	_, err := f.svc.Results(ctx, u.ID)
	assert.ErrorIs(t, err, ErrAssessmentRequired)

	_, err = f.svc.SubmitAssessment(ctx, u.ID, answersFor(0))
	require.NoError(t, err)

	out, err := f.svc.Results(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, assessment.CategoryGrey, out.Category)
	assert.Equal(t, "Silent Warriors", out.Profile.Name)
	assert.Equal(t, "Silent Warriors Support Circle", out.GroupName)
	assert.NotEmpty(t, out.Insight.PotentialConcerns)
}

func TestResultsUnknownStoredLabelFallsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "legacy")
	require.NoError(t, f.store.Users().SetAssessment(ctx, u.ID, "purple", 0))

	out, err := f.svc.Results(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, assessment.CategoryBlue, out.Category)
	assert.Equal(t, "Wave Whisperers", out.Profile.Name)
	assert.Equal(t, "Wave Whisperers Sanctuary", out.GroupName)
}

func TestTrackMoodDefaultsAndClamps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "tide")

	tests := []struct {
		level     int
		moodType  string
		wantLevel int
		wantType  string
	}{
		{0, "", 5, "neutral"},
		{11, "happy", 10, "happy"},
		{-3, "sad", 1, "sad"},
		{7, " calm ", 7, "calm"},
	}
	for _, tt := range tests {
		e, err := f.svc.TrackMood(ctx, u.ID, tt.level, tt.moodType, "")
		require.NoError(t, err)
		assert.Equal(t, tt.wantLevel, e.MoodLevel, "level %d", tt.level)
		assert.Equal(t, tt.wantType, e.MoodType)
	}
}

func TestTrackEmotion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "ember")

	e, err := f.svc.TrackEmotion(ctx, u.ID, "anxious", 0, "exams")
	require.NoError(t, err)
	assert.Equal(t, 5, e.Intensity)
	assert.Equal(t, "exams", e.Trigger)

	_, err = f.svc.TrackEmotion(ctx, u.ID, " ", 3, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTrackHabitStreaks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "walker")

	e, err := f.svc.TrackHabit(ctx, u.ID, "walk", true)
	require.NoError(t, err)
	assert.Equal(t, 1, e.StreakCount)

	// Same day: the entry is overwritten, not duplicated.
	f.clock.Advance(2 * time.Hour)
	again, err := f.svc.TrackHabit(ctx, u.ID, "walk", true)
	require.NoError(t, err)
	assert.Equal(t, e.ID, again.ID)
	assert.Equal(t, 1, again.StreakCount)

	f.clock.Advance(24 * time.Hour)
	next, err := f.svc.TrackHabit(ctx, u.ID, "walk", true)
	require.NoError(t, err)
	assert.NotEqual(t, e.ID, next.ID)
	assert.Equal(t, 2, next.StreakCount)

	f.clock.Advance(24 * time.Hour)
	missed, err := f.svc.TrackHabit(ctx, u.ID, "walk", false)
	require.NoError(t, err)
	assert.Zero(t, missed.StreakCount)

	f.clock.Advance(24 * time.Hour)
	restart, err := f.svc.TrackHabit(ctx, u.ID, "walk", true)
	require.NoError(t, err)
	assert.Equal(t, 1, restart.StreakCount)

	_, err = f.svc.TrackHabit(ctx, u.ID, "", true)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSavePoem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "poet")
	other := f.register(t, "reader")

	p, err := f.svc.SavePoem(ctx, owner.ID, PoemInput{Content: "quiet lines", Private: true})
	require.NoError(t, err)
	assert.Equal(t, "Untitled", p.Title)

	edited, err := f.svc.SavePoem(ctx, owner.ID, PoemInput{ID: p.ID, Title: "Dawn", Content: "new lines"})
	require.NoError(t, err)
	assert.Equal(t, "Dawn", edited.Title)
	assert.False(t, edited.IsPrivate)

	_, err = f.svc.SavePoem(ctx, other.ID, PoemInput{ID: p.ID, Title: "Mine", Content: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.Poem(ctx, other.ID, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.SavePoem(ctx, owner.ID, PoemInput{Title: "Empty"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestChatFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "wave")

	_, err := f.svc.SendMessage(ctx, u.ID, "hello")
	assert.ErrorIs(t, err, ErrAssessmentRequired)

	out, err := f.svc.SubmitAssessment(ctx, u.ID, answersFor(0))
	require.NoError(t, err)

	_, err = f.svc.SendMessage(ctx, u.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	m, err := f.svc.SendMessage(ctx, u.ID, "  hello there  ")
	require.NoError(t, err)
	assert.Equal(t, "hello there", m.Content)

	room, err := f.svc.ChatHistory(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, out.GroupID, room.Group.ID)
	require.Len(t, room.Messages, 1)
	assert.Equal(t, "wave", room.Messages[0].Nickname)

	f.pub.mu.Lock()
	defer f.pub.mu.Unlock()
	require.Len(t, f.pub.sent[out.GroupID], 1)
	assert.Equal(t, "hello there", f.pub.sent[out.GroupID][0].Content)
}

func TestChatHistoryKeepsNewest(t *testing.T) {
	f := newFixture(t)
	f.svc.historyLimit = 3
	ctx := context.Background()
	u := f.register(t, "chatty")
	_, err := f.svc.SubmitAssessment(ctx, u.ID, answersFor(1))
	require.NoError(t, err)

	for _, c := range []string{"1", "2", "3", "4", "5"} {
		_, err := f.svc.SendMessage(ctx, u.ID, c)
		require.NoError(t, err)
	}
	room, err := f.svc.ChatHistory(ctx, u.ID)
	require.NoError(t, err)
	var got []string
	for _, m := range room.Messages {
		got = append(got, m.Content)
	}
	assert.Equal(t, []string{"3", "4", "5"}, got)
}

func TestDashboardWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "glance")

	_, err := f.svc.Dashboard(ctx, u.ID)
	assert.ErrorIs(t, err, ErrAssessmentRequired)

	_, err = f.svc.SubmitAssessment(ctx, u.ID, answersFor(3))
	require.NoError(t, err)

	// Ten days of moods; only the last seven days are shown.
	for i := range 10 {
		_, err := f.svc.TrackMood(ctx, u.ID, i+1, "calm", "")
		require.NoError(t, err)
		f.clock.Advance(24 * time.Hour)
	}
	for i := range 6 {
		_, err := f.svc.TrackEmotion(ctx, u.ID, "joy", i+1, "")
		require.NoError(t, err)
	}
	for range 4 {
		_, err := f.svc.SavePoem(ctx, u.ID, PoemInput{Content: "verse"})
		require.NoError(t, err)
	}

	d, err := f.svc.Dashboard(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "glance", d.Nickname)
	assert.Equal(t, assessment.CategoryPink, d.Profile.Category)
	require.Len(t, d.Moods, 7)
	assert.Equal(t, 10, d.Moods[0].MoodLevel)
	assert.Len(t, d.Emotions, 5)
	assert.Len(t, d.Poems, 3)
}

func TestToggleDarkModeAndAnnouncements(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "night")

	on, err := f.svc.ToggleDarkMode(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, on)
	off, err := f.svc.ToggleDarkMode(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, off)

	_, err = f.svc.ToggleDarkMode(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, f.store.SeedDefaults(ctx, GroupSeeds()))
	list, err := f.svc.Announcements(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	groups, err := f.store.Groups().List(ctx)
	require.NoError(t, err)
	assert.Len(t, groups, len(assessment.AllCategories()))
}
