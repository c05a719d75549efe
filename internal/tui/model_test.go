package tui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/serenity-circle/serenity/internal/assessment"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	var next tea.Model = m
	for _, msg := range msgs {
		next, cmd = next.Update(msg)
	}
	return next.(Model), cmd
}

func started(t *testing.T) Model {
	t.Helper()
	m, _ := send(t, New(), tea.WindowSizeMsg{Width: 100, Height: 40}, specialKey(tea.KeyEnter))
	if m.phase != phaseQuestion {
		t.Fatalf("phase = %v, want question", m.phase)
	}
	return m
}

func TestAnsweringEveryQuestionClassifies(t *testing.T) {
	m := started(t)
	for range m.questions {
		// Two downs land on option index 2.
		m, _ = send(t, m, specialKey(tea.KeyDown), specialKey(tea.KeyDown), specialKey(tea.KeyEnter))
	}

	if m.phase != phaseResult {
		t.Fatalf("phase = %v, want result", m.phase)
	}
	res := m.Result()
	if !res.Completed {
		t.Fatal("result not completed")
	}
	if len(res.Answers) != assessment.QuestionCount() {
		t.Errorf("got %d answers, want %d", len(res.Answers), assessment.QuestionCount())
	}
	if res.Category != assessment.CategoryGreen {
		t.Errorf("got %v, want green", res.Category)
	}
}

func TestShortcutKeysAnswerImmediately(t *testing.T) {
	m := started(t)
	m, _ = send(t, m, keyPress('4'))
	if got := m.answers[1]; got != 3 {
		t.Errorf("answer to q1 = %d, want 3", got)
	}
	if m.step != 1 {
		t.Errorf("step = %d, want 1", m.step)
	}

	m, _ = send(t, m, keyPress('b'))
	if got := m.answers[2]; got != 1 {
		t.Errorf("answer to q2 = %d, want 1", got)
	}

	// Out-of-range shortcut is ignored.
	m, _ = send(t, m, keyPress('9'))
	if m.step != 2 {
		t.Errorf("step = %d, want 2", m.step)
	}
}

func TestBackRestoresPreviousAnswer(t *testing.T) {
	m := started(t)
	m, _ = send(t, m, keyPress('3'))
	m, _ = send(t, m, specialKey(tea.KeyLeft))

	if m.step != 0 {
		t.Fatalf("step = %d, want 0", m.step)
	}
	if m.choice.Selected != 2 {
		t.Errorf("selected = %d, want previous answer 2", m.choice.Selected)
	}

	m, _ = send(t, m, specialKey(tea.KeyLeft))
	if m.step != 0 {
		t.Errorf("back on first question moved to %d", m.step)
	}
}

func TestQuitBeforeFinishing(t *testing.T) {
	m := started(t)
	m, _ = send(t, m, keyPress('1'))
	m, cmd := send(t, m, specialKey(tea.KeyEscape))

	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("got %T, want tea.QuitMsg", cmd())
	}
	if m.Result().Completed {
		t.Error("partial questionnaire reported as completed")
	}
}

func TestResultMenu(t *testing.T) {
	m := started(t)
	for range m.questions {
		m, _ = send(t, m, keyPress('1'))
	}
	if m.phase != phaseResult {
		t.Fatalf("phase = %v, want result", m.phase)
	}

	view := m.render()
	want := assessment.GroupName(m.Result().Category)
	if !strings.Contains(view, want) {
		t.Errorf("result view missing group name %q", want)
	}

	// Retake resets the answers.
	m, cmd := send(t, m, specialKey(tea.KeyDown), specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected retake command")
	}
	m, _ = send(t, m, cmd())
	if m.phase != phaseQuestion || len(m.answers) != 0 {
		t.Errorf("retake: phase %v with %d answers", m.phase, len(m.answers))
	}

	for range m.questions {
		m, _ = send(t, m, keyPress('1'))
	}
	m, cmd = send(t, m, specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected done command")
	}
	_, cmd = send(t, m, cmd())
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("done: got %T, want tea.QuitMsg", cmd())
	}
}

func TestViewTooSmall(t *testing.T) {
	m, _ := send(t, New(), tea.WindowSizeMsg{Width: 30, Height: 10})
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected size warning")
	}
}
