// Package tui runs the assessment questionnaire in the terminal.
package tui

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/serenity-circle/serenity/internal/assessment"
	"github.com/serenity-circle/serenity/internal/ui/components"
)

type phase int

const (
	phaseIntro phase = iota
	phaseQuestion
	phaseResult
)

// Result is what the questionnaire produced. Completed is false when the
// user quit before the last answer.
type Result struct {
	Answers   map[int]int
	Category  assessment.Category
	Completed bool
}

// Responses returns the answers as scorer input, ordered by question.
func (r Result) Responses() []assessment.Response {
	out := make([]assessment.Response, 0, len(r.Answers))
	for _, q := range assessment.Questions() {
		if idx, ok := r.Answers[q.ID]; ok {
			out = append(out, assessment.Response{QuestionID: q.ID, SelectedOption: idx})
		}
	}
	return out
}

type finishedMsg struct{}

type retakeMsg struct{}

// Model is the root Bubble Tea model.
type Model struct {
	questions []assessment.Question
	phase     phase
	step      int
	choice    components.MultiChoice
	answers   map[int]int
	result    Result
	menu      components.Menu
	width     int
	height    int
}

// New returns a model positioned at the intro.
func New() Model {
	return Model{
		questions: assessment.Questions(),
		answers:   make(map[int]int),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case finishedMsg:
		return m, tea.Quit

	case retakeMsg:
		fresh := New()
		fresh.width, fresh.height = m.width, m.height
		return fresh.begin(), nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.phase != phaseResult {
				return m, tea.Quit
			}
		}
	}

	switch m.phase {
	case phaseIntro:
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "enter" {
			return m.begin(), nil
		}
	case phaseQuestion:
		return m.updateQuestion(msg)
	case phaseResult:
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) begin() Model {
	m.phase = phaseQuestion
	m.step = 0
	m.choice = m.choiceFor(0)
	return m
}

func (m Model) choiceFor(step int) components.MultiChoice {
	q := m.questions[step]
	opts := make([]string, len(q.Options))
	for i, o := range q.Options {
		opts[i] = o.Text
	}
	return components.NewMultiChoice(fmt.Sprintf("%d. %s", q.ID, q.Prompt), opts, m.answers[q.ID])
}

func (m Model) updateQuestion(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "left", "backspace", "h":
			if m.step > 0 {
				m.step--
				m.choice = m.choiceFor(m.step)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.choice, cmd = m.choice.Update(msg)
	if !m.choice.Submitted {
		return m, cmd
	}

	m.answers[m.questions[m.step].ID] = m.choice.Selected
	if m.step < len(m.questions)-1 {
		m.step++
		m.choice = m.choiceFor(m.step)
		return m, cmd
	}
	return m.finish(), cmd
}

func (m Model) finish() Model {
	answers := make(map[int]int, len(m.answers))
	for k, v := range m.answers {
		answers[k] = v
	}
	m.result = Result{Answers: answers, Completed: true}
	m.result.Category = assessment.Classify(m.result.Responses())
	m.phase = phaseResult
	m.menu = components.NewMenu([]components.MenuItem{
		{Label: "Done", Action: func() tea.Cmd { return func() tea.Msg { return finishedMsg{} } }},
		{Label: "Retake the assessment", Action: func() tea.Cmd { return func() tea.Msg { return retakeMsg{} } }},
	})
	return m
}

// Result reports the outcome. It is only Completed once every question
// has been answered.
func (m Model) Result() Result {
	return m.result
}

// Run shows the questionnaire until the user finishes or quits.
func Run(ctx context.Context, opts ...tea.ProgramOption) (Result, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(New(), opts...).Run()
	if err != nil {
		return Result{}, fmt.Errorf("run questionnaire: %w", err)
	}
	return final.(Model).Result(), nil
}
