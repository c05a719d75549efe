package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/serenity-circle/serenity/internal/ui/theme"
)

var labels = []string{"A", "B", "C", "D", "E", "F"}

// MultiChoice picks one option of a question. Arrow keys or j/k move,
// enter confirms, and a digit or letter jumps straight to an option.
type MultiChoice struct {
	Question  string
	Options   []string
	Selected  int
	Submitted bool
}

// NewMultiChoice starts with preselected highlighted, or the first option
// when preselected is out of range.
func NewMultiChoice(question string, options []string, preselected int) MultiChoice {
	if preselected < 0 || preselected >= len(options) {
		preselected = 0
	}
	return MultiChoice{Question: question, Options: options, Selected: preselected}
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter", "space":
		m.Submitted = true
	default:
		if i, ok := m.shortcut(key); ok {
			m.Selected = i
			m.Submitted = true
		}
	}
	return m, nil
}

// shortcut maps "1".."n" and "a".."f" to an option index.
func (m MultiChoice) shortcut(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	var i int
	switch {
	case c >= '1' && c <= '9':
		i = int(c - '1')
	case c >= 'a' && c <= 'f':
		i = int(c - 'a')
	default:
		return 0, false
	}
	return i, i < len(m.Options)
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, labels[i%len(labels)], opt)
		switch {
		case m.Submitted && i == m.Selected:
			b.WriteString(theme.Chosen.Render(line))
		case m.Submitted:
			b.WriteString(theme.Hint.UnsetItalic().Render(line))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
