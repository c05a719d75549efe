package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/serenity-circle/serenity/internal/ui/theme"
)

// MenuItem is one choice offered once the questionnaire is finished.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd
}

// Menu lists the follow-up actions under a result. Selection wraps at
// both ends and items can be picked by their number.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu starts with the first item selected.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update moves the selection or runs the chosen action.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k", "shift+tab":
		m.Selected = (m.Selected - 1 + len(m.Items)) % len(m.Items)
	case "down", "j", "tab":
		m.Selected = (m.Selected + 1) % len(m.Items)
	case "enter", "space":
		return m, m.activate()
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Items) {
			m.Selected = n - 1
			return m, m.activate()
		}
	}
	return m, nil
}

func (m Menu) activate() tea.Cmd {
	if a := m.Items[m.Selected].Action; a != nil {
		return a()
	}
	return nil
}

// View renders numbered items with a marker on the selection.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		label := strconv.Itoa(i+1) + ". " + item.Label
		if i == m.Selected {
			b.WriteString(theme.Selected.Render("  ▸ " + label))
		} else {
			b.WriteString(theme.Unselected.Render("    " + label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
