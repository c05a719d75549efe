package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/serenity-circle/serenity/internal/assessment"
	"github.com/serenity-circle/serenity/internal/ui/components"
	"github.com/serenity-circle/serenity/internal/ui/layout"
	"github.com/serenity-circle/serenity/internal/ui/theme"
)

const banner = "S  E  R  E  N  I  T  Y"

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current window size.
func (m Model) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}
	header := layout.RenderHeader(m.title(), m.status(), m.width)
	footer := layout.RenderFooter(m.hints(), m.width)
	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return layout.RenderFrame(header, m.content(m.width, contentHeight), footer, m.width, m.height)
}

func (m Model) title() string {
	switch m.phase {
	case phaseQuestion:
		return "Assessment"
	case phaseResult:
		return "Your community"
	}
	return ""
}

func (m Model) status() string {
	if m.phase == phaseQuestion {
		return fmt.Sprintf("%d / %d", m.step+1, len(m.questions))
	}
	return ""
}

func (m Model) hints() []layout.KeyHint {
	switch m.phase {
	case phaseQuestion:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Answer"},
			{Key: "←", Description: "Back"},
			{Key: "Esc", Description: "Quit"},
		}
	case phaseResult:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
	}
	return []layout.KeyHint{{Key: "Enter", Description: "Begin"}, {Key: "Esc", Description: "Quit"}}
}

func (m Model) content(width, height int) string {
	var body string
	switch m.phase {
	case phaseIntro:
		body = theme.Title.Render(banner) + "\n\n" +
			theme.Body.Render("Eight short questions about how you have been feeling.") + "\n" +
			theme.Body.Render("Your answers match you with a peer support community.") + "\n\n" +
			theme.Hint.Render("There are no right or wrong answers.")
	case phaseQuestion:
		bar := components.NewStepProgress(m.step, len(m.questions), min(width-8, 60))
		body = bar.View() + "\n\n" + m.choice.View()
	case phaseResult:
		body = renderResult(m.result.Category, min(width-8, 76)) + "\n\n" + m.menu.View()
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func renderResult(c assessment.Category, width int) string {
	p := assessment.Profile(c)
	in := assessment.Insight(c)
	accent := lipgloss.NewStyle().Foreground(theme.CategoryColor(c)).Bold(true)
	wrap := lipgloss.NewStyle().Width(width - 8)

	var b strings.Builder
	b.WriteString(accent.Render(p.Emoji + "  " + p.Name))
	b.WriteString("\n\n")
	b.WriteString(wrap.Render(theme.Body.Render(p.Description)))
	b.WriteString("\n\n")
	b.WriteString(theme.Heading.Render("Traits  "))
	b.WriteString(wrap.Render(theme.Body.Render(strings.Join(p.Traits, " · "))))
	b.WriteString("\n")
	b.WriteString(theme.Heading.Render("Support "))
	b.WriteString(wrap.Render(theme.Body.Render(p.SupportFocus)))
	b.WriteString("\n")
	b.WriteString(theme.Heading.Render("Group   "))
	b.WriteString(accent.Render(assessment.GroupName(c)))
	if len(in.RecommendedResources) > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.Heading.Render("Resources"))
		for _, r := range in.RecommendedResources {
			b.WriteString("\n  • " + theme.Body.Render(r))
		}
	}
	return theme.Card.Render(b.String())
}
