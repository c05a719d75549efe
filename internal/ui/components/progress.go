package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/serenity-circle/serenity/internal/ui/theme"
)

// StepProgress shows how far a member is through the questionnaire: one
// segment per question, answered segments filled and the current one marked.
type StepProgress struct {
	Current int // zero-based index of the question on screen
	Total   int
	Width   int
}

// NewStepProgress places the member on question current of total.
func NewStepProgress(current, total, width int) StepProgress {
	return StepProgress{Current: current, Total: total, Width: width}
}

// View renders the segments followed by a "Question n of N" caption.
func (p StepProgress) View() string {
	if p.Total <= 0 {
		return ""
	}
	current := min(max(p.Current, 0), p.Total-1)
	caption := fmt.Sprintf("  Question %d of %d", current+1, p.Total)

	seg := max((p.Width-lipgloss.Width(caption))/p.Total-1, 1)
	done := lipgloss.NewStyle().Background(theme.Secondary)
	here := lipgloss.NewStyle().Background(theme.Accent)
	todo := lipgloss.NewStyle().Background(theme.Border)

	var b strings.Builder
	for i := range p.Total {
		style := todo
		switch {
		case i < current:
			style = done
		case i == current:
			style = here
		}
		b.WriteString(style.Render(strings.Repeat(" ", seg)))
		if i < p.Total-1 {
			b.WriteString(" ")
		}
	}
	b.WriteString(theme.Hint.UnsetItalic().Render(caption))
	return b.String()
}
