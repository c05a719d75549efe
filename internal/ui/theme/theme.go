package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/serenity-circle/serenity/internal/assessment"
)

// Color palette, soft and low contrast
var (
	Primary   = lipgloss.Color("#A78BFA") // Lavender
	Secondary = lipgloss.Color("#5EEAD4") // Seafoam
	Accent    = lipgloss.Color("#FDBA74") // Peach
	Text      = lipgloss.Color("#F1F5F9") // Mist
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E1B2E") // Dusk
	Border    = lipgloss.Color("#3F3A5A") // Twilight
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Heading = lipgloss.NewStyle().
		Foreground(TextDim).
		Bold(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Chosen = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)
)

// Card frames a block of content.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(1, 2)

// CategoryColor returns the display color of a category.
func CategoryColor(c assessment.Category) color.Color {
	return lipgloss.Color(assessment.Profile(c).ColorHex)
}
