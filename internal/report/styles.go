package report

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary).
			MarginTop(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	SpeciesStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	ValueStyle = lipgloss.NewStyle()

	MissingStyle = lipgloss.NewStyle().
			Foreground(colorError)
)

// RenderTitle renders a report heading
func RenderTitle(title string) string {
	return TitleStyle.Render(title)
}

// RenderSection renders a section heading
func RenderSection(name string) string {
	return SectionStyle.Render(name)
}
