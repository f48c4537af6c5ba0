package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/stride/internal/workout"
)

// Color palette: track colors, calm for easy days and warm for hard ones.
var (
	Primary   = lipgloss.Color("#0EA5E9") // Sky
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Amber
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// Components
var (
	GaugeFilled = lipgloss.NewStyle().
			Background(Secondary)

	GaugeEmpty = lipgloss.NewStyle().
			Background(Border)
)

// IntensityColor returns the color used for a session intensity.
func IntensityColor(i workout.Intensity) color.Color {
	switch i {
	case workout.IntensityHigh:
		return Error
	case workout.IntensityModerate:
		return Warning
	default:
		return Success
	}
}

// Session returns the style for a session type label.
func Session(t workout.Type) lipgloss.Style {
	switch t {
	case workout.TypeRest:
		return lipgloss.NewStyle().Foreground(TextDim)
	case workout.TypeStrength:
		return lipgloss.NewStyle().Foreground(Primary).Bold(true)
	case workout.TypeInterval, workout.TypeTempoRun:
		return lipgloss.NewStyle().Foreground(Accent).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(Text)
	}
}
