package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/stride/internal/ui/theme"
)

// Gauge displays a value on a horizontal bar between Min and Max.
type Gauge struct {
	Label string
	Value float64
	Min   float64
	Max   float64
	Width int
	// Format renders the value after the bar; nil hides it.
	Format func(v float64) string
}

// NewGauge creates a gauge that prints the value with one decimal.
func NewGauge(label string, value, lo, hi float64, width int) Gauge {
	return Gauge{
		Label:  label,
		Value:  value,
		Min:    lo,
		Max:    hi,
		Width:  width,
		Format: func(v float64) string { return fmt.Sprintf("%.1f", v) },
	}
}

// Fraction returns the filled share of the bar in [0, 1].
func (g Gauge) Fraction() float64 {
	span := g.Max - g.Min
	if span <= 0 {
		return 0
	}
	f := (g.Value - g.Min) / span
	return min(max(f, 0), 1)
}

// View renders the gauge.
func (g Gauge) View() string {
	var result string

	if g.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Width(12).Render(g.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	valueText := ""
	if g.Format != nil {
		valueText = "  " + g.Format(g.Value)
	}

	barWidth := g.Width - labelWidth - len(valueText)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * g.Fraction())
	empty := barWidth - filled

	result += theme.GaugeFilled.Render(strings.Repeat(" ", filled)) +
		theme.GaugeEmpty.Render(strings.Repeat(" ", empty))

	if valueText != "" {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(valueText)
	}

	return result
}
