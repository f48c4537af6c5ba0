package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/stride/internal/adaptation"
	"github.com/abhisek/stride/internal/periodization"
	"github.com/abhisek/stride/internal/training"
	"github.com/abhisek/stride/internal/ui/components"
	"github.com/abhisek/stride/internal/ui/theme"
	"github.com/abhisek/stride/internal/workout"
)

const (
	DefaultWidth = 80
	MinWidth     = 60
)

// Column widths of the week table.
const (
	dayWidth      = 10
	typeWidth     = 11
	distanceWidth = 8
	durationWidth = 8
)

// clampWidth keeps rendering readable on narrow or unknown terminals.
func clampWidth(width int) int {
	if width <= 0 {
		return DefaultWidth
	}
	return max(width, MinWidth)
}

// RenderHeader renders a title bar with a right-aligned status.
func RenderHeader(title, status string, width int) string {
	width = clampWidth(width)

	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("stride  ") + theme.Body.Render(title)

	right := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Render(status)

	innerWidth := width - 4 // account for border padding
	gap := innerWidth - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return theme.Header.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

// RenderWeek renders the seven sessions of a week as a table followed by a
// totals line.
func RenderWeek(plans []workout.Plan, width int) string {
	width = clampWidth(width)
	if len(plans) == 0 {
		return theme.Hint.Render("No sessions planned.")
	}

	week := plans[0].WeekNumber
	phase := periodization.PhaseFor(week)
	header := RenderHeader(
		fmt.Sprintf("Week %d of %d", week, periodization.TotalWeeks),
		phase.DisplayName()+" phase",
		width,
	)

	descWidth := width - dayWidth - typeWidth - distanceWidth - durationWidth - 4
	if descWidth < 10 {
		descWidth = 10
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	b.WriteString(dim.Width(dayWidth).Render("Day") + " " +
		dim.Width(typeWidth).Render("Session") + " " +
		dim.Width(distanceWidth).Render("Miles") + " " +
		dim.Width(durationWidth).Render("Minutes") + " " +
		dim.Render("Notes"))
	b.WriteString("\n")

	for _, p := range plans {
		b.WriteString(renderSession(p, descWidth))
		b.WriteString("\n")
	}

	s := workout.Summarize(plans)
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf(
		"%d sessions  %.1f mi  %d min  %d rest",
		s.TrainingSessions, s.TotalDistance, s.TotalDuration, s.RestDays,
	)))
	return b.String()
}

func renderSession(p workout.Plan, descWidth int) string {
	distance, duration := "-", "-"
	if p.Type != workout.TypeRest {
		if p.Distance > 0 {
			distance = fmt.Sprintf("%.1f", p.Distance)
		}
		duration = fmt.Sprintf("%d", p.Duration)
	}

	marker := lipgloss.NewStyle().Foreground(theme.IntensityColor(p.Intensity)).Render("●")
	desc := p.Description
	if len(desc) > descWidth {
		desc = desc[:descWidth-1] + "…"
	}

	return theme.Body.Width(dayWidth).Render(p.Day) + " " +
		theme.Session(p.Type).Width(typeWidth).Render(p.Type.DisplayName()) + " " +
		theme.Body.Width(distanceWidth).Render(distance) + " " +
		theme.Body.Width(durationWidth).Render(duration) + " " +
		marker + " " + theme.Hint.Render(desc)
}

// RenderInsights renders signal gauges, labels and recommendations.
func RenderInsights(ins training.Insights, width int) string {
	width = clampWidth(width)
	gaugeWidth := width - 6

	var b strings.Builder
	b.WriteString(theme.Title.Render("Training insights"))
	b.WriteString("\n\n")

	s := ins.Signals
	gauges := []components.Gauge{
		components.NewGauge("Adaptation", s.AdaptationScore, adaptation.MinAdaptation, adaptation.MaxAdaptation, gaugeWidth),
		components.NewGauge("Injury risk", s.InjuryRisk, adaptation.MinInjuryRisk, adaptation.MaxInjuryRisk, gaugeWidth),
		components.NewGauge("Fitness", s.FitnessLevel, adaptation.MinFitness, adaptation.MaxFitness, gaugeWidth),
	}
	labels := []string{
		string(ins.AdaptationStatus),
		string(ins.InjuryRiskLevel),
		string(ins.FitnessProgress),
	}
	for i, g := range gauges {
		b.WriteString(g.View())
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", 14))
		b.WriteString(labelStyle(ins, i).Render(labels[i]))
		b.WriteString("\n")
	}

	if len(ins.Recommendations) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Title.Render("Recommendations"))
		b.WriteString("\n")
		for _, r := range ins.Recommendations {
			b.WriteString("  • " + theme.Body.Render(r) + "\n")
		}
	}
	return theme.Card.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func labelStyle(ins training.Insights, i int) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	switch i {
	case 0:
		switch ins.AdaptationStatus {
		case training.AdaptationProgressing:
			return style.Foreground(theme.Success)
		case training.AdaptationRecovery:
			return style.Foreground(theme.Error)
		}
	case 1:
		switch ins.InjuryRiskLevel {
		case training.RiskHigh:
			return style.Foreground(theme.Error)
		case training.RiskModerate:
			return style.Foreground(theme.Warning)
		default:
			return style.Foreground(theme.Success)
		}
	case 2:
		if ins.FitnessProgress == training.FitnessExcellent || ins.FitnessProgress == training.FitnessGood {
			return style.Foreground(theme.Success)
		}
	}
	return style.Foreground(theme.Text)
}
