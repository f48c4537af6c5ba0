// Package periodization computes the weekly training volume from the
// program's phase curve and the runner's current signals.
package periodization

import (
	"math"

	"github.com/abhisek/stride/internal/adaptation"
)

// TotalWeeks is the length of the half-marathon program.
const TotalWeeks = 20

const (
	// PeakMultiplier scales base mileage to the program peak.
	PeakMultiplier = 2.5
	// PeakCap is the highest weekly peak the program prescribes.
	PeakCap = 45.0
	// FloorFraction of base mileage is the lowest weekly volume ever prescribed.
	FloorFraction = 0.5
)

// Phase is a block of the program.
type Phase string

const (
	PhaseBase  Phase = "base"
	PhaseBuild Phase = "build"
	PhasePeak  Phase = "peak"
	PhaseTaper Phase = "taper"
)

// DisplayName returns a human-readable label for the phase.
func (p Phase) DisplayName() string {
	switch p {
	case PhaseBase:
		return "Base"
	case PhaseBuild:
		return "Build"
	case PhasePeak:
		return "Peak"
	case PhaseTaper:
		return "Taper"
	default:
		return string(p)
	}
}

// ClampWeek maps a week onto the program range 1..TotalWeeks.
func ClampWeek(week int) int {
	if week < 1 {
		return 1
	}
	if week > TotalWeeks {
		return TotalWeeks
	}
	return week
}

// PhaseFor returns the phase a program week belongs to.
func PhaseFor(week int) Phase {
	week = ClampWeek(week)
	switch {
	case week <= 2:
		return PhaseBase
	case week <= 12:
		return PhaseBuild
	case week <= 16:
		return PhasePeak
	default:
		return PhaseTaper
	}
}

// ProgressionFactor returns the share of the base-to-peak range prescribed
// for the week. The taper drops below the opening weeks' factor.
func ProgressionFactor(week int) float64 {
	week = ClampWeek(week)
	switch PhaseFor(week) {
	case PhaseBase:
		return 0.7
	case PhaseBuild:
		return 0.7 + float64(week-2)*0.03
	case PhasePeak:
		return 1.0
	default:
		return 1.0 - float64(week-16)*0.15
	}
}

// PeakMileage derives the program peak from the base weekly mileage.
func PeakMileage(base float64) float64 {
	return math.Min(base*PeakMultiplier, PeakCap)
}

// Input is everything TargetVolume needs.
type Input struct {
	Base    float64
	Peak    float64
	Week    int
	Signals adaptation.Signals
}

// AdaptationMultiplier scales volume by the adaptation score (±20% at the
// extremes of the score range).
func AdaptationMultiplier(score float64) float64 {
	return 1 + score*0.1
}

// InjuryDamping returns the volume discount for the injury risk. Only one
// discount applies.
func InjuryDamping(risk float64) float64 {
	switch {
	case risk >= 6:
		return 0.8
	case risk >= 4:
		return 0.9
	default:
		return 1
	}
}

// TargetVolume returns the weekly mileage target. The adaptation multiplier
// and the injury damping compose multiplicatively, and the result never drops
// below FloorFraction of base.
func TargetVolume(in Input) float64 {
	target := in.Base + (in.Peak-in.Base)*ProgressionFactor(in.Week)
	target *= AdaptationMultiplier(in.Signals.AdaptationScore)
	target *= InjuryDamping(in.Signals.InjuryRisk)
	return math.Max(in.Base*FloorFraction, target)
}
