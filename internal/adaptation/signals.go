// Package adaptation derives the training signals (adaptation score, injury
// risk and fitness level) from recent workout feedback.
package adaptation

import (
	"github.com/abhisek/stride/internal/feedback"
	"github.com/abhisek/stride/internal/profile"
)

const (
	// AdaptationWindow is how many recent records feed the adaptation score
	// and fitness level.
	AdaptationWindow = 5

	// InjuryWindow is how many recent records feed the injury risk.
	InjuryWindow = 3

	// SmoothingRetain is the weight kept from the previous adaptation score.
	SmoothingRetain = 0.7
	// SmoothingGain is the weight given to the newly observed delta.
	SmoothingGain = 0.3
)

// Signal bounds.
const (
	MinAdaptation = -2.0
	MaxAdaptation = 2.0
	MinInjuryRisk = 0.0
	MaxInjuryRisk = 10.0
	MinFitness    = 1.0
	MaxFitness    = 10.0
)

// Signals holds the three values the planner and composer read.
type Signals struct {
	AdaptationScore float64 `json:"adaptation_score"`
	InjuryRisk      float64 `json:"injury_risk"`
	FitnessLevel    float64 `json:"fitness_level"`
}

// Initial returns the signals for a runner with no feedback yet. Fitness is
// estimated from the reported mileage, so a runner who reported none gets
// the low-mileage adjustment.
func Initial(p profile.Profile) Signals {
	return Signals{
		AdaptationScore: 0,
		InjuryRisk:      0,
		FitnessLevel:    InitialFitness(p.ExperienceLevel, p.ReportedMileage()),
	}
}

// InitialFitness estimates fitness from experience and weekly mileage.
func InitialFitness(level profile.ExperienceLevel, weeklyMileage float64) float64 {
	score := 3.0
	switch level {
	case profile.ExperienceBeginner:
		score = 2
	case profile.ExperienceIntermediate:
		score = 5
	case profile.ExperienceAdvanced:
		score = 8
	}

	switch {
	case weeklyMileage > 30:
		score += 2
	case weeklyMileage > 20:
		score++
	case weeklyMileage < 10:
		score--
	}
	return clamp(score, MinFitness, MaxFitness)
}

// Update folds the ledger into the previous signals. An empty ledger leaves
// every signal unchanged.
func Update(prev Signals, ledger feedback.Ledger) Signals {
	adaptWindow := ledger.Recent(AdaptationWindow)
	return Signals{
		AdaptationScore: NextAdaptationScore(prev.AdaptationScore, adaptWindow),
		InjuryRisk:      InjuryRisk(prev.InjuryRisk, ledger.Recent(InjuryWindow)),
		FitnessLevel:    NextFitnessLevel(prev.FitnessLevel, adaptWindow),
	}
}

// Clamp forces every signal into its documented range.
func (s Signals) Clamp() Signals {
	return Signals{
		AdaptationScore: clamp(s.AdaptationScore, MinAdaptation, MaxAdaptation),
		InjuryRisk:      clamp(s.InjuryRisk, MinInjuryRisk, MaxInjuryRisk),
		FitnessLevel:    clamp(s.FitnessLevel, MinFitness, MaxFitness),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
