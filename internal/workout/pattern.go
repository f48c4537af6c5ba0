package workout

import (
	"math/rand/v2"
	"slices"
)

// DefaultStrengthChance is the probability that an eligible week swaps one
// easy run for a strength session.
const DefaultStrengthChance = 0.5

// Strength eligibility thresholds.
const (
	StrengthMinFitness = 4.0
	StrengthMinWeek    = 3
)

// RandSource supplies uniform draws in [0, 1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// globalRand draws from the math/rand/v2 top-level source.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// GlobalRand returns a RandSource backed by the process-wide generator.
func GlobalRand() RandSource { return globalRand{} }

// patterns are the fixed weekly templates keyed by training-day count.
var patterns = map[int][]Type{
	3: {TypeEasyRun, TypeTempoRun, TypeLongRun},
	4: {TypeEasyRun, TypeInterval, TypeEasyRun, TypeLongRun},
	5: {TypeEasyRun, TypeInterval, TypeEasyRun, TypeTempoRun, TypeLongRun},
	6: {TypeEasyRun, TypeInterval, TypeRecovery, TypeTempoRun, TypeEasyRun, TypeLongRun},
	7: {TypeEasyRun, TypeInterval, TypeRecovery, TypeTempoRun, TypeEasyRun, TypeLongRun, TypeRecovery},
}

// Pattern returns a copy of the template for the given number of training
// days. Counts without a template use the 4-day one.
func Pattern(days int) []Type {
	if days > DaysPerWeek {
		days = DaysPerWeek
	}
	p, ok := patterns[days]
	if !ok {
		p = patterns[4]
	}
	return slices.Clone(p)
}

// AdjustForInjury downgrades hard sessions. At risk >= 6 every interval and
// tempo slot becomes recovery; at risk >= 4 only the first interval slot
// becomes an easy run.
func AdjustForInjury(pattern []Type, risk float64) []Type {
	out := slices.Clone(pattern)
	switch {
	case risk >= 6:
		for i, t := range out {
			if t.IsHighIntensity() {
				out[i] = TypeRecovery
			}
		}
	case risk >= 4:
		if i := slices.Index(out, TypeInterval); i != -1 {
			out[i] = TypeEasyRun
		}
	}
	return out
}

// StrengthRule decides whether the first easy run becomes a strength session.
type StrengthRule struct {
	GymAccess bool
	Fitness   float64
	Week      int
	Chance    float64
}

// Eligible reports whether the runner qualifies for strength work this week.
func (r StrengthRule) Eligible() bool {
	return r.GymAccess && r.Fitness >= StrengthMinFitness && r.Week >= StrengthMinWeek
}

// Apply swaps the first easy run for strength when eligible and the draw
// from rng falls under the chance. No draw is taken unless the runner is
// eligible and an easy run exists.
func (r StrengthRule) Apply(pattern []Type, rng RandSource) []Type {
	out := slices.Clone(pattern)
	if !r.Eligible() {
		return out
	}
	i := slices.Index(out, TypeEasyRun)
	if i == -1 {
		return out
	}
	if rng == nil {
		rng = GlobalRand()
	}
	if rng.Float64() < r.Chance {
		out[i] = TypeStrength
	}
	return out
}
