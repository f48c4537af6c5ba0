package workout

import (
	"fmt"
	"math"
	"time"

	"github.com/abhisek/stride/internal/adaptation"
	"github.com/abhisek/stride/internal/periodization"
)

// Pace and session constants, in minutes.
const (
	EasyPace        = 9.0
	LongRunPace     = 9.5
	TempoPace       = 7.5
	RecoveryPace    = 10.0
	WarmUpMinutes   = 15.0
	CoolDownMinutes = 15.0
	TempoMaxMiles   = 8.0
	TempoExtraMiles = 2.0

	IntervalBaseMinutes = 45.0
	StrengthBaseMinutes = 45.0

	// ShortIntervalWeeks is the last week that prescribes 800m repeats.
	ShortIntervalWeeks = 8
)

// Input describes the week being composed.
type Input struct {
	Week         int
	TargetVolume float64
	TrainingDays int
	GymAccess    bool
	Signals      adaptation.Signals

	// StrengthChance is the probability of the strength swap.
	StrengthChance float64
	// Rand supplies the strength-swap draw. Nil uses the global generator.
	Rand RandSource
	// Start is the date of the first (Monday) entry.
	Start time.Time
}

// Distribution returns the session type for each training day.
func Distribution(in Input) []Type {
	pattern := Pattern(in.TrainingDays)
	pattern = AdjustForInjury(pattern, in.Signals.InjuryRisk)
	rule := StrengthRule{
		GymAccess: in.GymAccess,
		Fitness:   in.Signals.FitnessLevel,
		Week:      periodization.ClampWeek(in.Week),
		Chance:    in.StrengthChance,
	}
	return rule.Apply(pattern, in.Rand)
}

// Compose returns the seven daily plans of the week, Monday first. Days past
// the training-day count are rest days. Weeks past the program end are
// prescribed as the final week, but ID and WeekNumber keep in.Week.
func Compose(in Input) []Plan {
	if in.TrainingDays <= 0 {
		in.TrainingDays = 4
	}
	if in.TrainingDays > DaysPerWeek {
		in.TrainingDays = DaysPerWeek
	}

	types := Distribution(in)
	start := startOfDay(in.Start)

	plans := make([]Plan, 0, DaysPerWeek)
	for i := 0; i < DaysPerWeek; i++ {
		plan := Plan{
			ID:         fmt.Sprintf("week%d-day%d", in.Week, i),
			WeekNumber: in.Week,
			Day:        DayNames[i],
			Date:       start.AddDate(0, 0, i),
		}
		if i >= in.TrainingDays {
			prescribeRest(&plan, in.Signals.InjuryRisk)
		} else {
			t := TypeEasyRun
			if i < len(types) {
				t = types[i]
			}
			prescribe(&plan, t, in)
		}
		plans = append(plans, plan)
	}
	return plans
}

func prescribeRest(plan *Plan, risk float64) {
	plan.Type = TypeRest
	plan.Intensity = IntensityLow
	if risk >= 4 {
		plan.Description = "Rest day - focus on recovery and injury prevention"
	} else {
		plan.Description = "Rest day - light stretching or walking optional"
	}
}

// prescribe fills distance, duration, intensity and description for a
// training day.
func prescribe(plan *Plan, t Type, in Input) {
	week := periodization.ClampWeek(in.Week)
	fitness := in.Signals.FitnessLevel
	avgDaily := in.TargetVolume / float64(in.TrainingDays)
	fitnessMult := 0.8 + fitness/10*0.4
	adaptMult := periodization.AdaptationMultiplier(in.Signals.AdaptationScore)

	var distance, duration float64
	plan.Type = t

	switch t {
	case TypeEasyRun:
		distance = avgDaily * 0.8 * fitnessMult
		duration = distance * EasyPace
		plan.Intensity = IntensityLow
		plan.Description = "Easy conversational pace run to build aerobic base"

	case TypeLongRun:
		distance = math.Min(avgDaily*2.2, in.TargetVolume*0.4) * fitnessMult
		duration = distance * LongRunPace
		plan.Intensity = IntensityModerate
		plan.Description = fmt.Sprintf("Long steady run to build endurance - %.1f miles", distance)

	case TypeTempoRun:
		core := math.Min(avgDaily*1.2, TempoMaxMiles) * fitnessMult
		distance = core + TempoExtraMiles
		duration = WarmUpMinutes + core*TempoPace + CoolDownMinutes
		plan.Intensity = IntensityModerate
		plan.Description = fmt.Sprintf("%.1fmi tempo at half-marathon pace (with warm-up/cool-down)", core)

	case TypeInterval:
		distance = avgDaily * 1.1 * fitnessMult
		duration = IntervalBaseMinutes + float64(week*2)
		plan.Intensity = IntensityHigh
		unit := "800m"
		if week > ShortIntervalWeeks {
			unit = "1000m"
		}
		reps := int(math.Ceil(float64(week) / 3))
		plan.Description = fmt.Sprintf("%dx%s intervals at 5K pace with recovery", reps, unit)

	case TypeStrength:
		distance = 0
		duration = StrengthBaseMinutes + fitness*2
		plan.Intensity = IntensityModerate
		plan.Description = "Runner-specific strength: core, glutes, single-leg stability, and power"

	case TypeRecovery:
		distance = avgDaily * 0.5 * fitnessMult
		duration = distance * RecoveryPace
		plan.Intensity = IntensityLow
		plan.Description = "Recovery run or active recovery with dynamic stretching"

	default:
		prescribeRest(plan, in.Signals.InjuryRisk)
		return
	}

	distance *= adaptMult
	duration *= adaptMult

	plan.Distance = math.Max(0, math.Round(distance*10)/10)
	plan.Duration = int(math.Max(0, math.Round(duration)))
}

func startOfDay(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
