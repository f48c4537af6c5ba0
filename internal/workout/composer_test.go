package workout

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/stride/internal/adaptation"
)

// constRand always returns the same draw.
type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

// countingRand records how many draws were taken.
type countingRand struct {
	v     float64
	draws int
}

func (c *countingRand) Float64() float64 {
	c.draws++
	return c.v
}

var monday = time.Date(2026, 10, 12, 15, 4, 0, 0, time.UTC)

func baseInput() Input {
	return Input{
		Week:           1,
		TargetVolume:   20,
		TrainingDays:   4,
		Signals:        adaptation.Signals{FitnessLevel: 5},
		StrengthChance: DefaultStrengthChance,
		Rand:           constRand(0.9),
		Start:          monday,
	}
}

func TestPattern(t *testing.T) {
	assert.Equal(t, []Type{TypeEasyRun, TypeTempoRun, TypeLongRun}, Pattern(3))
	assert.Equal(t, []Type{TypeEasyRun, TypeInterval, TypeEasyRun, TypeLongRun}, Pattern(4))
	assert.Equal(t, []Type{TypeEasyRun, TypeInterval, TypeRecovery, TypeTempoRun, TypeEasyRun, TypeLongRun, TypeRecovery}, Pattern(7))
	assert.Equal(t, Pattern(4), Pattern(2))
	assert.Equal(t, Pattern(7), Pattern(9))

	// Callers get their own copy.
	p := Pattern(3)
	p[0] = TypeRest
	assert.Equal(t, TypeEasyRun, Pattern(3)[0])
}

func TestAdjustForInjury(t *testing.T) {
	five := Pattern(5)

	assert.Equal(t, five, AdjustForInjury(five, 3.5))
	assert.Equal(t,
		[]Type{TypeEasyRun, TypeEasyRun, TypeEasyRun, TypeTempoRun, TypeLongRun},
		AdjustForInjury(five, 4))
	assert.Equal(t,
		[]Type{TypeEasyRun, TypeRecovery, TypeEasyRun, TypeRecovery, TypeLongRun},
		AdjustForInjury(five, 6))

	// Moderate risk with no intervals leaves the pattern alone.
	assert.Equal(t, Pattern(3), AdjustForInjury(Pattern(3), 5))
}

func TestStrengthRule(t *testing.T) {
	rule := StrengthRule{GymAccess: true, Fitness: 5, Week: 3, Chance: 0.5}

	got := rule.Apply(Pattern(4), constRand(0.2))
	assert.Equal(t, []Type{TypeStrength, TypeInterval, TypeEasyRun, TypeLongRun}, got)

	got = rule.Apply(Pattern(4), constRand(0.7))
	assert.Equal(t, Pattern(4), got)

	always := rule
	always.Chance = 1
	assert.Equal(t, TypeStrength, always.Apply(Pattern(3), constRand(0.999))[0])

	never := rule
	never.Chance = 0
	assert.Equal(t, Pattern(3), never.Apply(Pattern(3), constRand(0)))
}

func TestStrengthRule_NoDrawWhenIneligible(t *testing.T) {
	tests := []struct {
		name    string
		rule    StrengthRule
		pattern []Type
	}{
		{"no gym", StrengthRule{Fitness: 8, Week: 5, Chance: 1}, Pattern(4)},
		{"low fitness", StrengthRule{GymAccess: true, Fitness: 3.9, Week: 5, Chance: 1}, Pattern(4)},
		{"too early", StrengthRule{GymAccess: true, Fitness: 8, Week: 2, Chance: 1}, Pattern(4)},
		{"no easy run", StrengthRule{GymAccess: true, Fitness: 8, Week: 5, Chance: 1}, []Type{TypeTempoRun, TypeLongRun}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := &countingRand{v: 0}
			got := tt.rule.Apply(tt.pattern, rng)
			assert.Equal(t, tt.pattern, got)
			assert.Zero(t, rng.draws)
		})
	}
}

func TestCompose_SevenDaysMondayFirst(t *testing.T) {
	for days := 1; days <= 7; days++ {
		in := baseInput()
		in.TrainingDays = days
		plans := Compose(in)
		require.Len(t, plans, DaysPerWeek)

		var training int
		for i, p := range plans {
			assert.Equal(t, DayNames[i], p.Day)
			assert.Equal(t, time.Date(2026, 10, 12+i, 0, 0, 0, 0, time.UTC), p.Date)
			assert.NotEmpty(t, p.Description)
			assert.GreaterOrEqual(t, p.Distance, 0.0)
			assert.GreaterOrEqual(t, p.Duration, 0)
			if p.Type == TypeRest {
				assert.Zero(t, p.Distance)
				assert.Zero(t, p.Duration)
				continue
			}
			training++
		}
		assert.Equal(t, days, training, "training days for %d", days)
	}
}

func TestCompose_BeginnerWeekOne(t *testing.T) {
	// Base 5, peak 12.5, factor 0.7: target 10.25. Fitness 1.
	in := Input{
		Week:         1,
		TargetVolume: 10.25,
		TrainingDays: 3,
		Signals:      adaptation.Signals{FitnessLevel: 1},
		Rand:         constRand(0),
		Start:        monday,
	}
	plans := Compose(in)

	avgDaily := 10.25 / 3
	fitnessMult := 0.8 + 1.0/10*0.4
	easy := avgDaily * 0.8 * fitnessMult

	assert.Equal(t, TypeEasyRun, plans[0].Type)
	assert.Equal(t, math.Round(easy*10)/10, plans[0].Distance)
	assert.Equal(t, 2.3, plans[0].Distance)
	assert.Equal(t, 21, plans[0].Duration)

	assert.Equal(t, TypeTempoRun, plans[1].Type)
	assert.Equal(t, 5.4, plans[1].Distance)
	assert.Equal(t, 56, plans[1].Duration)
	assert.Equal(t, "3.4mi tempo at half-marathon pace (with warm-up/cool-down)", plans[1].Description)

	assert.Equal(t, TypeLongRun, plans[2].Type)
	assert.Equal(t, 3.4, plans[2].Distance)
	assert.Equal(t, 33, plans[2].Duration)
	assert.Equal(t, IntensityModerate, plans[2].Intensity)

	for _, p := range plans[3:] {
		assert.Equal(t, TypeRest, p.Type)
		assert.Equal(t, "Rest day - light stretching or walking optional", p.Description)
	}
}

func TestCompose_Intervals(t *testing.T) {
	tests := []struct {
		week     int
		desc     string
		duration int
	}{
		{1, "1x800m intervals at 5K pace with recovery", 47},
		{8, "3x800m intervals at 5K pace with recovery", 61},
		{9, "3x1000m intervals at 5K pace with recovery", 63},
		{16, "6x1000m intervals at 5K pace with recovery", 77},
		{24, "7x1000m intervals at 5K pace with recovery", 85},
	}
	for _, tt := range tests {
		in := baseInput()
		in.Week = tt.week
		plans := Compose(in)
		require.Equal(t, TypeInterval, plans[1].Type, "week %d", tt.week)
		assert.Equal(t, tt.desc, plans[1].Description)
		assert.Equal(t, tt.duration, plans[1].Duration)
		assert.Equal(t, IntensityHigh, plans[1].Intensity)
		assert.Equal(t, tt.week, plans[1].WeekNumber)
		assert.Equal(t, fmt.Sprintf("week%d-day1", tt.week), plans[1].ID)
	}
}

func TestCompose_AdaptationScalesEveryNonRestSession(t *testing.T) {
	in := baseInput()
	in.Week = 5
	in.GymAccess = true
	in.Rand = constRand(0)
	neutral := Compose(in)

	in.Signals.AdaptationScore = 1
	boosted := Compose(in)

	for i := range neutral {
		if neutral[i].Type == TypeRest {
			continue
		}
		assert.GreaterOrEqual(t, boosted[i].Duration, neutral[i].Duration, "day %d", i)
		assert.GreaterOrEqual(t, boosted[i].Distance, neutral[i].Distance, "day %d", i)
	}
	assert.Equal(t, TypeStrength, boosted[0].Type)
	// (45 + 5*2) * 1.1
	assert.Equal(t, 61, boosted[0].Duration)
	assert.Zero(t, boosted[0].Distance)
}

func TestCompose_HighRiskSuppressesHardSessions(t *testing.T) {
	for days := 3; days <= 7; days++ {
		in := baseInput()
		in.TrainingDays = days
		in.Signals.InjuryRisk = 6
		for _, p := range Compose(in) {
			assert.False(t, p.Type.IsHighIntensity(), "days=%d day=%s type=%s", days, p.Day, p.Type)
			if p.Type == TypeRest {
				assert.Equal(t, "Rest day - focus on recovery and injury prevention", p.Description)
			}
		}
	}
}

func TestCompose_Deterministic(t *testing.T) {
	in := baseInput()
	in.Week = 6
	in.GymAccess = true
	in.Rand = constRand(0.3)
	a := Compose(in)
	b := Compose(in)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Compose not deterministic (-first +second):\n%s", diff)
	}
}

func TestCompose_ClampsTrainingDays(t *testing.T) {
	in := baseInput()
	in.TrainingDays = 0
	plans := Compose(in)
	assert.Equal(t, TypeLongRun, plans[3].Type)
	assert.Equal(t, TypeRest, plans[4].Type)

	in.TrainingDays = 11
	for _, p := range Compose(in) {
		assert.NotEqual(t, TypeRest, p.Type)
	}
}

func TestSummarize(t *testing.T) {
	in := baseInput()
	plans := Compose(in)
	plans[0].Completed = true
	plans[5].Completed = true // rest days never count

	s := Summarize(plans)
	assert.Equal(t, 1, s.WeekNumber)
	assert.Equal(t, 4, s.TrainingSessions)
	assert.Equal(t, 3, s.RestDays)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 25, s.Progress())
	assert.Equal(t, 2, s.ByType[TypeEasyRun])

	var distance float64
	var duration int
	for _, p := range plans {
		distance += p.Distance
		duration += p.Duration
	}
	assert.InDelta(t, distance, s.TotalDistance, 0.05)
	assert.Equal(t, duration, s.TotalDuration)

	assert.Zero(t, Summarize(nil).Progress())
}
