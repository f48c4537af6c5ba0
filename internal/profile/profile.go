// Package profile holds the runner intake profile consumed by the training core.
package profile

import "strings"

// ExperienceLevel represents how long the runner has been running.
type ExperienceLevel string

const (
	ExperienceUnknown      ExperienceLevel = ""
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// GoalType is the runner's race goal.
type GoalType string

const (
	GoalFinish     GoalType = "finish"
	GoalTimeTarget GoalType = "time_target"
)

const (
	// DefaultWeeklyMileage is used when the intake did not report mileage.
	DefaultWeeklyMileage = 15.0

	// DefaultTrainingDays is used when the intake did not report training days.
	DefaultTrainingDays = 4

	// MaxTrainingDays is the number of days in a program week.
	MaxTrainingDays = 7
)

// Profile describes the runner. It is supplied once by the intake flow and
// never changes for the lifetime of a training engine.
type Profile struct {
	Name                 string          `json:"name,omitempty"`
	GoalType             GoalType        `json:"goal_type,omitempty"`
	TargetTime           string          `json:"target_time,omitempty"`
	ExperienceLevel      ExperienceLevel `json:"running_experience,omitempty"`
	CurrentWeeklyMileage *float64        `json:"current_weekly_mileage,omitempty"`
	TrainingDaysPerWeek  int             `json:"training_days_per_week,omitempty"`
	GymAccess            bool            `json:"gym_access"`
}

// Normalize returns a copy of p with defaults applied and out-of-range values
// clamped. Negative mileage counts as zero; absent or zero mileage is kept
// as reported and WeeklyMileage falls back to DefaultWeeklyMileage. Training
// days outside 1..7 fall back to the default (non-positive) or clamp to 7.
func (p Profile) Normalize() Profile {
	out := p
	out.ExperienceLevel = ParseExperience(string(p.ExperienceLevel))

	switch GoalType(strings.ToLower(strings.TrimSpace(string(p.GoalType)))) {
	case GoalTimeTarget:
		out.GoalType = GoalTimeTarget
	default:
		out.GoalType = GoalFinish
		out.TargetTime = ""
	}

	if p.CurrentWeeklyMileage != nil {
		out.CurrentWeeklyMileage = Mileage(max(*p.CurrentWeeklyMileage, 0))
	}

	switch {
	case p.TrainingDaysPerWeek <= 0:
		out.TrainingDaysPerWeek = DefaultTrainingDays
	case p.TrainingDaysPerWeek > MaxTrainingDays:
		out.TrainingDaysPerWeek = MaxTrainingDays
	}

	return out
}

// WeeklyMileage returns the reported mileage, or the default when absent or
// zero. It sets the base and peak training volume.
func (p Profile) WeeklyMileage() float64 {
	if p.CurrentWeeklyMileage == nil || *p.CurrentWeeklyMileage <= 0 {
		return DefaultWeeklyMileage
	}
	return *p.CurrentWeeklyMileage
}

// ReportedMileage returns the mileage as reported, with absent or negative
// values counting as zero.
func (p Profile) ReportedMileage() float64 {
	if p.CurrentWeeklyMileage == nil {
		return 0
	}
	return max(*p.CurrentWeeklyMileage, 0)
}

// TrainingDays returns the normalized number of training days per week.
func (p Profile) TrainingDays() int {
	return p.Normalize().TrainingDaysPerWeek
}

// ParseExperience maps free-form input onto an ExperienceLevel.
// Unrecognized values map to ExperienceUnknown.
func ParseExperience(s string) ExperienceLevel {
	switch ExperienceLevel(strings.ToLower(strings.TrimSpace(s))) {
	case ExperienceBeginner:
		return ExperienceBeginner
	case ExperienceIntermediate:
		return ExperienceIntermediate
	case ExperienceAdvanced:
		return ExperienceAdvanced
	default:
		return ExperienceUnknown
	}
}

// Mileage is a helper for building profiles with an explicit mileage.
func Mileage(v float64) *float64 {
	return &v
}
