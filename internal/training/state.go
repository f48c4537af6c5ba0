package training

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/stride/internal/adaptation"
	"github.com/abhisek/stride/internal/feedback"
	"github.com/abhisek/stride/internal/periodization"
	"github.com/abhisek/stride/internal/profile"
	"github.com/abhisek/stride/internal/workout"
)

var (
	// ErrInvalidWeek is returned for program weeks below 1.
	ErrInvalidWeek = errors.New("invalid program week")

	// ErrIncompatibleSnapshot is returned when a snapshot's format cannot be
	// restored by this build.
	ErrIncompatibleSnapshot = errors.New("incompatible snapshot format")
)

// Status is the last transition applied to a State.
type Status string

const (
	StatusInitialized      Status = "initialized"
	StatusPlanRequested    Status = "plan_requested"
	StatusFeedbackRecorded Status = "feedback_recorded"
)

// ParseStatus maps s to a Status. Unknown values are treated as initialized.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusPlanRequested, StatusFeedbackRecorded:
		return Status(s)
	default:
		return StatusInitialized
	}
}

// State is the complete training state of one runner. It is a value: the
// transition methods return a new State and leave the receiver untouched.
type State struct {
	CurrentWeek       int                `json:"current_week"`
	TotalWeeks        int                `json:"total_weeks"`
	BaseWeeklyMileage float64            `json:"base_weekly_mileage"`
	PeakWeeklyMileage float64            `json:"peak_weekly_mileage"`
	Ledger            feedback.Ledger    `json:"feedback"`
	Signals           adaptation.Signals `json:"signals"`
	Status            Status             `json:"status"`
}

// NewState derives the initial state from a profile and the starting week.
func NewState(p profile.Profile, startWeek int) (State, error) {
	if startWeek < 1 {
		return State{}, fmt.Errorf("start week %d: %w", startWeek, ErrInvalidWeek)
	}
	p = p.Normalize()
	base := p.WeeklyMileage()
	return State{
		CurrentWeek:       startWeek,
		TotalWeeks:        periodization.TotalWeeks,
		BaseWeeklyMileage: base,
		PeakWeeklyMileage: periodization.PeakMileage(base),
		Signals:           adaptation.Initial(p),
		Status:            StatusInitialized,
	}, nil
}

// WithFeedback appends the normalized record to the ledger and re-derives
// every signal from the updated window.
func (s State) WithFeedback(r feedback.Record) State {
	s.Ledger.Append(r.Normalize())
	s.Signals = adaptation.Update(s.Signals, s.Ledger)
	s.Status = StatusFeedbackRecorded
	return s
}

// PlanOptions carries the inputs of plan composition that are not part of
// the state.
type PlanOptions struct {
	StrengthChance float64
	Rand           workout.RandSource
	Start          time.Time
}

// TargetVolume returns the weekly mileage target for week under the current
// signals.
func (s State) TargetVolume(week int) float64 {
	return periodization.TargetVolume(periodization.Input{
		Base:    s.BaseWeeklyMileage,
		Peak:    s.PeakWeeklyMileage,
		Week:    week,
		Signals: s.Signals,
	})
}

// Plan composes the seven sessions of week and returns them with the state
// advanced to that week. The ledger and the signals are not modified.
func (s State) Plan(p profile.Profile, week int, opts PlanOptions) ([]workout.Plan, State, error) {
	if week < 1 {
		return nil, s, fmt.Errorf("plan week %d: %w", week, ErrInvalidWeek)
	}
	p = p.Normalize()

	plans := workout.Compose(workout.Input{
		Week:           week,
		TargetVolume:   s.TargetVolume(week),
		TrainingDays:   p.TrainingDays(),
		GymAccess:      p.GymAccess,
		Signals:        s.Signals,
		StrengthChance: opts.StrengthChance,
		Rand:           opts.Rand,
		Start:          opts.Start,
	})

	s.CurrentWeek = week
	s.Status = StatusPlanRequested
	return plans, s, nil
}

// Phase returns the periodization phase of the current week.
func (s State) Phase() periodization.Phase {
	return periodization.PhaseFor(s.CurrentWeek)
}

// WeeksRemaining returns the number of program weeks after the current one.
func (s State) WeeksRemaining() int {
	if s.CurrentWeek >= s.TotalWeeks {
		return 0
	}
	return s.TotalWeeks - s.CurrentWeek
}
