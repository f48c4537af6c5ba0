package training

import (
	"fmt"
	"time"

	"golang.org/x/mod/semver"

	"github.com/abhisek/stride/internal/adaptation"
	"github.com/abhisek/stride/internal/feedback"
	"github.com/abhisek/stride/internal/periodization"
	"github.com/abhisek/stride/internal/profile"
	"github.com/abhisek/stride/internal/store"
)

// SnapshotFormat is the layout version written by Snapshot. Restore accepts
// any snapshot with the same major version.
const SnapshotFormat = "v1.0.0"

// Snapshot captures the engine state for persistence.
func (e *Engine) Snapshot() *store.TrainingSnapshotData {
	e.mu.Lock()
	defer e.mu.Unlock()

	records := e.state.Ledger.Records()
	fb := make([]store.FeedbackData, 0, len(records))
	for _, r := range records {
		fb = append(fb, FeedbackData(r))
	}

	return &store.TrainingSnapshotData{
		Format:            SnapshotFormat,
		Profile:           ProfileData(e.profile),
		CurrentWeek:       e.state.CurrentWeek,
		TotalWeeks:        e.state.TotalWeeks,
		BaseWeeklyMileage: e.state.BaseWeeklyMileage,
		PeakWeeklyMileage: e.state.PeakWeeklyMileage,
		Feedback:          fb,
		Signals: store.SignalsData{
			AdaptationScore: e.state.Signals.AdaptationScore,
			InjuryRisk:      e.state.Signals.InjuryRisk,
			FitnessLevel:    e.state.Signals.FitnessLevel,
		},
		Status: string(e.state.Status),
	}
}

// Restore rebuilds an engine from a snapshot. Snapshots written with a
// different major format version are rejected with ErrIncompatibleSnapshot.
func Restore(data *store.TrainingSnapshotData, opts ...Option) (*Engine, error) {
	if data == nil {
		return nil, fmt.Errorf("restore snapshot: missing training data: %w", ErrIncompatibleSnapshot)
	}
	if !semver.IsValid(data.Format) || semver.Major(data.Format) != semver.Major(SnapshotFormat) {
		return nil, fmt.Errorf("restore snapshot format %q: %w", data.Format, ErrIncompatibleSnapshot)
	}

	p := ProfileFromData(data.Profile)
	state, err := NewState(p, max(data.CurrentWeek, 1))
	if err != nil {
		return nil, err
	}
	if data.TotalWeeks > 0 {
		state.TotalWeeks = data.TotalWeeks
	}
	if data.BaseWeeklyMileage > 0 {
		state.BaseWeeklyMileage = data.BaseWeeklyMileage
		state.PeakWeeklyMileage = periodization.PeakMileage(data.BaseWeeklyMileage)
	}
	if data.PeakWeeklyMileage > 0 {
		state.PeakWeeklyMileage = data.PeakWeeklyMileage
	}

	for i, fd := range data.Feedback {
		r, err := FeedbackFromData(fd)
		if err != nil {
			return nil, fmt.Errorf("restore feedback %d: %w", i, err)
		}
		state.Ledger.Append(r)
	}

	state.Signals = adaptation.Signals{
		AdaptationScore: data.Signals.AdaptationScore,
		InjuryRisk:      data.Signals.InjuryRisk,
		FitnessLevel:    data.Signals.FitnessLevel,
	}.Clamp()
	state.Status = ParseStatus(data.Status)

	e := newEngine(p, state, opts)
	e.logger.Debug("engine restored",
		"format", data.Format,
		"week", state.CurrentWeek,
		"feedback", state.Ledger.Len())
	return e, nil
}

// ProfileData converts a profile to its persisted form.
func ProfileData(p profile.Profile) store.ProfileData {
	p = p.Normalize()
	return store.ProfileData{
		Name:          p.Name,
		GoalType:      string(p.GoalType),
		TargetTime:    p.TargetTime,
		Experience:    string(p.ExperienceLevel),
		WeeklyMileage: p.ReportedMileage(),
		TrainingDays:  p.TrainingDays(),
		GymAccess:     p.GymAccess,
	}
}

// ProfileFromData converts a persisted profile back, normalized.
func ProfileFromData(d store.ProfileData) profile.Profile {
	return profile.Profile{
		Name:                 d.Name,
		GoalType:             profile.GoalType(d.GoalType),
		TargetTime:           d.TargetTime,
		ExperienceLevel:      profile.ExperienceLevel(d.Experience),
		CurrentWeeklyMileage: profile.Mileage(d.WeeklyMileage),
		TrainingDaysPerWeek:  d.TrainingDays,
		GymAccess:            d.GymAccess,
	}.Normalize()
}

// FeedbackData converts a feedback record to its persisted form.
func FeedbackData(r feedback.Record) store.FeedbackData {
	return store.FeedbackData{
		ID:                r.ID,
		WorkoutID:         r.WorkoutID,
		Rating:            r.Rating,
		EffortLevel:       r.EffortLevel,
		EnergyLevel:       r.EnergyLevel,
		Mood:              string(r.Mood),
		Injuries:          r.Injuries,
		Notes:             r.Notes,
		CompletedDistance: r.CompletedDistance,
		CompletedDuration: r.CompletedDuration,
		Timestamp:         r.Timestamp.UTC().Format(store.TimeLayout),
	}
}

// FeedbackFromData converts a persisted feedback record back, normalized.
func FeedbackFromData(d store.FeedbackData) (feedback.Record, error) {
	var ts time.Time
	if d.Timestamp != "" {
		var err error
		ts, err = time.Parse(time.RFC3339Nano, d.Timestamp)
		if err != nil {
			return feedback.Record{}, fmt.Errorf("parse feedback timestamp: %w", err)
		}
	}
	return feedback.Record{
		ID:                d.ID,
		WorkoutID:         d.WorkoutID,
		Rating:            d.Rating,
		EffortLevel:       d.EffortLevel,
		EnergyLevel:       d.EnergyLevel,
		Mood:              feedback.Mood(d.Mood),
		Injuries:          d.Injuries,
		Notes:             d.Notes,
		CompletedDistance: d.CompletedDistance,
		CompletedDuration: d.CompletedDuration,
		Timestamp:         ts,
	}.Normalize(), nil
}
