// Package feedback models post-workout feedback and the bounded ledger the
// training core folds over.
package feedback

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Mood is the runner's self-reported mood after a workout.
type Mood string

const (
	MoodAmazing   Mood = "amazing"
	MoodGreat     Mood = "great"
	MoodGood      Mood = "good"
	MoodOkay      Mood = "okay"
	MoodTough     Mood = "tough"
	MoodStruggled Mood = "struggled"
	MoodTired     Mood = "tired"
	MoodExhausted Mood = "exhausted"
)

// AllMoods returns the closed mood vocabulary, most positive first.
func AllMoods() []Mood {
	return []Mood{MoodAmazing, MoodGreat, MoodGood, MoodOkay, MoodTough, MoodStruggled, MoodTired, MoodExhausted}
}

// ParseMood maps input onto the vocabulary. Unknown moods become MoodOkay.
func ParseMood(s string) Mood {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllMoods() {
		if m == known {
			return m
		}
	}
	return MoodOkay
}

// IsFatigued reports whether the mood signals fatigue.
func (m Mood) IsFatigued() bool {
	return m == MoodTired || m == MoodExhausted
}

// Rating and perceived-exertion bounds.
const (
	MinRating = 1
	MaxRating = 5
	MinLevel  = 1
	MaxLevel  = 10
)

// Record is one runner-submitted reaction to a completed workout.
type Record struct {
	ID                string    `json:"id"`
	WorkoutID         string    `json:"workout_id,omitempty"`
	Rating            int       `json:"rating"`
	EffortLevel       int       `json:"effort_level"`
	EnergyLevel       int       `json:"energy_level"`
	Mood              Mood      `json:"mood"`
	Injuries          []string  `json:"injuries,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	CompletedDistance *float64  `json:"completed_distance,omitempty"`
	CompletedDuration *float64  `json:"completed_duration,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
}

// New creates a normalized record with a fresh ID and the given timestamp.
func New(rating, effort, energy int, mood string, injuries []string, ts time.Time) Record {
	return Record{
		Rating:      rating,
		EffortLevel: effort,
		EnergyLevel: energy,
		Mood:        Mood(mood),
		Injuries:    injuries,
		Timestamp:   ts,
	}.Normalize()
}

// Normalize clamps numeric fields into range, maps the mood onto the
// vocabulary, drops blank injury mentions and assigns an ID if missing.
func (r Record) Normalize() Record {
	out := r
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	out.Rating = clampInt(r.Rating, MinRating, MaxRating)
	out.EffortLevel = clampInt(r.EffortLevel, MinLevel, MaxLevel)
	out.EnergyLevel = clampInt(r.EnergyLevel, MinLevel, MaxLevel)
	out.Mood = ParseMood(string(r.Mood))

	var injuries []string
	for _, inj := range r.Injuries {
		if s := strings.TrimSpace(inj); s != "" {
			injuries = append(injuries, s)
		}
	}
	out.Injuries = injuries

	if out.CompletedDistance != nil && *out.CompletedDistance < 0 {
		zero := 0.0
		out.CompletedDistance = &zero
	}
	if out.CompletedDuration != nil && *out.CompletedDuration < 0 {
		zero := 0.0
		out.CompletedDuration = &zero
	}
	return out
}

// HasInjury reports whether the record mentions at least one injury.
func (r Record) HasInjury() bool {
	for _, inj := range r.Injuries {
		if strings.TrimSpace(inj) != "" {
			return true
		}
	}
	return false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
