// Package workout composes the per-day sessions of a program week.
package workout

import "time"

// Type is the kind of session prescribed for a day.
type Type string

const (
	TypeEasyRun  Type = "easy_run"
	TypeLongRun  Type = "long_run"
	TypeTempoRun Type = "tempo_run"
	TypeInterval Type = "intervals"
	TypeStrength Type = "strength"
	TypeRecovery Type = "recovery"
	TypeRest     Type = "rest"
)

// AllTypes returns every session type.
func AllTypes() []Type {
	return []Type{TypeEasyRun, TypeLongRun, TypeTempoRun, TypeInterval, TypeStrength, TypeRecovery, TypeRest}
}

// DisplayName returns a human-readable label for the session type.
func (t Type) DisplayName() string {
	switch t {
	case TypeEasyRun:
		return "Easy Run"
	case TypeLongRun:
		return "Long Run"
	case TypeTempoRun:
		return "Tempo Run"
	case TypeInterval:
		return "Intervals"
	case TypeStrength:
		return "Strength"
	case TypeRecovery:
		return "Recovery"
	case TypeRest:
		return "Rest"
	default:
		return string(t)
	}
}

// IsHighIntensity reports whether injury risk suppresses this session type.
func (t Type) IsHighIntensity() bool {
	return t == TypeInterval || t == TypeTempoRun
}

// Intensity is the effort band of a session.
type Intensity string

const (
	IntensityLow      Intensity = "low"
	IntensityModerate Intensity = "moderate"
	IntensityHigh     Intensity = "high"
)

// DaysPerWeek is the number of entries in a composed week.
const DaysPerWeek = 7

// DayNames lists the program days, Monday first.
var DayNames = [DaysPerWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Plan is the prescription for one day of a program week.
type Plan struct {
	ID          string    `json:"id"`
	WeekNumber  int       `json:"week_number"`
	Day         string    `json:"day"`
	Date        time.Time `json:"date"`
	Type        Type      `json:"workout_type"`
	Distance    float64   `json:"distance"`
	Duration    int       `json:"duration"`
	Intensity   Intensity `json:"intensity"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
}
