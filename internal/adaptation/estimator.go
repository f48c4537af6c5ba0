package adaptation

import "github.com/abhisek/stride/internal/feedback"

// windowMeans holds the mean rating, effort and energy over a window.
type windowMeans struct {
	rating float64
	effort float64
	energy float64
}

func means(window []feedback.Record) windowMeans {
	var m windowMeans
	for _, r := range window {
		m.rating += float64(r.Rating)
		m.effort += float64(r.EffortLevel)
		m.energy += float64(r.EnergyLevel)
	}
	n := float64(len(window))
	m.rating /= n
	m.effort /= n
	m.energy /= n
	return m
}

// RawAdaptationDelta scores a window before smoothing.
func RawAdaptationDelta(window []feedback.Record) float64 {
	if len(window) == 0 {
		return 0
	}
	m := means(window)

	var delta float64
	switch {
	case m.rating >= 4 && m.energy >= 7:
		delta += 1
	case m.rating >= 3.5 && m.energy >= 6:
		delta += 0.5
	}

	// High effort with low ratings means the runner is overreaching.
	switch {
	case m.effort >= 8 && m.rating <= 2.5:
		delta -= 1.5
	case m.effort >= 7 && m.rating <= 3:
		delta -= 1
	}

	if m.energy <= 4 {
		delta -= 1
	}
	return delta
}

// NextAdaptationScore smooths the window's delta into the previous score.
func NextAdaptationScore(prev float64, window []feedback.Record) float64 {
	if len(window) == 0 {
		return prev
	}
	score := prev*SmoothingRetain + RawAdaptationDelta(window)*SmoothingGain
	return clamp(score, MinAdaptation, MaxAdaptation)
}

// InjuryRisk scores acute risk from the window. It is not smoothed: a single
// injury mention moves the score immediately.
func InjuryRisk(prev float64, window []feedback.Record) float64 {
	if len(window) == 0 {
		return prev
	}

	var risk float64
	for _, r := range window {
		if r.HasInjury() {
			risk += 3
			break
		}
	}
	for _, r := range window {
		if r.EffortLevel >= 8 && r.Rating <= 2 {
			risk += 1.5
		}
		if r.EnergyLevel <= 4 {
			risk += 0.5
		}
		if r.Mood.IsFatigued() {
			risk += 0.5
		}
	}
	return clamp(risk, MinInjuryRisk, MaxInjuryRisk)
}

// NextFitnessLevel drifts fitness up on consistently good sessions and down
// on poor ones.
func NextFitnessLevel(prev float64, window []feedback.Record) float64 {
	if len(window) == 0 {
		return prev
	}
	m := means(window)

	level := prev
	switch {
	case m.rating >= 4 && m.energy >= 7:
		level += 0.1
	case m.rating >= 3.5 && m.energy >= 6:
		level += 0.05
	case m.rating <= 2.5 || m.energy <= 4:
		level -= 0.05
	}
	return clamp(level, MinFitness, MaxFitness)
}
