package workout

import "math"

// WeekSummary aggregates a composed week.
type WeekSummary struct {
	WeekNumber       int          `json:"week_number"`
	TotalDistance    float64      `json:"total_distance"`
	TotalDuration    int          `json:"total_duration"`
	TrainingSessions int          `json:"training_sessions"`
	RestDays         int          `json:"rest_days"`
	Completed        int          `json:"completed"`
	ByType           map[Type]int `json:"by_type"`
}

// Summarize totals a week of plans. Completion counts only training
// sessions; the Completed flags are owned by the caller.
func Summarize(plans []Plan) WeekSummary {
	s := WeekSummary{ByType: make(map[Type]int)}
	for _, p := range plans {
		s.WeekNumber = p.WeekNumber
		s.ByType[p.Type]++
		if p.Type == TypeRest {
			s.RestDays++
			continue
		}
		s.TrainingSessions++
		s.TotalDistance += p.Distance
		s.TotalDuration += p.Duration
		if p.Completed {
			s.Completed++
		}
	}
	s.TotalDistance = math.Round(s.TotalDistance*10) / 10
	return s
}

// Progress returns the percentage of training sessions completed (0-100).
func (s WeekSummary) Progress() int {
	if s.TrainingSessions == 0 {
		return 0
	}
	return int(math.Round(float64(s.Completed) / float64(s.TrainingSessions) * 100))
}
