package training

import "github.com/abhisek/stride/internal/adaptation"

// AdaptationStatus labels the adaptation score.
type AdaptationStatus string

const (
	AdaptationProgressing AdaptationStatus = "Progressing well"
	AdaptationRecovery    AdaptationStatus = "Need recovery"
	AdaptationMaintaining AdaptationStatus = "Maintaining"
)

// RiskLevel labels the injury risk.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// FitnessProgress labels the fitness level.
type FitnessProgress string

const (
	FitnessBuilding  FitnessProgress = "Building"
	FitnessSteady    FitnessProgress = "Steady"
	FitnessGood      FitnessProgress = "Good"
	FitnessExcellent FitnessProgress = "Excellent"
)

// Recommendation texts.
const (
	RecommendRecoveryFocus = "Focus on recovery and consider reducing training intensity"
	RecommendRestDay       = "Schedule a rest day or easy recovery run"
	RecommendIncreaseLoad  = "Your body is adapting well - consider a slight increase in training load"
	RecommendFatigue       = "Signs of fatigue detected - prioritize sleep and nutrition"
	RecommendPraise        = "Great fitness progress! You can handle more challenging workouts"
)

// Insights is a human-readable summary of the training signals.
type Insights struct {
	AdaptationStatus AdaptationStatus   `json:"adaptation_status"`
	InjuryRiskLevel  RiskLevel          `json:"injury_risk_level"`
	FitnessProgress  FitnessProgress    `json:"fitness_progress"`
	Recommendations  []string           `json:"recommendations"`
	Signals          adaptation.Signals `json:"signals"`
}

// InsightsFor labels the signals and builds the recommendation list, most
// urgent first.
func InsightsFor(s adaptation.Signals) Insights {
	return Insights{
		AdaptationStatus: adaptationStatus(s.AdaptationScore),
		InjuryRiskLevel:  riskLevel(s.InjuryRisk),
		FitnessProgress:  fitnessProgress(s.FitnessLevel),
		Recommendations:  recommendations(s),
		Signals:          s,
	}
}

func adaptationStatus(score float64) AdaptationStatus {
	switch {
	case score > 0.5:
		return AdaptationProgressing
	case score < -0.5:
		return AdaptationRecovery
	default:
		return AdaptationMaintaining
	}
}

func riskLevel(risk float64) RiskLevel {
	switch {
	case risk >= 6:
		return RiskHigh
	case risk >= 4:
		return RiskModerate
	default:
		return RiskLow
	}
}

func fitnessProgress(level float64) FitnessProgress {
	switch {
	case level >= 8:
		return FitnessExcellent
	case level >= 6:
		return FitnessGood
	case level <= 3:
		return FitnessBuilding
	default:
		return FitnessSteady
	}
}

func recommendations(s adaptation.Signals) []string {
	recs := []string{}
	switch {
	case s.InjuryRisk >= 6:
		recs = append(recs, RecommendRecoveryFocus, RecommendRestDay)
	case s.AdaptationScore > 1:
		recs = append(recs, RecommendIncreaseLoad)
	case s.AdaptationScore < -1:
		recs = append(recs, RecommendFatigue)
	}
	if s.FitnessLevel >= 7 && s.InjuryRisk < 3 {
		recs = append(recs, RecommendPraise)
	}
	return recs
}
