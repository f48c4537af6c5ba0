package profile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		in          Profile
		wantMileage float64
		wantDays    int
		wantExp     ExperienceLevel
		wantGoal    GoalType
	}{
		{"zero value", Profile{}, DefaultWeeklyMileage, DefaultTrainingDays, ExperienceUnknown, GoalFinish},
		{"negative mileage", Profile{CurrentWeeklyMileage: Mileage(-4)}, DefaultWeeklyMileage, DefaultTrainingDays, ExperienceUnknown, GoalFinish},
		{"explicit mileage", Profile{CurrentWeeklyMileage: Mileage(22.5)}, 22.5, DefaultTrainingDays, ExperienceUnknown, GoalFinish},
		{"too many days", Profile{TrainingDaysPerWeek: 9}, DefaultWeeklyMileage, 7, ExperienceUnknown, GoalFinish},
		{"negative days", Profile{TrainingDaysPerWeek: -1}, DefaultWeeklyMileage, DefaultTrainingDays, ExperienceUnknown, GoalFinish},
		{"mixed case experience", Profile{ExperienceLevel: " Advanced "}, DefaultWeeklyMileage, DefaultTrainingDays, ExperienceAdvanced, GoalFinish},
		{"time target", Profile{GoalType: GoalTimeTarget, TargetTime: "1:55:00"}, DefaultWeeklyMileage, DefaultTrainingDays, ExperienceUnknown, GoalTimeTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.Equal(t, tt.wantMileage, got.WeeklyMileage())
			assert.Equal(t, tt.wantDays, got.TrainingDaysPerWeek)
			assert.Equal(t, tt.wantExp, got.ExperienceLevel)
			assert.Equal(t, tt.wantGoal, got.GoalType)
		})
	}
}

func TestNormalize_DoesNotAliasInput(t *testing.T) {
	in := Profile{CurrentWeeklyMileage: Mileage(12)}
	out := in.Normalize()
	*out.CurrentWeeklyMileage = 99
	assert.Equal(t, 12.0, *in.CurrentWeeklyMileage)
}

func TestNormalize_KeepsReportedMileage(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want float64
	}{
		{"absent", nil, 0},
		{"zero", Mileage(0), 0},
		{"negative", Mileage(-4), 0},
		{"explicit", Mileage(22.5), 22.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Profile{CurrentWeeklyMileage: tt.in}.Normalize()
			assert.Equal(t, tt.want, got.ReportedMileage())
			assert.Equal(t, tt.want, got.Normalize().ReportedMileage())
		})
	}
}

func TestNormalize_FinishDropsTargetTime(t *testing.T) {
	got := Profile{GoalType: "finish", TargetTime: "2:00:00"}.Normalize()
	assert.Empty(t, got.TargetTime)
}

func TestDecode(t *testing.T) {
	raw := []byte(`{
		"name": "Sam",
		"goal_type": "time_target",
		"target_time": "1:50:00",
		"running_experience": "beginner",
		"current_weekly_mileage": 5,
		"training_days_per_week": 3,
		"gym_access": true,
		"typical_pace": "10:30",
		"dietary_restrictions": "none"
	}`)

	p, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "Sam", p.Name)
	assert.Equal(t, ExperienceBeginner, p.ExperienceLevel)
	assert.Equal(t, 5.0, p.WeeklyMileage())
	assert.Equal(t, 3, p.TrainingDaysPerWeek)
	assert.True(t, p.GymAccess)
	assert.Equal(t, GoalTimeTarget, p.GoalType)
}

func TestDecode_AppliesDefaults(t *testing.T) {
	p, err := Decode([]byte(`{"training_days_per_week": 12}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultWeeklyMileage, p.WeeklyMileage())
	assert.Equal(t, 7, p.TrainingDaysPerWeek)
}

func TestDecode_ZeroMileage(t *testing.T) {
	p, err := Decode([]byte(`{"running_experience": "beginner", "current_weekly_mileage": 0}`))
	require.NoError(t, err)
	assert.Zero(t, p.ReportedMileage())
	assert.Equal(t, DefaultWeeklyMileage, p.WeeklyMileage())
}

func TestDecode_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{"name":`},
		{"unknown experience", `{"running_experience": "elite"}`},
		{"mileage as string", `{"current_weekly_mileage": "twenty"}`},
		{"fractional days", `{"training_days_per_week": 4.5}`},
		{"gym as string", `{"gym_access": "yes"}`},
		{"array root", `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.raw))
			require.Error(t, err)
			var verr *ValidationError
			assert.True(t, errors.As(err, &verr), "want *ValidationError, got %T", err)
		})
	}
}
