package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// TimeLayout is the fixed-width UTC layout used for stored timestamps, so
// that text comparison orders them chronologically.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// ProfileData is the persisted form of a runner intake profile.
type ProfileData struct {
	Name          string  `json:"name,omitempty"`
	GoalType      string  `json:"goal_type,omitempty"`
	TargetTime    string  `json:"target_time,omitempty"`
	Experience    string  `json:"running_experience,omitempty"`
	WeeklyMileage float64 `json:"current_weekly_mileage"`
	TrainingDays  int     `json:"training_days_per_week"`
	GymAccess     bool    `json:"gym_access"`
}

// FeedbackData is the persisted form of one workout feedback record.
type FeedbackData struct {
	ID                string   `json:"id"`
	WorkoutID         string   `json:"workout_id,omitempty"`
	Rating            int      `json:"rating"`
	EffortLevel       int      `json:"effort_level"`
	EnergyLevel       int      `json:"energy_level"`
	Mood              string   `json:"mood"`
	Injuries          []string `json:"injuries,omitempty"`
	Notes             string   `json:"notes,omitempty"`
	CompletedDistance *float64 `json:"completed_distance,omitempty"`
	CompletedDuration *float64 `json:"completed_duration,omitempty"`
	Timestamp         string   `json:"timestamp"` // TimeLayout
}

// SignalsData is the persisted form of the derived training signals.
type SignalsData struct {
	AdaptationScore float64 `json:"adaptation_score"`
	InjuryRisk      float64 `json:"injury_risk"`
	FitnessLevel    float64 `json:"fitness_level"`
}

// TrainingSnapshotData captures the full training state of one runner.
type TrainingSnapshotData struct {
	Format            string         `json:"format"` // semver of the snapshot layout
	Profile           ProfileData    `json:"profile"`
	CurrentWeek       int            `json:"current_week"`
	TotalWeeks        int            `json:"total_weeks"`
	BaseWeeklyMileage float64        `json:"base_weekly_mileage"`
	PeakWeeklyMileage float64        `json:"peak_weekly_mileage"`
	Feedback          []FeedbackData `json:"feedback"`
	Signals           SignalsData    `json:"signals"`
	Status            string         `json:"status"`
}

// SnapshotData is the JSON payload stored in a snapshot row.
type SnapshotData struct {
	Version  int                   `json:"version"`
	Training *TrainingSnapshotData `json:"training,omitempty"`
}

// Snapshot represents a point-in-time capture of a runner's state.
type Snapshot struct {
	ID        int
	RunnerID  string
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages training state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot for the runner, or nil if none exist.
	Latest(ctx context.Context, runnerID string) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots of the runner.
	Prune(ctx context.Context, runnerID string, keep int) error
}

// Runner is a persisted runner with their intake profile.
type Runner struct {
	ID        string
	Name      string
	Profile   ProfileData
	StartWeek int
	CreatedAt time.Time
}

// RunnerRepo manages runners.
type RunnerRepo interface {
	// Create stores a runner and returns its generated ID.
	Create(ctx context.Context, r *Runner) (string, error)

	// Get returns the runner with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Runner, error)

	// Latest returns the most recently created runner, or ErrNotFound.
	Latest(ctx context.Context) (*Runner, error)

	// Delete removes a runner along with their events and snapshots.
	Delete(ctx context.Context, id string) error
}

// FeedbackEventRecord is a stored feedback event.
type FeedbackEventRecord struct {
	ID       int
	Sequence int64
	RunnerID string
	Data     FeedbackData
}

// EventRepo provides append and query access to feedback events.
type EventRepo interface {
	// AppendFeedback records a feedback event and returns its sequence number.
	AppendFeedback(ctx context.Context, runnerID string, data FeedbackData) (int64, error)

	// QueryFeedback returns the runner's feedback events in sequence order.
	QueryFeedback(ctx context.Context, runnerID string, opts QueryOpts) ([]FeedbackEventRecord, error)

	// LatestSequence returns the highest sequence assigned so far.
	LatestSequence(ctx context.Context) (int64, error)
}
