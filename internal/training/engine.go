package training

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/abhisek/stride/internal/feedback"
	"github.com/abhisek/stride/internal/profile"
	"github.com/abhisek/stride/internal/workout"
)

// Engine owns the training state of one runner. All methods are safe for
// concurrent use; feedback is folded in call order.
type Engine struct {
	mu      sync.Mutex
	profile profile.Profile
	state   State

	rng            workout.RandSource
	seed           *uint64
	strengthChance float64
	now            func() time.Time
	logger         *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRandSource sets the source of the strength-swap draw.
func WithRandSource(r workout.RandSource) Option {
	return func(e *Engine) { e.rng = r }
}

// WithSeed makes plan generation reproducible: every week draws from its own
// generator seeded with (seed, week), so regenerating a week gives the same
// sessions. It takes precedence over WithRandSource.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.seed = &seed }
}

// WithStrengthChance sets the probability of swapping an easy run for a
// strength session. Values are clamped to [0, 1].
func WithStrengthChance(p float64) Option {
	return func(e *Engine) { e.strengthChance = min(max(p, 0), 1) }
}

// WithClock sets the clock used to date plan entries.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func newEngine(p profile.Profile, state State, opts []Option) *Engine {
	e := &Engine{
		profile:        p,
		state:          state,
		rng:            workout.GlobalRand(),
		strengthChance: workout.DefaultStrengthChance,
		now:            time.Now,
		logger:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// New creates an engine for the runner starting at startWeek.
func New(p profile.Profile, startWeek int, opts ...Option) (*Engine, error) {
	p = p.Normalize()
	state, err := NewState(p, startWeek)
	if err != nil {
		return nil, err
	}
	e := newEngine(p, state, opts)
	e.logger.Debug("engine initialized",
		"start_week", startWeek,
		"base_mileage", state.BaseWeeklyMileage,
		"peak_mileage", state.PeakWeeklyMileage,
		"fitness", state.Signals.FitnessLevel)
	return e, nil
}

// Replay rebuilds an engine by folding records, oldest first, into a fresh
// state.
func Replay(p profile.Profile, startWeek int, records []feedback.Record, opts ...Option) (*Engine, error) {
	e, err := New(p, startWeek, opts...)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		e.RecordFeedback(r)
	}
	return e, nil
}

// RecordFeedback adds a workout feedback record and re-derives the signals.
func (e *Engine) RecordFeedback(r feedback.Record) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r = r.Normalize()
	evicted := e.state.Ledger.Len() == feedback.Capacity
	e.state = e.state.WithFeedback(r)

	e.logger.Debug("feedback recorded",
		"record", r.ID,
		"rating", r.Rating,
		"injured", r.HasInjury(),
		"evicted", evicted,
		"adaptation", e.state.Signals.AdaptationScore,
		"injury_risk", e.state.Signals.InjuryRisk,
		"fitness", e.state.Signals.FitnessLevel)
}

// GenerateWeeklyPlan composes the seven sessions of week from the current
// signals and makes week the current week. Weeks past the program end are
// planned as the final week.
func (e *Engine) GenerateWeeklyPlan(week int) ([]workout.Plan, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	plans, next, err := e.state.Plan(e.profile, week, PlanOptions{
		StrengthChance: e.strengthChance,
		Rand:           e.randFor(week),
		Start:          e.now(),
	})
	if err != nil {
		return nil, err
	}
	e.state = next

	e.logger.Debug("plan generated",
		"week", week,
		"phase", next.Phase(),
		"target_volume", next.TargetVolume(week),
		"sessions", workout.Summarize(plans).TrainingSessions)
	return plans, nil
}

func (e *Engine) randFor(week int) workout.RandSource {
	if e.seed != nil {
		return rand.New(rand.NewPCG(*e.seed, uint64(week)))
	}
	return e.rng
}

// Insights summarizes the current signals.
func (e *Engine) Insights() Insights {
	e.mu.Lock()
	defer e.mu.Unlock()
	return InsightsFor(e.state.Signals)
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Profile returns the normalized runner profile.
func (e *Engine) Profile() profile.Profile {
	return e.profile
}
