package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/stride/internal/config"
	"github.com/abhisek/stride/internal/feedback"
	"github.com/abhisek/stride/internal/store"
	"github.com/abhisek/stride/internal/training"
)

// snapshotVersion is the version of the store.SnapshotData envelope.
const snapshotVersion = 1

// snapshotsKept is how many snapshots are retained per runner.
const snapshotsKept = 5

// runtime bundles what every data command needs.
type runtime struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store
}

// openRuntime loads config, builds the logger and opens the store.
func openRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cmd, cfg)

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", "path", dbPath)

	return &runtime{cfg: cfg, logger: logger, store: st}, nil
}

func (rt *runtime) Close() error {
	return rt.store.Close()
}

// engineOptions builds engine options from config; extra options win.
func (rt *runtime) engineOptions(extra ...training.Option) []training.Option {
	opts := []training.Option{
		training.WithLogger(rt.logger),
		training.WithStrengthChance(rt.cfg.StrengthChance()),
	}
	if rt.cfg.Plan.Seed != nil {
		opts = append(opts, training.WithSeed(*rt.cfg.Plan.Seed))
	}
	return append(opts, extra...)
}

// resolveRunner returns the runner named by --runner, or the latest one.
func (rt *runtime) resolveRunner(ctx context.Context, cmd *cobra.Command) (*store.Runner, error) {
	repo := rt.store.RunnerRepo()
	id, _ := cmd.Flags().GetString("runner")

	var (
		r   *store.Runner
		err error
	)
	if id != "" {
		r, err = repo.Get(ctx, id)
	} else {
		r, err = repo.Latest(ctx)
	}
	if errors.Is(err, store.ErrNotFound) {
		if id != "" {
			return nil, fmt.Errorf("runner %s not found", id)
		}
		return nil, errors.New("no runner found; create one with 'stride init --profile <file>'")
	}
	if err != nil {
		return nil, fmt.Errorf("load runner: %w", err)
	}
	return r, nil
}

// loadEngine restores the runner's engine from the latest snapshot and folds
// in any feedback recorded after it.
func (rt *runtime) loadEngine(ctx context.Context, runner *store.Runner, opts ...training.Option) (*training.Engine, error) {
	engineOpts := rt.engineOptions(opts...)

	snap, err := rt.store.SnapshotRepo().Latest(ctx, runner.ID)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var (
		engine *training.Engine
		after  int64
	)
	if snap != nil && snap.Data.Training != nil {
		engine, err = training.Restore(snap.Data.Training, engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("restore snapshot: %w", err)
		}
		after = snap.Sequence
	} else {
		engine, err = training.New(training.ProfileFromData(runner.Profile), runner.StartWeek, engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("create engine: %w", err)
		}
	}

	events, err := rt.store.EventRepo().QueryFeedback(ctx, runner.ID, store.QueryOpts{After: after})
	if err != nil {
		return nil, fmt.Errorf("load feedback: %w", err)
	}
	for _, ev := range events {
		r, err := training.FeedbackFromData(ev.Data)
		if err != nil {
			return nil, fmt.Errorf("decode feedback %d: %w", ev.Sequence, err)
		}
		engine.RecordFeedback(r)
	}
	rt.logger.Debug("engine loaded",
		"runner", runner.ID,
		"snapshot_sequence", after,
		"replayed", len(events))
	return engine, nil
}

// recordFeedback appends the record to the event log and applies it.
func (rt *runtime) recordFeedback(ctx context.Context, runnerID string, engine *training.Engine, r feedback.Record) (int64, error) {
	r = r.Normalize()
	seq, err := rt.store.EventRepo().AppendFeedback(ctx, runnerID, training.FeedbackData(r))
	if err != nil {
		return 0, fmt.Errorf("append feedback: %w", err)
	}
	engine.RecordFeedback(r)
	return seq, nil
}

// saveSnapshot persists the engine state covering events up to the current
// sequence and prunes old snapshots.
func (rt *runtime) saveSnapshot(ctx context.Context, runnerID string, engine *training.Engine) error {
	seq, err := rt.store.EventRepo().LatestSequence(ctx)
	if err != nil {
		return fmt.Errorf("latest sequence: %w", err)
	}
	repo := rt.store.SnapshotRepo()
	err = repo.Save(ctx, &store.Snapshot{
		RunnerID: runnerID,
		Sequence: seq,
		Data: store.SnapshotData{
			Version:  snapshotVersion,
			Training: engine.Snapshot(),
		},
	})
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if err := repo.Prune(ctx, runnerID, snapshotsKept); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
