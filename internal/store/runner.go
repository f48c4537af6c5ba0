package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

const runnerTable = "runners"

var runnerColumns = []string{"id", "name", "profile", "start_week", "created_at"}

// runnerRepo implements RunnerRepo on top of the ent SQL builders.
type runnerRepo struct {
	drv *entsql.Driver
}

func (r *runnerRepo) Create(ctx context.Context, runner *Runner) (string, error) {
	if runner.ID == "" {
		runner.ID = uuid.NewString()
	}
	if runner.CreatedAt.IsZero() {
		runner.CreatedAt = time.Now().UTC()
	}
	if runner.StartWeek < 1 {
		runner.StartWeek = 1
	}

	profile, err := json.Marshal(runner.Profile)
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}

	ins := builder().Insert(runnerTable).
		Columns(runnerColumns...).
		Values(runner.ID, runner.Name, string(profile), runner.StartWeek,
			runner.CreatedAt.UTC().Format(TimeLayout))
	if _, err := exec(ctx, r.drv, ins); err != nil {
		return "", fmt.Errorf("save runner: %w", err)
	}
	return runner.ID, nil
}

func (r *runnerRepo) Get(ctx context.Context, id string) (*Runner, error) {
	sel := builder().Select(runnerColumns...).
		From(builder().Table(runnerTable)).
		Where(entsql.EQ("id", id)).
		Limit(1)
	return r.first(ctx, sel)
}

func (r *runnerRepo) Latest(ctx context.Context) (*Runner, error) {
	sel := builder().Select(runnerColumns...).
		From(builder().Table(runnerTable)).
		OrderBy(entsql.Desc("rowid")).
		Limit(1)
	return r.first(ctx, sel)
}

func (r *runnerRepo) Delete(ctx context.Context, id string) error {
	res, err := exec(ctx, r.drv, builder().Delete(runnerTable).Where(entsql.EQ("id", id)))
	if err != nil {
		return fmt.Errorf("delete runner: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete runner: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *runnerRepo) first(ctx context.Context, sel *entsql.Selector) (*Runner, error) {
	var found *Runner
	err := scanAll(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var (
			runner           Runner
			profile, created string
		)
		if err := rows.Scan(&runner.ID, &runner.Name, &profile, &runner.StartWeek, &created); err != nil {
			return fmt.Errorf("scan runner: %w", err)
		}
		if err := json.Unmarshal([]byte(profile), &runner.Profile); err != nil {
			return fmt.Errorf("unmarshal profile: %w", err)
		}
		ts, err := time.Parse(TimeLayout, created)
		if err != nil {
			return fmt.Errorf("parse created_at: %w", err)
		}
		runner.CreatedAt = ts
		found = &runner
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query runner: %w", err)
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}
