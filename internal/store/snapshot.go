package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const snapshotTable = "snapshots"

// snapshotRepo implements SnapshotRepo on top of the ent SQL builders.
type snapshotRepo struct {
	drv *entsql.Driver
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	ins := builder().Insert(snapshotTable).
		Columns("runner_id", "sequence", "timestamp", "data").
		Values(snap.RunnerID, snap.Sequence, ts.UTC().Format(TimeLayout), string(data))
	res, err := exec(ctx, r.drv, ins)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		snap.ID = int(id)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context, runnerID string) (*Snapshot, error) {
	sel := builder().Select("id", "runner_id", "sequence", "timestamp", "data").
		From(builder().Table(snapshotTable)).
		Where(entsql.EQ("runner_id", runnerID)).
		OrderBy(entsql.Desc("id")).
		Limit(1)

	var found *Snapshot
	err := scanAll(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var (
			s        Snapshot
			ts, data string
		)
		if err := rows.Scan(&s.ID, &s.RunnerID, &s.Sequence, &ts, &data); err != nil {
			return fmt.Errorf("scan snapshot: %w", err)
		}
		parsed, err := time.Parse(TimeLayout, ts)
		if err != nil {
			return fmt.Errorf("parse snapshot timestamp: %w", err)
		}
		s.Timestamp = parsed
		if err := json.Unmarshal([]byte(data), &s.Data); err != nil {
			return fmt.Errorf("unmarshal snapshot data: %w", err)
		}
		found = &s
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	return found, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, runnerID string, keep int) error {
	// Find the ID threshold: the first snapshot past the N most recent.
	sel := builder().Select("id").
		From(builder().Table(snapshotTable)).
		Where(entsql.EQ("runner_id", runnerID)).
		OrderBy(entsql.Desc("id")).
		Offset(keep).
		Limit(1)

	var threshold int64
	err := scanAll(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		return rows.Scan(&threshold)
	})
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}
	if threshold == 0 {
		return nil // fewer than keep snapshots exist
	}

	del := builder().Delete(snapshotTable).Where(entsql.And(
		entsql.EQ("runner_id", runnerID),
		entsql.LTE("id", threshold),
	))
	if _, err := exec(ctx, r.drv, del); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
