package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

const feedbackTable = "feedback_events"

var feedbackColumns = []string{
	"id", "sequence", "runner_id", "record_id", "workout_id",
	"rating", "effort_level", "energy_level", "mood", "injuries", "notes",
	"completed_distance", "completed_duration", "timestamp",
}

// eventRepo implements EventRepo on top of the ent SQL builders.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *eventRepo) AppendFeedback(ctx context.Context, runnerID string, data FeedbackData) (int64, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	injuries := data.Injuries
	if injuries == nil {
		injuries = []string{}
	}
	injuriesJSON, err := json.Marshal(injuries)
	if err != nil {
		return 0, fmt.Errorf("marshal injuries: %w", err)
	}

	ins := builder().Insert(feedbackTable).
		Columns(feedbackColumns[1:]...).
		Values(
			seqNum, runnerID, data.ID, data.WorkoutID,
			data.Rating, data.EffortLevel, data.EnergyLevel, data.Mood,
			string(injuriesJSON), data.Notes,
			nullFloat(data.CompletedDistance), nullFloat(data.CompletedDuration),
			data.Timestamp,
		)
	if _, err := exec(ctx, r.drv, ins); err != nil {
		return 0, fmt.Errorf("save feedback event: %w", err)
	}
	return seqNum, nil
}

func (r *eventRepo) QueryFeedback(ctx context.Context, runnerID string, opts QueryOpts) ([]FeedbackEventRecord, error) {
	sel := builder().Select(feedbackColumns...).
		From(builder().Table(feedbackTable)).
		Where(entsql.EQ("runner_id", runnerID)).
		OrderBy("sequence")

	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UTC().Format(TimeLayout)))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UTC().Format(TimeLayout)))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	var records []FeedbackEventRecord
	err := scanAll(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var (
			rec                FeedbackEventRecord
			injuries           string
			distance, duration sql.NullFloat64
		)
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &rec.RunnerID, &rec.Data.ID, &rec.Data.WorkoutID,
			&rec.Data.Rating, &rec.Data.EffortLevel, &rec.Data.EnergyLevel, &rec.Data.Mood,
			&injuries, &rec.Data.Notes, &distance, &duration, &rec.Data.Timestamp,
		); err != nil {
			return fmt.Errorf("scan feedback event: %w", err)
		}
		if err := json.Unmarshal([]byte(injuries), &rec.Data.Injuries); err != nil {
			return fmt.Errorf("unmarshal injuries: %w", err)
		}
		if len(rec.Data.Injuries) == 0 {
			rec.Data.Injuries = nil
		}
		rec.Data.CompletedDistance = floatPtr(distance)
		rec.Data.CompletedDuration = floatPtr(duration)
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query feedback events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) LatestSequence(ctx context.Context) (int64, error) {
	return r.seq.Current(ctx)
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
