package store

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	// Each test gets its own named in-memory database.
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createRunner(t *testing.T, s *Store, name string) string {
	t.Helper()
	id, err := s.RunnerRepo().Create(context.Background(), &Runner{
		Name: name,
		Profile: ProfileData{
			Name:          name,
			GoalType:      "finish",
			Experience:    "beginner",
			WeeklyMileage: 10,
			TrainingDays:  3,
		},
	})
	if err != nil {
		t.Fatalf("create runner: %v", err)
	}
	return id
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestJournalModeWALOnFile(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "stride.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestRunnerCreateGetLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.RunnerRepo()
	ctx := context.Background()

	if _, err := repo.Latest(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("latest (empty) err = %v, want ErrNotFound", err)
	}

	first := createRunner(t, s, "Ana")
	second := createRunner(t, s, "Ben")
	if first == second {
		t.Fatal("expected distinct runner IDs")
	}

	got, err := repo.Get(ctx, first)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Ana" || got.Profile.TrainingDays != 3 || got.StartWeek != 1 {
		t.Errorf("get = %+v", got)
	}
	if got.Profile.Experience != "beginner" {
		t.Errorf("experience = %q, want beginner", got.Profile.Experience)
	}

	latest, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.ID != second {
		t.Errorf("latest = %s, want %s", latest.ID, second)
	}

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get missing err = %v, want ErrNotFound", err)
	}
}

func TestRunnerDeleteCascades(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	id := createRunner(t, s, "Ana")

	if _, err := s.EventRepo().AppendFeedback(ctx, id, FeedbackData{
		ID: "f1", Rating: 4, EffortLevel: 5, EnergyLevel: 6, Mood: "good",
		Timestamp: time.Now().UTC().Format(TimeLayout),
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.SnapshotRepo().Save(ctx, &Snapshot{RunnerID: id, Sequence: 1, Data: SnapshotData{Version: 1}}); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	if err := s.RunnerRepo().Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.RunnerRepo().Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}

	for _, table := range []string{"feedback_events", "snapshots"} {
		var count int
		if err := s.DB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if count != 0 {
			t.Errorf("%s rows = %d, want 0", table, count)
		}
	}
}

func TestFeedbackAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()
	ana := createRunner(t, s, "Ana")
	ben := createRunner(t, s, "Ben")

	dist := 3.5
	base := time.Date(2026, 10, 12, 7, 0, 0, 0, time.UTC)
	var seqs []int64
	for i := 0; i < 4; i++ {
		data := FeedbackData{
			ID:          "ana-" + string(rune('a'+i)),
			WorkoutID:   "week1-day0",
			Rating:      i + 1,
			EffortLevel: 5,
			EnergyLevel: 6,
			Mood:        "good",
			Timestamp:   base.Add(time.Duration(i) * time.Hour).Format(TimeLayout),
		}
		if i == 1 {
			data.Injuries = []string{"left knee"}
			data.CompletedDistance = &dist
			data.Notes = "felt heavy"
		}
		seq, err := repo.AppendFeedback(ctx, ana, data)
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}
	if _, err := repo.AppendFeedback(ctx, ben, FeedbackData{ID: "ben-a", Rating: 3, Mood: "okay", Timestamp: base.Format(TimeLayout)}); err != nil {
		t.Fatalf("append ben: %v", err)
	}

	all, err := repo.QueryFeedback(ctx, ana, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("len = %d, want 4", len(all))
	}
	for i, rec := range all {
		if rec.Sequence != seqs[i] {
			t.Errorf("rec[%d].Sequence = %d, want %d", i, rec.Sequence, seqs[i])
		}
		if rec.RunnerID != ana {
			t.Errorf("rec[%d].RunnerID = %s, want %s", i, rec.RunnerID, ana)
		}
	}

	injured := all[1].Data
	if len(injured.Injuries) != 1 || injured.Injuries[0] != "left knee" {
		t.Errorf("injuries = %v, want [left knee]", injured.Injuries)
	}
	if injured.CompletedDistance == nil || *injured.CompletedDistance != 3.5 {
		t.Errorf("completed distance = %v, want 3.5", injured.CompletedDistance)
	}
	if injured.CompletedDuration != nil {
		t.Errorf("completed duration = %v, want nil", *injured.CompletedDuration)
	}
	if injured.Notes != "felt heavy" {
		t.Errorf("notes = %q", injured.Notes)
	}
	if all[0].Data.Injuries != nil {
		t.Errorf("injuries = %v, want nil", all[0].Data.Injuries)
	}

	after, err := repo.QueryFeedback(ctx, ana, QueryOpts{After: seqs[1]})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 2 || after[0].Sequence != seqs[2] {
		t.Errorf("after = %+v, want last two", after)
	}

	limited, err := repo.QueryFeedback(ctx, ana, QueryOpts{Limit: 2, From: base.Add(time.Hour)})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 2 || limited[0].Data.ID != "ana-b" {
		t.Errorf("limited = %+v", limited)
	}

	latest, err := repo.LatestSequence(ctx)
	if err != nil {
		t.Fatalf("latest sequence: %v", err)
	}
	if latest != 5 {
		t.Errorf("latest sequence = %d, want 5", latest)
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()
	id := createRunner(t, s, "Ana")

	// No snapshot yet.
	snap, err := repo.Latest(ctx, id)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	now := time.Now().UTC().Truncate(time.Second)
	err = repo.Save(ctx, &Snapshot{
		RunnerID:  id,
		Sequence:  42,
		Timestamp: now,
		Data: SnapshotData{
			Version: 1,
			Training: &TrainingSnapshotData{
				Format:      "v1.0.0",
				CurrentWeek: 3,
				TotalWeeks:  20,
				Signals:     SignalsData{AdaptationScore: 0.5, InjuryRisk: 2, FitnessLevel: 4},
				Feedback:    []FeedbackData{{ID: "f1", Rating: 5, Mood: "great"}},
			},
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Latest(ctx, id)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 42 {
		t.Errorf("sequence = %d, want 42", snap.Sequence)
	}
	if !snap.Timestamp.Equal(now) {
		t.Errorf("timestamp = %v, want %v", snap.Timestamp, now)
	}
	if snap.Data.Training == nil || snap.Data.Training.CurrentWeek != 3 {
		t.Fatalf("training = %+v", snap.Data.Training)
	}
	if snap.Data.Training.Signals.FitnessLevel != 4 {
		t.Errorf("fitness = %v, want 4", snap.Data.Training.Signals.FitnessLevel)
	}
	if len(snap.Data.Training.Feedback) != 1 {
		t.Errorf("feedback len = %d, want 1", len(snap.Data.Training.Feedback))
	}
}

func TestSnapshotLatestIsPerRunner(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()
	ana := createRunner(t, s, "Ana")
	ben := createRunner(t, s, "Ben")

	for i, id := range []string{ana, ana, ben} {
		if err := repo.Save(ctx, &Snapshot{RunnerID: id, Sequence: int64(i + 1), Data: SnapshotData{Version: i + 1}}); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snap, err := repo.Latest(ctx, ana)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 2 {
		t.Errorf("sequence = %d, want 2", snap.Sequence)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()
	ana := createRunner(t, s, "Ana")
	ben := createRunner(t, s, "Ben")

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 7; i++ {
		err := repo.Save(ctx, &Snapshot{
			RunnerID:  ana,
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	if err := repo.Save(ctx, &Snapshot{RunnerID: ben, Sequence: 8, Data: SnapshotData{Version: 1}}); err != nil {
		t.Fatalf("save ben: %v", err)
	}

	if err := repo.Prune(ctx, ana, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	count := func(runnerID string) int {
		var n int
		if err := s.DB().QueryRow("SELECT COUNT(*) FROM snapshots WHERE runner_id = ?", runnerID).Scan(&n); err != nil {
			t.Fatalf("count: %v", err)
		}
		return n
	}
	if got := count(ana); got != 5 {
		t.Errorf("remaining snapshots = %d, want 5", got)
	}
	if got := count(ben); got != 1 {
		t.Errorf("other runner snapshots = %d, want 1", got)
	}

	snap, err := repo.Latest(ctx, ana)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 7 {
		t.Errorf("latest sequence = %d, want 7", snap.Sequence)
	}

	// Fewer than keep is a no-op.
	if err := repo.Prune(ctx, ben, 5); err != nil {
		t.Fatalf("prune ben: %v", err)
	}
	if got := count(ben); got != 1 {
		t.Errorf("other runner snapshots = %d, want 1", got)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc, err := newSequenceCounter(db)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	if cur, err := sc.Current(ctx); err != nil || cur != 0 {
		t.Fatalf("current = %d, %v; want 0", cur, err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}

	if cur, err := sc.Current(ctx); err != nil || cur != 5 {
		t.Errorf("current = %d, %v; want 5", cur, err)
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"runners", "feedback_events", "snapshots", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestMigrationDeclaresCascadeAndIndexes(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"feedback_events", "snapshots"} {
		rows, err := db.Query("SELECT \"table\", \"from\", on_delete FROM pragma_foreign_key_list(?)", table)
		if err != nil {
			t.Fatalf("foreign keys of %s: %v", table, err)
		}
		var found bool
		for rows.Next() {
			var ref, from, onDelete string
			if err := rows.Scan(&ref, &from, &onDelete); err != nil {
				t.Fatalf("scan foreign key: %v", err)
			}
			if ref == "runners" && from == "runner_id" && onDelete == "CASCADE" {
				found = true
			}
		}
		rows.Close()
		if !found {
			t.Errorf("%s: no cascading foreign key to runners", table)
		}
	}

	for _, index := range []string{"feedback_events_runner_sequence", "snapshots_runner_id"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='index' AND name=?", index,
		).Scan(&name)
		if err != nil {
			t.Errorf("index %s: %v", index, err)
		}
	}
}

func TestMigrationIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stride.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	id := createRunner(t, s, "Ana")
	if _, err := s.EventRepo().AppendFeedback(context.Background(), id, FeedbackData{
		ID: "r1", Rating: 4, EffortLevel: 5, EnergyLevel: 6, Mood: "good",
		Timestamp: time.Now().UTC().Format(TimeLayout),
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	events, err := s.EventRepo().QueryFeedback(context.Background(), id, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 || events[0].Sequence != 1 {
		t.Errorf("events after reopen = %+v, want one event with sequence 1", events)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("STRIDE_DB", filepath.Join(dir, "custom", "x.db"))
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if got != filepath.Join(dir, "custom", "x.db") {
		t.Errorf("path = %s", got)
	}

	t.Setenv("STRIDE_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	got, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if got != filepath.Join(dir, "stride", "stride.db") {
		t.Errorf("path = %s", got)
	}
}
