package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// RunnersColumns holds the columns for the "runners" table.
	RunnersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "name", Type: field.TypeString, Default: ""},
		{Name: "profile", Type: field.TypeString, Size: 2147483647},
		{Name: "start_week", Type: field.TypeInt, Default: 1},
		{Name: "created_at", Type: field.TypeString},
	}
	// RunnersTable holds the schema information for the "runners" table.
	RunnersTable = &schema.Table{
		Name:       "runners",
		Columns:    RunnersColumns,
		PrimaryKey: []*schema.Column{RunnersColumns[0]},
	}

	// FeedbackEventsColumns holds the columns for the "feedback_events" table.
	FeedbackEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "runner_id", Type: field.TypeString},
		{Name: "record_id", Type: field.TypeString},
		{Name: "workout_id", Type: field.TypeString, Default: ""},
		{Name: "rating", Type: field.TypeInt},
		{Name: "effort_level", Type: field.TypeInt},
		{Name: "energy_level", Type: field.TypeInt},
		{Name: "mood", Type: field.TypeString},
		{Name: "injuries", Type: field.TypeString, Default: "[]"},
		{Name: "notes", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "completed_distance", Type: field.TypeFloat64, Nullable: true},
		{Name: "completed_duration", Type: field.TypeFloat64, Nullable: true},
		{Name: "timestamp", Type: field.TypeString},
	}
	// FeedbackEventsTable holds the schema information for the "feedback_events" table.
	FeedbackEventsTable = &schema.Table{
		Name:       "feedback_events",
		Columns:    FeedbackEventsColumns,
		PrimaryKey: []*schema.Column{FeedbackEventsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "feedback_events_runners_feedback",
				Columns:    []*schema.Column{FeedbackEventsColumns[2]},
				RefColumns: []*schema.Column{RunnersColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "feedback_events_runner_sequence",
				Columns: []*schema.Column{FeedbackEventsColumns[2], FeedbackEventsColumns[1]},
			},
		},
	}

	// SnapshotsColumns holds the columns for the "snapshots" table.
	SnapshotsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "runner_id", Type: field.TypeString},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeString},
		{Name: "data", Type: field.TypeString, Size: 2147483647},
	}
	// SnapshotsTable holds the schema information for the "snapshots" table.
	SnapshotsTable = &schema.Table{
		Name:       "snapshots",
		Columns:    SnapshotsColumns,
		PrimaryKey: []*schema.Column{SnapshotsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "snapshots_runners_snapshots",
				Columns:    []*schema.Column{SnapshotsColumns[1]},
				RefColumns: []*schema.Column{RunnersColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "snapshots_runner_id",
				Columns: []*schema.Column{SnapshotsColumns[1], SnapshotsColumns[0]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		RunnersTable,
		FeedbackEventsTable,
		SnapshotsTable,
	}
)

func init() {
	FeedbackEventsTable.ForeignKeys[0].RefTable = RunnersTable
	SnapshotsTable.ForeignKeys[0].RefTable = RunnersTable
}
