package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/stride/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded workout feedback",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		runner, err := rt.resolveRunner(ctx, cmd)
		if err != nil {
			return err
		}
		events, err := rt.store.EventRepo().QueryFeedback(ctx, runner.ID, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query feedback: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No feedback recorded.")
			return nil
		}
		if limit > 0 && len(events) > limit {
			events = events[len(events)-limit:]
		}

		// Header.
		fmt.Fprintf(out, "%-5s  %-16s  %-12s  %-6s  %-6s  %-6s  %-9s  %s\n",
			"Seq", "Timestamp", "Workout", "Rating", "Effort", "Energy", "Mood", "Injuries")
		fmt.Fprintln(out, strings.Repeat("─", 90))

		for _, e := range events {
			ts := e.Data.Timestamp
			if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
				ts = t.Local().Format("2006-01-02 15:04")
			}
			workout := e.Data.WorkoutID
			if workout == "" {
				workout = "-"
			}
			injuries := "-"
			if len(e.Data.Injuries) > 0 {
				injuries = strings.Join(e.Data.Injuries, ", ")
			}
			fmt.Fprintf(out, "%-5d  %-16s  %-12s  %-6d  %-6d  %-6d  %-9s  %s\n",
				e.Sequence, ts, workout,
				e.Data.Rating, e.Data.EffortLevel, e.Data.EnergyLevel,
				e.Data.Mood, injuries)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 10, "Show only the most recent N records (0 for all)")
}
