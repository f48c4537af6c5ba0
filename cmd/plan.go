package cmd

import (
	"encoding/json"
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/stride/internal/periodization"
	"github.com/abhisek/stride/internal/training"
	"github.com/abhisek/stride/internal/ui/layout"
	"github.com/abhisek/stride/internal/workout"
)

// weekPlanJSON is the --json output of the plan command.
type weekPlanJSON struct {
	Week         int                 `json:"week"`
	Phase        periodization.Phase `json:"phase"`
	TargetVolume float64             `json:"target_volume"`
	Sessions     []workout.Plan      `json:"sessions"`
	Summary      workout.WeekSummary `json:"summary"`
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate the sessions for a program week",
	RunE: func(cmd *cobra.Command, args []string) error {
		week, _ := cmd.Flags().GetInt("week")
		asJSON, _ := cmd.Flags().GetBool("json")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		var extra []training.Option
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetUint64("seed")
			extra = append(extra, training.WithSeed(seed))
		}

		ctx := cmd.Context()
		runner, err := rt.resolveRunner(ctx, cmd)
		if err != nil {
			return err
		}
		engine, err := rt.loadEngine(ctx, runner, extra...)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("week") {
			week = engine.State().CurrentWeek
		}

		plans, err := engine.GenerateWeeklyPlan(week)
		if err != nil {
			return err
		}
		if err := rt.saveSnapshot(ctx, runner.ID, engine); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(weekPlanJSON{
				Week:         week,
				Phase:        periodization.PhaseFor(week),
				TargetVolume: engine.State().TargetVolume(week),
				Sessions:     plans,
				Summary:      workout.Summarize(plans),
			})
		}

		if week > periodization.TotalWeeks {
			fmt.Fprintf(cmd.ErrOrStderr(), "Week %d is past the %d-week program; planning as the final week.\n",
				week, periodization.TotalWeeks)
		}
		_, err = lipgloss.Fprintln(out, layout.RenderWeek(plans, terminalWidth()))
		return err
	},
}

func init() {
	planCmd.Flags().Int("week", 0, "Program week (defaults to the current week)")
	planCmd.Flags().Uint64("seed", 0, "Seed for reproducible strength substitution")
	planCmd.Flags().Bool("json", false, "Print the plan as JSON")
}
