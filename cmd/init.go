package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/stride/internal/profile"
	"github.com/abhisek/stride/internal/store"
	"github.com/abhisek/stride/internal/training"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a runner from an intake profile",
	Long: "Create a runner from an intake profile JSON file (use - for stdin).\n\n" +
		"Keys: name, goal_type (finish|time_target), target_time, running_experience\n" +
		"(beginner|intermediate|advanced), current_weekly_mileage, training_days_per_week,\n" +
		"gym_access.",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("profile")
		startWeek, _ := cmd.Flags().GetInt("start-week")

		raw, err := readProfile(cmd, path)
		if err != nil {
			return err
		}
		p, err := profile.Decode(raw)
		if err != nil {
			return fmt.Errorf("decode profile: %w", err)
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		engine, err := training.New(p, startWeek, rt.engineOptions()...)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		id, err := rt.store.RunnerRepo().Create(ctx, &store.Runner{
			Name:      p.Name,
			Profile:   training.ProfileData(p),
			StartWeek: startWeek,
		})
		if err != nil {
			return fmt.Errorf("create runner: %w", err)
		}
		if err := rt.saveSnapshot(ctx, id, engine); err != nil {
			return err
		}

		st := engine.State()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Created runner %s\n", id)
		fmt.Fprintf(out, "Base %.1f mi/week, peak %.1f mi/week, starting fitness %.1f\n",
			st.BaseWeeklyMileage, st.PeakWeeklyMileage, st.Signals.FitnessLevel)
		return nil
	},
}

func readProfile(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("--profile is required")
	}
	if path == "-" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read profile: %w", err)
		}
		return raw, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return raw, nil
}

func init() {
	initCmd.Flags().String("profile", "", "Intake profile JSON file, or - for stdin")
	initCmd.Flags().Int("start-week", 1, "Program week to start from (1-20)")
}
