package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete a runner with all feedback and snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
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
		if err := rt.store.RunnerRepo().Delete(ctx, runner.ID); err != nil {
			return fmt.Errorf("delete runner: %w", err)
		}
		rt.logger.Info("runner deleted", "runner", runner.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted runner %s (%s)\n", runner.ID, runner.Name)
		return nil
	},
}
