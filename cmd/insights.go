package cmd

import (
	"encoding/json"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/stride/internal/ui/layout"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Summarize adaptation, injury risk and fitness",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

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
		engine, err := rt.loadEngine(ctx, runner)
		if err != nil {
			return err
		}

		ins := engine.Insights()
		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(ins)
		}
		_, err = lipgloss.Fprintln(out, layout.RenderInsights(ins, terminalWidth()))
		return err
	},
}

func init() {
	insightsCmd.Flags().Bool("json", false, "Print the insights as JSON")
}
