package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/stride/internal/feedback"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Record how a workout felt",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		rating, _ := flags.GetInt("rating")
		effort, _ := flags.GetInt("effort")
		energy, _ := flags.GetInt("energy")
		mood, _ := flags.GetString("mood")
		injuries, _ := flags.GetStringSlice("injury")
		workoutID, _ := flags.GetString("workout")
		notes, _ := flags.GetString("notes")

		r := feedback.New(rating, effort, energy, mood, injuries, time.Now())
		r.WorkoutID = workoutID
		r.Notes = notes
		if flags.Changed("distance") {
			d, _ := flags.GetFloat64("distance")
			r.CompletedDistance = &d
		}
		if flags.Changed("duration") {
			d, _ := flags.GetFloat64("duration")
			r.CompletedDuration = &d
		}

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

		seq, err := rt.recordFeedback(ctx, runner.ID, engine, r)
		if err != nil {
			return err
		}
		if err := rt.saveSnapshot(ctx, runner.ID, engine); err != nil {
			return err
		}

		s := engine.State().Signals
		ins := engine.Insights()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Recorded feedback #%d\n", seq)
		fmt.Fprintf(out, "Adaptation %.2f (%s), injury risk %.1f (%s), fitness %.2f (%s)\n",
			s.AdaptationScore, ins.AdaptationStatus,
			s.InjuryRisk, ins.InjuryRiskLevel,
			s.FitnessLevel, ins.FitnessProgress)
		return nil
	},
}

func init() {
	moods := make([]string, 0, len(feedback.AllMoods()))
	for _, m := range feedback.AllMoods() {
		moods = append(moods, string(m))
	}

	feedbackCmd.Flags().Int("rating", 3, "Overall rating (1-5)")
	feedbackCmd.Flags().Int("effort", 5, "Perceived effort (1-10)")
	feedbackCmd.Flags().Int("energy", 5, "Energy level (1-10)")
	feedbackCmd.Flags().String("mood", string(feedback.MoodOkay), "Mood: "+strings.Join(moods, ", "))
	feedbackCmd.Flags().StringSlice("injury", nil, "Injury or pain mention (repeatable)")
	feedbackCmd.Flags().String("workout", "", "Plan ID the feedback is for, e.g. week3-day1")
	feedbackCmd.Flags().String("notes", "", "Free-form notes")
	feedbackCmd.Flags().Float64("distance", 0, "Completed distance in miles")
	feedbackCmd.Flags().Float64("duration", 0, "Completed duration in minutes")
}
