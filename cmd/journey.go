package cmd

import (
	"fmt"

	"github.com/rogersnm/salesfirst/internal/journey"
	"github.com/rogersnm/salesfirst/internal/markdown"
	"github.com/rogersnm/salesfirst/internal/model"
	"github.com/spf13/cobra"
)

var journeyCmd = &cobra.Command{
	Use:   "journey",
	Short: "Track a project through the RFP lifecycle",
}

var journeyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show lifecycle stages",
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := resolveProject(cmd)
		if err != nil {
			return err
		}
		stages := journeys.Get(projectID, journey.DefaultStages())
		fmt.Println(markdown.RenderJourney(stages))
		fmt.Println(markdown.RenderStageTable(stages))
		if n := journey.InProgressCount(stages); n > 1 {
			fmt.Printf("warning: %d stages are in progress\n", n)
		}
		return nil
	},
}

var journeyAdvanceCmd = &cobra.Command{
	Use:   "advance [stage]",
	Short: "Complete the in-progress stage and start the next pending one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := resolveProject(cmd)
		if err != nil {
			return err
		}
		defaults := journey.DefaultStages()

		var current string
		if len(args) == 1 {
			current = args[0]
		} else {
			cur, ok := journey.Current(journeys.Get(projectID, defaults))
			if !ok {
				return fmt.Errorf("no stage is in progress")
			}
			current = cur.Name
		}

		out := cmd.OutOrStdout()
		status, ok := stageStatus(journeys.Get(projectID, defaults), current)
		if !ok {
			return fmt.Errorf("no stage named %q", current)
		}
		if status != model.StatusInProgress {
			fmt.Fprintf(out, "%s is not in progress\n", current)
			return nil
		}

		stages := journeys.Advance(projectID, current, defaults)
		if next, ok := journey.Current(stages); ok {
			fmt.Fprintf(out, "Completed %s; now on %s\n", current, next.Name)
		} else {
			fmt.Fprintf(out, "Completed %s\n", current)
		}
		return nil
	},
}

var journeySetCmd = &cobra.Command{
	Use:   "set <stage> <status>",
	Short: "Set a stage's status (pending, in-progress, completed)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := resolveProject(cmd)
		if err != nil {
			return err
		}
		status := model.Status(args[1])
		if err := model.ValidateStatus(status); err != nil {
			return err
		}
		stages := journeys.SetStageStatus(projectID, args[0], status, journey.DefaultStages())
		if _, found := stageStatus(stages, args[0]); !found {
			return fmt.Errorf("no stage named %q", args[0])
		}
		fmt.Printf("Set %s to %s\n", args[0], status)
		return nil
	},
}

var journeyResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default lifecycle stages",
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := resolveProject(cmd)
		if err != nil {
			return err
		}
		if err := journeys.Replace(projectID, journey.DefaultStages()); err != nil {
			return err
		}
		fmt.Printf("Reset journey for %s\n", projectID)
		return nil
	},
}

func stageStatus(stages []model.Stage, name string) (model.Status, bool) {
	for _, s := range stages {
		if s.Name == name {
			return s.Status, true
		}
	}
	return "", false
}

func init() {
	for _, c := range []*cobra.Command{journeyShowCmd, journeyAdvanceCmd, journeySetCmd, journeyResetCmd} {
		c.Flags().StringP("project", "P", "", "project ID")
		journeyCmd.AddCommand(c)
	}
	rootCmd.AddCommand(journeyCmd)
}
