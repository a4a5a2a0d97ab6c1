package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rogersnm/salesfirst/internal/config"
	"github.com/rogersnm/salesfirst/internal/export"
	"github.com/rogersnm/salesfirst/internal/journey"
	"github.com/rogersnm/salesfirst/internal/markdown"
	"github.com/rogersnm/salesfirst/internal/model"
	"github.com/rogersnm/salesfirst/internal/project"
	"github.com/rogersnm/salesfirst/internal/repofile"
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage RFP projects",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _ := cmd.Flags().GetString("client")
		dueStr, _ := cmd.Flags().GetString("due")
		due, err := parseDue(dueStr)
		if err != nil {
			return err
		}

		p, err := projects.Create(args[0], client)
		if err != nil {
			return err
		}
		if due != nil {
			if p, err = projects.UpdateSummary(p.ID, project.SummaryUpdate{DueDate: &due}); err != nil {
				return err
			}
		}
		fmt.Printf("Created project %s (%s)\n", p.Title, p.ID)
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := projects.List()
		if err != nil {
			return err
		}
		fmt.Println(markdown.RenderProjectTable(list))
		return nil
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show project details, journey and RFP summary",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := projectArg(cmd, args)
		if err != nil {
			return err
		}
		p, err := projects.Get(projectID)
		if err != nil {
			return err
		}
		stages := journeys.Get(p.ID, journey.DefaultStages())

		fields := []string{
			markdown.RenderField("ID", p.ID),
			markdown.RenderField("Client", orDash(p.Client)),
			markdown.RenderField("Created", p.CreatedAt.Local().Format("2006-01-02 15:04:05")),
			markdown.RenderField("Updated", p.UpdatedAt.Local().Format("2006-01-02 15:04:05")),
			markdown.RenderField("Chats", strconv.Itoa(len(chats.List(p.ID)))),
		}
		if p.DueDate != nil {
			fields = append(fields, markdown.RenderField("Due", p.DueDate.Format("2006-01-02")))
		}
		fmt.Print(markdown.RenderEntityHeader(p.Title, fields))
		fmt.Println(markdown.RenderJourney(stages))

		raw, _ := cmd.Flags().GetBool("raw")
		body := export.SummaryMarkdown(*p, time.Now())
		if raw {
			fmt.Print(body)
			return nil
		}
		rendered, err := markdown.RenderMarkdown(body)
		if err != nil {
			return err
		}
		fmt.Print(rendered)
		return nil
	},
}

var projectSummaryCmd = &cobra.Command{
	Use:   "summary [id]",
	Short: "Update the RFP analysis summary",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := projectArg(cmd, args)
		if err != nil {
			return err
		}

		upd := project.SummaryUpdate{}
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			upd.Title = &title
		}
		if cmd.Flags().Changed("client") {
			client, _ := cmd.Flags().GetString("client")
			upd.Client = &client
		}
		if cmd.Flags().Changed("due") {
			dueStr, _ := cmd.Flags().GetString("due")
			due, err := parseDue(dueStr)
			if err != nil {
				return err
			}
			upd.DueDate = &due
		}
		if cmd.Flags().Changed("purpose") {
			purpose, _ := cmd.Flags().GetString("purpose")
			upd.Purpose = &purpose
		}
		if cmd.Flags().Changed("scope") {
			scope, _ := cmd.Flags().GetString("scope")
			upd.Scope = &scope
		}
		if cmd.Flags().Changed("payment-terms") {
			terms, _ := cmd.Flags().GetString("payment-terms")
			upd.PaymentTerms = &terms
		}
		if cmd.Flags().Changed("requirement") {
			reqs, _ := cmd.Flags().GetStringArray("requirement")
			upd.KeyRequirements = &reqs
		}
		if cmd.Flags().Changed("estimate") {
			estStr, _ := cmd.Flags().GetString("estimate")
			est, err := parseEstimates(estStr)
			if err != nil {
				return err
			}
			upd.Estimates = &est
		}

		if upd == (project.SummaryUpdate{}) {
			return fmt.Errorf("at least one update flag is required (--title, --client, --due, --purpose, --scope, --payment-terms, --requirement, --estimate)")
		}

		p, err := projects.UpdateSummary(projectID, upd)
		if err != nil {
			return err
		}
		fmt.Printf("Updated project %s\n", p.ID)
		return nil
	},
}

var projectSetDefaultCmd = &cobra.Command{
	Use:   "set-default <id>",
	Short: "Set the default project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := projects.Get(args[0]); err != nil {
			return err
		}
		cfg.DefaultProject = args[0]
		if err := config.Save(dataDir, cfg); err != nil {
			return err
		}
		fmt.Printf("Default project set to %s\n", args[0])
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := projects.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Project: %s (%s), %d chats\n", p.Title, p.ID, len(chats.List(p.ID)))

		if err := confirmDelete(cmd, p.ID); err != nil {
			return err
		}
		responder.CancelProject(p.ID)
		if err := projects.Delete(p.ID); err != nil {
			return err
		}

		if cfg.DefaultProject == p.ID {
			cfg.DefaultProject = ""
			if err := config.Save(dataDir, cfg); err != nil {
				logs.Warn("cmd", "clearing default project", map[string]interface{}{"error": err})
			}
		}

		fmt.Printf("Deleted project %s\n", p.ID)
		return nil
	},
}

var projectLinkCmd = &cobra.Command{
	Use:   "link [project-id]",
	Short: "Link the current directory to a project",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var projectID string
		if len(args) == 1 {
			projectID = args[0]
		} else {
			list, err := projects.List()
			if err != nil {
				return err
			}
			if len(list) == 0 {
				return fmt.Errorf("no projects exist; create one first with: salesfirst project create <title>")
			}
			opts := make([]huh.Option[string], len(list))
			for i, p := range list {
				opts[i] = huh.NewOption(fmt.Sprintf("%s  %s", p.ID, p.Title), p.ID)
			}
			if err := huh.NewSelect[string]().
				Title("Select a project").
				Options(opts...).
				Value(&projectID).
				Run(); err != nil {
				return fmt.Errorf("selection cancelled")
			}
		}

		if _, err := projects.Get(projectID); err != nil {
			return fmt.Errorf("project %s not found", projectID)
		}

		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		if err := repofile.Write(cwd, projectID); err != nil {
			return err
		}
		fmt.Printf("Linked %s to project %s\n", repofile.FileName, projectID)
		return nil
	},
}

var projectUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Remove the directory-local project link",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		removed, err := repofile.Remove(cwd)
		if err != nil {
			return err
		}
		if !removed {
			fmt.Println("No project linked.")
			return nil
		}
		fmt.Println("Unlinked project.")
		return nil
	},
}

// projectArg takes the project ID from the first argument, falling back to
// resolveProject.
func projectArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return resolveProject(cmd)
}

// parseDue parses a YYYY-MM-DD date. An empty string clears the date.
func parseDue(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q (want YYYY-MM-DD)", s)
	}
	return &d, nil
}

// parseEstimates parses "Role=Hours,Role=Hours".
func parseEstimates(s string) ([]model.RoleEstimate, error) {
	est := []model.RoleEstimate{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		role, hoursStr, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid estimate %q (want Role=Hours)", part)
		}
		hours, err := strconv.ParseFloat(strings.TrimSpace(hoursStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid hours in estimate %q: %w", part, err)
		}
		est = append(est, model.RoleEstimate{Role: strings.TrimSpace(role), Hours: hours})
	}
	return est, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	projectCreateCmd.Flags().StringP("client", "c", "", "issuing client")
	projectCreateCmd.Flags().String("due", "", "submission due date (YYYY-MM-DD)")

	projectShowCmd.Flags().StringP("project", "P", "", "project ID")
	projectShowCmd.Flags().Bool("raw", false, "output the summary as plain markdown")

	projectSummaryCmd.Flags().StringP("project", "P", "", "project ID")
	projectSummaryCmd.Flags().String("title", "", "new title")
	projectSummaryCmd.Flags().StringP("client", "c", "", "issuing client")
	projectSummaryCmd.Flags().String("due", "", "submission due date (YYYY-MM-DD, empty to clear)")
	projectSummaryCmd.Flags().String("purpose", "", "purpose of the RFP")
	projectSummaryCmd.Flags().String("scope", "", "scope of work")
	projectSummaryCmd.Flags().String("payment-terms", "", "payment terms")
	projectSummaryCmd.Flags().StringArray("requirement", nil, "key requirement (repeatable, replaces existing)")
	projectSummaryCmd.Flags().String("estimate", "", "role estimates as Role=Hours,Role=Hours (replaces existing)")

	projectDeleteCmd.Flags().BoolP("force", "f", false, "skip confirmation")

	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectSummaryCmd)
	projectCmd.AddCommand(projectSetDefaultCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	projectCmd.AddCommand(projectLinkCmd)
	projectCmd.AddCommand(projectUnlinkCmd)
	rootCmd.AddCommand(projectCmd)
}
