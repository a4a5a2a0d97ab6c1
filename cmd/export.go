package cmd

import (
	"fmt"
	"time"

	"github.com/rogersnm/salesfirst/internal/export"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export project documents",
}

var exportSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Export the RFP summary as HTML or a Word document",
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := resolveProject(cmd)
		if err != nil {
			return err
		}
		p, err := projects.Get(projectID)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		var content string
		switch format {
		case "html":
			content, err = export.SummaryHTML(*p, time.Now())
		case "doc":
			content, err = export.SummaryDoc(*p, time.Now())
		case "md":
			content = export.SummaryMarkdown(*p, time.Now())
		default:
			return fmt.Errorf("invalid format %q: must be one of doc, html, md", format)
		}
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = export.SummaryFileName(*p, format)
		}
		if err := writeExport(out, content); err != nil {
			return err
		}
		logs.Info("cmd", "summary exported", map[string]interface{}{"project": p.ID, "format": format, "path": out})
		fmt.Println(out)
		return nil
	},
}

func init() {
	exportSummaryCmd.Flags().StringP("project", "P", "", "project ID")
	exportSummaryCmd.Flags().StringP("format", "F", "doc", "output format (doc, html, md)")
	exportSummaryCmd.Flags().StringP("out", "o", "", "output file (default <title>-summary.<format>)")

	exportCmd.AddCommand(exportSummaryCmd)
	rootCmd.AddCommand(exportCmd)
}
