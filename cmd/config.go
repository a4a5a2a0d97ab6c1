package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/rogersnm/salesfirst/internal/chat"
	"github.com/rogersnm/salesfirst/internal/markdown"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		scope := activeScope()
		fields := []string{
			markdown.RenderField("Data", dataDir),
			markdown.RenderField("Storage", filepath.Join(dataDir, "storage")),
			markdown.RenderField("Log", filepath.Join(dataDir, "logs", "salesfirst.log")),
			markdown.RenderField("Default project", orDash(cfg.DefaultProject)),
			markdown.RenderField("Active group", orDash(scope.GroupID)),
			markdown.RenderField("User", orDash(cfg.UserName)),
			markdown.RenderField("Reply delay", cfg.Delay(chat.DefaultReplyDelay).String()),
		}
		names := make([]string, 0, len(cfg.Greetings))
		for name := range cfg.Greetings {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fields = append(fields, markdown.RenderField("Greeting "+name, cfg.Greetings[name]))
		}
		fmt.Print(markdown.RenderEntityHeader("salesfirst "+version, fields))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
