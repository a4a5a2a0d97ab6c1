package cmd

import (
	"fmt"
	"strings"

	"github.com/rogersnm/salesfirst/internal/config"
	"github.com/rogersnm/salesfirst/internal/markdown"
	"github.com/spf13/cobra"
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage groups and their shared knowledge bases",
}

var groupCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, _ := cmd.Flags().GetString("description")
		g, err := groups.Create(args[0], desc)
		if err != nil {
			return err
		}
		fmt.Printf("Created group %s (%s)\n", g.Name, g.ID)
		return nil
	},
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := groups.List()
		if err != nil {
			return err
		}
		fmt.Println(markdown.RenderGroupTable(list))
		return nil
	},
}

var groupShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a group's members and knowledge base",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := groups.Get(args[0])
		if err != nil {
			return err
		}
		topicNames := make([]string, len(g.KnowledgeBase.Topics))
		for i, t := range g.KnowledgeBase.Topics {
			topicNames[i] = t.Name
		}
		fields := []string{
			markdown.RenderField("ID", g.ID),
			markdown.RenderField("Description", orDash(g.Description)),
			markdown.RenderField("Topics", orDash(strings.Join(topicNames, ", "))),
			markdown.RenderField("Files", orDash(strings.Join(g.KnowledgeBase.Files, ", "))),
		}
		fmt.Print(markdown.RenderEntityHeader(g.Name, fields))
		fmt.Println(markdown.RenderMemberTable(g.Members))
		return nil
	},
}

var groupInviteCmd = &cobra.Command{
	Use:   "invite <id> <name> <email>",
	Short: "Add a member to a group",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")
		g, err := groups.Invite(args[0], args[1], args[2], role)
		if err != nil {
			return err
		}
		fmt.Printf("Invited %s to %s\n", args[2], g.Name)
		return nil
	},
}

var groupUseCmd = &cobra.Command{
	Use:   "use [id]",
	Short: "Set the active group (no id clears it)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			cfg.ActiveGroup = ""
			if err := config.Save(dataDir, cfg); err != nil {
				return err
			}
			fmt.Println("Cleared active group")
			return nil
		}
		g, err := groups.Get(args[0])
		if err != nil {
			return err
		}
		cfg.ActiveGroup = g.ID
		if err := config.Save(dataDir, cfg); err != nil {
			return err
		}
		fmt.Printf("Active group set to %s (%s)\n", g.Name, g.ID)
		return nil
	},
}

func init() {
	groupCreateCmd.Flags().StringP("description", "d", "", "group description")
	groupInviteCmd.Flags().StringP("role", "r", "member", "member role")

	groupCmd.AddCommand(groupCreateCmd)
	groupCmd.AddCommand(groupListCmd)
	groupCmd.AddCommand(groupShowCmd)
	groupCmd.AddCommand(groupInviteCmd)
	groupCmd.AddCommand(groupUseCmd)
	rootCmd.AddCommand(groupCmd)
}
