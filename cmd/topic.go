package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/rogersnm/salesfirst/internal/editor"
	"github.com/rogersnm/salesfirst/internal/knowledge"
	"github.com/rogersnm/salesfirst/internal/markdown"
	"github.com/rogersnm/salesfirst/internal/model"
	"github.com/spf13/cobra"
)

// topicFile is the frontmatter written above topic content for editing.
type topicFile struct {
	Key    string   `yaml:"key"`
	Name   string   `yaml:"name"`
	Source string   `yaml:"source"`
	Files  []string `yaml:"files,omitempty"`
}

var topicCmd = &cobra.Command{
	Use:   "topic",
	Short: "Manage knowledge-base topics",
}

var topicListCmd = &cobra.Command{
	Use:   "list",
	Short: "List topics in the active scope",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(markdown.RenderTopicTable(topics.ListTopics(activeScope()), topics.Active()))
		return nil
	},
}

var topicAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a topic from attached files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, _ := cmd.Flags().GetStringSlice("files")
		scope := activeScope()
		t, created, err := topics.AddTopic(args[0], files, scope)
		if err != nil {
			if errors.Is(err, knowledge.ErrValidation) {
				return fmt.Errorf("cannot add topic: %w", err)
			}
			return err
		}
		if !created {
			fmt.Fprintf(cmd.OutOrStdout(), "Topic %s already exists; now active\n", t.Key)
			return nil
		}
		where := "personal"
		if t.Source == model.SourceGroup {
			where = "group " + t.GroupName
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created topic %s (%s)\n", t.Key, where)
		return nil
	},
}

var topicShowCmd = &cobra.Command{
	Use:   "show [key]",
	Short: "Show a topic's generated content",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := topicArg(args)
		if err != nil {
			return err
		}
		fields := []string{
			markdown.RenderField("Key", t.Key),
			markdown.RenderField("Source", string(t.Source)),
			markdown.RenderField("Files", orDash(strings.Join(t.Files, ", "))),
		}
		if t.GroupName != "" {
			fields = append(fields, markdown.RenderField("Group", t.GroupName))
		}
		fmt.Print(markdown.RenderEntityHeader(t.Name, fields))

		body := topics.Content(t.Key)
		if body == "" {
			return nil
		}
		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			fmt.Println(body)
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

var topicRegenerateCmd = &cobra.Command{
	Use:   "regenerate [key]",
	Short: "Regenerate a topic's content from the knowledge base",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := topicArg(args)
		if err != nil {
			return err
		}
		if _, err := topics.Regenerate(t.Key); err != nil {
			return err
		}
		fmt.Printf("Regenerated %s\n", t.Key)
		return nil
	},
}

var topicEditCmd = &cobra.Command{
	Use:   "edit [key]",
	Short: "Replace a topic's content from stdin or $EDITOR",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := topicArg(args)
		if err != nil {
			return err
		}

		body := readStdin()
		if body == "" {
			initial, err := markdown.Marshal(topicFile{
				Key:    t.Key,
				Name:   t.Name,
				Source: string(t.Source),
				Files:  t.Files,
			}, topics.Content(t.Key))
			if err != nil {
				return err
			}
			edited, err := editor.Edit(t.Key+".md", initial)
			if err != nil {
				return err
			}
			meta, parsed, err := markdown.Parse[topicFile](bytes.NewReader(edited))
			if err != nil {
				return err
			}
			if meta.Key != "" && meta.Key != t.Key {
				return fmt.Errorf("topic key cannot be changed (was %s, got %s)", t.Key, meta.Key)
			}
			body = parsed
		}

		if err := topics.SetContent(t.Key, body); err != nil {
			return fmt.Errorf("saving topic content: %w", err)
		}
		fmt.Printf("Updated %s\n", t.Key)
		return nil
	},
}

var topicUseCmd = &cobra.Command{
	Use:   "use <key>",
	Short: "Make a topic active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, ok := topics.Topic(activeScope(), args[0])
		if !ok {
			return fmt.Errorf("topic %s not found", args[0])
		}
		topics.SetActive(t.Key)
		fmt.Printf("Active topic set to %s\n", t.Key)
		return nil
	},
}

// topicArg resolves the named topic, or the active one when no key is given.
func topicArg(args []string) (model.Topic, error) {
	key := topics.Active()
	if len(args) == 1 {
		key = model.TopicKey(args[0])
	}
	if key == "" {
		return model.Topic{}, fmt.Errorf("no topic given and none is active (set one with: salesfirst topic use <key>)")
	}
	t, ok := topics.Topic(activeScope(), key)
	if !ok {
		return model.Topic{}, fmt.Errorf("topic %s not found", key)
	}
	return t, nil
}

func init() {
	topicAddCmd.Flags().StringSliceP("files", "f", nil, "comma-separated files backing the topic")
	topicShowCmd.Flags().Bool("raw", false, "output plain markdown")

	topicCmd.AddCommand(topicListCmd)
	topicCmd.AddCommand(topicAddCmd)
	topicCmd.AddCommand(topicShowCmd)
	topicCmd.AddCommand(topicRegenerateCmd)
	topicCmd.AddCommand(topicEditCmd)
	topicCmd.AddCommand(topicUseCmd)
	rootCmd.AddCommand(topicCmd)
}
