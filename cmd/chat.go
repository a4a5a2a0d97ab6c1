package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rogersnm/salesfirst/internal/chat"
	"github.com/rogersnm/salesfirst/internal/export"
	"github.com/rogersnm/salesfirst/internal/markdown"
	"github.com/rogersnm/salesfirst/internal/model"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the proposal assistant",
}

var chatListCmd = &cobra.Command{
	Use:   "list",
	Short: "List chat sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := resolveProject(cmd)
		if err != nil {
			return err
		}
		fmt.Println(markdown.RenderSessionTable(chats.List(projectID)))
		return nil
	},
}

var chatNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a chat session",
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := resolveProject(cmd)
		if err != nil {
			return err
		}
		topic, _ := cmd.Flags().GetString("topic")
		if topic == "" && !cmd.Flags().Changed("topic") {
			// Chats default to the active knowledge topic.
			if key := topics.Active(); key != "" {
				if t, ok := topics.Topic(activeScope(), key); ok {
					topic = t.Name
				}
			}
		}
		s := chats.Create(projectID, topic)
		fmt.Println(s.ID)
		return nil
	},
}

var chatShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a chat transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := resolveProject(cmd)
		if err != nil {
			return err
		}
		s, err := getSession(projectID, args[0])
		if err != nil {
			return err
		}
		fields := []string{
			markdown.RenderField("ID", s.ID),
			markdown.RenderField("Topic", orDash(s.TopicName())),
			markdown.RenderField("Created", s.CreatedAt.Local().Format("2006-01-02 15:04:05")),
			markdown.RenderField("Updated", s.UpdatedAt.Local().Format("2006-01-02 15:04:05")),
		}
		fmt.Print(markdown.RenderEntityHeader(s.Title, fields))
		for _, m := range s.Messages {
			fmt.Println(markdown.RenderMessage(m))
		}
		return nil
	},
}

var chatRenameCmd = &cobra.Command{
	Use:   "rename <session-id> <title>",
	Short: "Rename a chat session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := resolveProject(cmd)
		if err != nil {
			return err
		}
		title := strings.TrimSpace(args[1])
		if title == "" {
			return fmt.Errorf("title is required")
		}
		if _, ok := chats.Update(projectID, args[0], chat.SessionUpdate{Title: &title}); !ok {
			return fmt.Errorf("chat %s not found", args[0])
		}
		fmt.Printf("Renamed chat %s\n", args[0])
		return nil
	},
}

var chatDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a chat session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := resolveProject(cmd)
		if err != nil {
			return err
		}
		s, err := getSession(projectID, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Chat: %s (%s), %d messages\n", s.Title, s.ID, len(s.Messages))
		if err := confirmDelete(cmd, s.ID); err != nil {
			return err
		}
		chats.Delete(projectID, s.ID)
		fmt.Printf("Deleted chat %s\n", s.ID)
		return nil
	},
}

var chatSayCmd = &cobra.Command{
	Use:   "say <session-id> [message]",
	Short: "Send a message and wait for the assistant's reply",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := resolveProject(cmd)
		if err != nil {
			return err
		}
		var content string
		if len(args) == 2 {
			content = args[1]
		} else {
			content = strings.TrimSpace(readStdin())
		}

		ctx := cmd.Context()
		_, replies, err := responder.Send(ctx, projectID, args[0], content)
		if err != nil {
			return err
		}
		select {
		case reply, ok := <-replies:
			if !ok {
				return fmt.Errorf("reply cancelled")
			}
			fmt.Println(markdown.RenderMessage(reply))
		case <-ctx.Done():
			responder.CancelSession(projectID, args[0])
			return ctx.Err()
		}
		return nil
	},
}

var chatExportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Export a chat transcript as a text file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := resolveProject(cmd)
		if err != nil {
			return err
		}
		s, err := getSession(projectID, args[0])
		if err != nil {
			return err
		}
		title := projectID
		if p, err := projects.Get(projectID); err == nil {
			title = p.Title
		}
		text := export.Transcript(title, s, time.Now())

		if toStdout, _ := cmd.Flags().GetBool("stdout"); toStdout {
			fmt.Print(text)
			return nil
		}
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = export.TranscriptFileName(s)
		}
		if err := writeExport(out, text); err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

func getSession(projectID, sessionID string) (model.ChatSession, error) {
	s, ok := chats.Get(projectID, sessionID)
	if !ok {
		return model.ChatSession{}, fmt.Errorf("chat %s not found in project %s", sessionID, projectID)
	}
	return s, nil
}

func writeExport(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

func init() {
	for _, c := range []*cobra.Command{chatListCmd, chatNewCmd, chatShowCmd, chatRenameCmd, chatDeleteCmd, chatSayCmd, chatExportCmd} {
		c.Flags().StringP("project", "P", "", "project ID")
		chatCmd.AddCommand(c)
	}
	chatNewCmd.Flags().StringP("topic", "t", "", "topic to discuss (defaults to the active topic)")
	chatDeleteCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	chatExportCmd.Flags().StringP("out", "o", "", "output file (default chat-<title>.txt)")
	chatExportCmd.Flags().Bool("stdout", false, "print the transcript instead of writing a file")
	rootCmd.AddCommand(chatCmd)
}
