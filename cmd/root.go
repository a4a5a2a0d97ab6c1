package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	mtp "github.com/modeltoolsprotocol/go-sdk"
	"github.com/rogersnm/salesfirst/internal/chat"
	"github.com/rogersnm/salesfirst/internal/config"
	"github.com/rogersnm/salesfirst/internal/group"
	"github.com/rogersnm/salesfirst/internal/journey"
	"github.com/rogersnm/salesfirst/internal/knowledge"
	"github.com/rogersnm/salesfirst/internal/kv"
	"github.com/rogersnm/salesfirst/internal/logger"
	"github.com/rogersnm/salesfirst/internal/project"
	"github.com/rogersnm/salesfirst/internal/repofile"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	dataDir   string
	groupFlag string
	verbose   bool
	cfg       *config.Config
	logs      logger.Logger

	projects  *project.Store
	journeys  *journey.Tracker
	chats     *chat.Store
	responder *chat.Responder
	groups    *group.Store
	topics    *knowledge.Model
)

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".salesfirst")
	}
	return filepath.Join(home, ".salesfirst")
}

var rootCmd = &cobra.Command{
	Use:     "salesfirst",
	Short:   "Track RFP responses from upload to submission",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}

		var err error
		cfg, err = config.Load(dataDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		zl, err := logger.New(filepath.Join(dataDir, "logs"), verbose)
		if err != nil {
			return fmt.Errorf("opening log: %w", err)
		}
		logs = zl

		wire(kv.NewFile(filepath.Join(dataDir, "storage")))
		logs.Debug("cmd", "command started", map[string]interface{}{
			"command":  cmd.CommandPath(),
			"data_dir": dataDir,
		})
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logs != nil {
			// stderr sync fails on some terminals; nothing to recover.
			_ = logs.Sync()
		}
		return nil
	},
	SilenceUsage: true,
}

// wire builds every component over one shared store.
func wire(store kv.Store) {
	projects = project.NewStore(store)
	journeys = journey.NewTracker(store, logs)
	chats = chat.NewStore(store, logs, chat.WithGreetings(cfg.Greetings))
	responder = chat.NewResponder(chats, cfg.Delay(chat.DefaultReplyDelay), logs)
	groups = group.NewStore(store)
	topics = knowledge.New(store, groups, logs)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "data directory path")
	rootCmd.PersistentFlags().StringVarP(&groupFlag, "group", "G", "", "active group ID (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	mtpOpts := &mtp.DescribeOptions{
		Commands: map[string]*mtp.CommandAnnotation{
			"project create": {
				Examples: []mtp.Example{
					{Description: "Create a project for an incoming RFP", Command: "salesfirst project create \"City Transit RFP\" --client \"Springfield\""},
				},
			},
			"project summary": {
				Examples: []mtp.Example{
					{Description: "Record the RFP purpose and payment terms", Command: "salesfirst project summary --purpose \"Modernise ticketing\" --payment-terms \"Net 30\""},
					{Description: "Set role estimates", Command: "salesfirst project summary --estimate \"Project Manager=120,Developer=340\""},
				},
			},
			"project link": {
				Examples: []mtp.Example{
					{Description: "Link current directory to a project", Command: "salesfirst project link PROJ-XXXXX"},
				},
			},
			"project unlink": {
				Examples: []mtp.Example{
					{Description: "Remove directory-local project link", Command: "salesfirst project unlink"},
				},
			},
			"journey show": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Progress track and table of lifecycle stages with their status",
				},
			},
			"journey advance": {
				Examples: []mtp.Example{
					{Description: "Complete the current stage and start the next", Command: "salesfirst journey advance"},
					{Description: "Complete a named stage", Command: "salesfirst journey advance \"Initial Analysis\""},
				},
			},
			"journey set": {
				Examples: []mtp.Example{
					{Description: "Mark a stage completed", Command: "salesfirst journey set \"Estimation Review\" completed"},
				},
			},
			"chat new": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "ID of the new chat session",
				},
				Examples: []mtp.Example{
					{Description: "Start a chat about a topic", Command: "salesfirst chat new --topic Governance"},
				},
			},
			"chat say": {
				Stdin: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Message text, used when no message argument is given",
				},
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "The assistant's reply",
				},
				Examples: []mtp.Example{
					{Description: "Ask the assistant a question", Command: "salesfirst chat say 1772366400000-abc \"What are the key requirements?\""},
				},
			},
			"chat export": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Path of the written transcript file, or the transcript itself with --stdout",
				},
			},
			"chat delete": {
				Examples: []mtp.Example{
					{Description: "Delete a chat (interactive confirm)", Command: "salesfirst chat delete 1772366400000-abc"},
					{Description: "Delete a chat (skip confirm)", Command: "salesfirst chat delete 1772366400000-abc --force"},
				},
			},
			"topic add": {
				Examples: []mtp.Example{
					{Description: "Add a personal topic", Command: "salesfirst topic add \"Data Privacy\" --files gdpr.pdf,dpa.docx"},
					{Description: "Add a topic to a group knowledge base", Command: "salesfirst topic add Pricing --files rates.xlsx --group GRP-XXXXX"},
				},
			},
			"topic show": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/markdown",
					Description: "Generated content for the topic",
				},
			},
			"topic edit": {
				Stdin: &mtp.IODescriptor{
					ContentType: "text/markdown",
					Description: "Replacement content; opens $EDITOR when nothing is piped",
				},
			},
			"group invite": {
				Examples: []mtp.Example{
					{Description: "Invite a colleague", Command: "salesfirst group invite GRP-XXXXX \"Dana Reyes\" dana@example.com --role editor"},
				},
			},
			"export summary": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Path of the written summary document",
				},
				Examples: []mtp.Example{
					{Description: "Export the RFP summary as a Word document", Command: "salesfirst export summary --format doc"},
					{Description: "Export the RFP summary as HTML", Command: "salesfirst export summary --format html --out summary.html"},
				},
			},
		},
	}

	mtp.WithDescribe(rootCmd, mtpOpts)
}

func Execute() error {
	return rootCmd.Execute()
}

// resolveProject returns the project ID from the flag, directory link file, or global default.
func resolveProject(cmd *cobra.Command) (string, error) {
	p, _ := cmd.Flags().GetString("project")
	if p != "" {
		return p, nil
	}
	if cwd, err := os.Getwd(); err == nil {
		if rp, _, _ := repofile.Find(cwd); rp != "" {
			return rp, nil
		}
	}
	if cfg != nil && cfg.DefaultProject != "" {
		return cfg.DefaultProject, nil
	}
	return "", fmt.Errorf("--project is required (or set a default with: salesfirst project set-default <id>, or link a directory with: salesfirst project link)")
}

// activeScope returns the knowledge scope for the --group flag or the
// configured active group.
func activeScope() knowledge.Scope {
	if groupFlag != "" {
		return knowledge.InGroup(groupFlag)
	}
	if cfg != nil && cfg.ActiveGroup != "" {
		return knowledge.InGroup(cfg.ActiveGroup)
	}
	return knowledge.Personal()
}
