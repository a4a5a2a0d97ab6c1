// Package export renders chat transcripts and RFP summaries as downloadable
// documents.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/rogersnm/salesfirst/internal/model"
)

const rule = "----------------------------------------"

// Transcript renders a session as plain text: a header naming the project,
// the chat and the export time, then one block per message.
func Transcript(projectTitle string, session model.ChatSession, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s\n", projectTitle)
	fmt.Fprintf(&b, "Chat: %s\n", session.Title)
	if name := session.TopicName(); name != "" {
		fmt.Fprintf(&b, "Topic: %s\n", name)
	}
	fmt.Fprintf(&b, "Exported: %s\n", at.UTC().Format(time.RFC3339))
	b.WriteString(rule + "\n")

	for i, msg := range session.Messages {
		if i > 0 {
			b.WriteString("\n" + rule + "\n")
		}
		fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Content)
	}
	return b.String()
}

// TranscriptFileName is the suggested download name for a session export.
func TranscriptFileName(session model.ChatSession) string {
	return "chat-" + slug(session.Title) + ".txt"
}

func slug(s string) string {
	s = model.TopicKey(s)
	if s == "" {
		return "untitled"
	}
	return s
}
