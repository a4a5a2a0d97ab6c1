package export

import (
	"strings"
	"testing"
	"time"

	"github.com/rogersnm/salesfirst/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleSession() model.ChatSession {
	topic := "Governance"
	return model.ChatSession{
		ID:    "1772366400000-abc",
		Title: "Governance Chat",
		Topic: &topic,
		Messages: []model.Message{
			{ID: "m1", Role: model.RoleAssistant, Content: "Let's discuss Governance."},
			{ID: "m2", Role: model.RoleUser, Content: "What are the reporting lines?"},
		},
	}
}

func sampleProject() model.Project {
	return model.Project{
		ID:     "PROJ-ABCDE",
		Title:  "City Transit RFP",
		Client: "Springfield",
		Summary: model.RFPSummary{
			Purpose:         "Modernise ticketing",
			PaymentTerms:    "Net 30",
			KeyRequirements: []string{"24/7 support", "PCI compliance"},
			Estimates: []model.RoleEstimate{
				{Role: "Project Manager", Hours: 120},
				{Role: "Developer", Hours: 340.5},
			},
		},
	}
}

func TestTranscript(t *testing.T) {
	out := Transcript("City Transit RFP", sampleSession(), exportedAt)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "Project: City Transit RFP", lines[0])
	assert.Equal(t, "Chat: Governance Chat", lines[1])
	assert.Equal(t, "Topic: Governance", lines[2])
	assert.Equal(t, "Exported: 2026-03-01T12:00:00Z", lines[3])
	assert.Equal(t, rule, lines[4])
	assert.Equal(t, "assistant: Let's discuss Governance.", lines[5])
	assert.Contains(t, out, "assistant: Let's discuss Governance.\n\n"+rule+"\nuser: What are the reporting lines?\n")
}

func TestTranscript_NoTopicNoMessages(t *testing.T) {
	out := Transcript("P", model.ChatSession{Title: "New Chat"}, exportedAt)
	assert.NotContains(t, out, "Topic:")
	assert.True(t, strings.HasSuffix(out, rule+"\n"))
}

func TestTranscriptFileName(t *testing.T) {
	assert.Equal(t, "chat-governance-chat.txt", TranscriptFileName(sampleSession()))
	assert.Equal(t, "chat-untitled.txt", TranscriptFileName(model.ChatSession{}))
}

func TestSummaryMarkdown(t *testing.T) {
	out := SummaryMarkdown(sampleProject(), exportedAt)
	for _, h := range []string{"## Purpose", "## Scope", "## Payment Terms", "## Key Requirements", "## Estimated Effort"} {
		assert.Contains(t, out, h)
	}
	assert.Contains(t, out, "- Project Manager: 120 hours")
	assert.Contains(t, out, "- Developer: 340.5 hours")
	assert.Contains(t, out, "**Total:** 460.5 hours")
	assert.Contains(t, out, "## Scope\n\n_None recorded._")
}

func TestSummaryHTML(t *testing.T) {
	out, err := SummaryHTML(sampleProject(), exportedAt)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>City Transit RFP</title>")
	assert.Contains(t, out, "<h2>Estimated Effort</h2>")
	assert.Contains(t, out, "<li>Project Manager: 120 hours</li>")
}

func TestSummaryDoc(t *testing.T) {
	out, err := SummaryDoc(sampleProject(), exportedAt)
	require.NoError(t, err)
	assert.Contains(t, out, "urn:schemas-microsoft-com:office:word")
	assert.Contains(t, out, `content="text/html; charset=utf-8"`)
	assert.Contains(t, out, "<h2>Key Requirements</h2>")
	assert.Contains(t, out, "<li>PCI compliance</li>")
}

func TestSummaryFileName(t *testing.T) {
	assert.Equal(t, "city-transit-rfp-summary.doc", SummaryFileName(sampleProject(), "doc"))
}
