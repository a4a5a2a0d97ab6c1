package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rogersnm/salesfirst/internal/model"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	inProgStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
)

func RenderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

func StatusStyle(status model.Status) lipgloss.Style {
	switch status {
	case model.StatusCompleted:
		return completedStyle
	case model.StatusInProgress:
		return inProgStyle
	default:
		return pendingStyle
	}
}

func RenderField(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

func RenderStatus(status model.Status) string {
	return StatusStyle(status).Render(string(status))
}

func RenderEntityHeader(title string, fields []string) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(title))
	sb.WriteString("\n")
	for _, f := range fields {
		sb.WriteString("  " + f + "\n")
	}
	return sb.String()
}

// RenderJourney draws the stages as a one-line progress track.
func RenderJourney(stages []model.Stage) string {
	parts := make([]string, len(stages))
	for i, s := range stages {
		parts[i] = StatusStyle(s.Status).Render(stageMark(s.Status) + " " + s.Name)
	}
	return strings.Join(parts, labelStyle.Render(" > "))
}

func stageMark(s model.Status) string {
	switch s {
	case model.StatusCompleted:
		return "[x]"
	case model.StatusInProgress:
		return "[~]"
	default:
		return "[ ]"
	}
}

// RenderMessage formats one chat message for the terminal.
func RenderMessage(m model.Message) string {
	style := assistantStyle
	if m.Role == model.RoleUser {
		style = userStyle
	}
	return style.Render(string(m.Role)) + " " +
		labelStyle.Render(m.Timestamp.Local().Format("15:04")) + "\n" + m.Content + "\n"
}
