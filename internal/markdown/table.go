package markdown

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rogersnm/salesfirst/internal/model"
)

var (
	headerRowStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle      = lipgloss.NewStyle()
)

func RenderProjectTable(projects []model.Project) string {
	if len(projects) == 0 {
		return "No projects found."
	}
	rows := make([][]string, len(projects))
	for i, p := range projects {
		due := "-"
		if p.DueDate != nil {
			due = p.DueDate.Format("2006-01-02")
		}
		rows[i] = []string{p.ID, p.Title, p.Client, due, p.CreatedAt.Format("2006-01-02")}
	}
	return renderTable([]string{"ID", "Title", "Client", "Due", "Created"}, rows)
}

func RenderStageTable(stages []model.Stage) string {
	if len(stages) == 0 {
		return "No stages."
	}
	rows := make([][]string, len(stages))
	for i, s := range stages {
		rows[i] = []string{strconv.Itoa(i + 1), s.Name, RenderStatus(s.Status), s.Icon}
	}
	return renderTable([]string{"#", "Stage", "Status", "Icon"}, rows)
}

func RenderSessionTable(sessions []model.ChatSession) string {
	if len(sessions) == 0 {
		return "No chats found."
	}
	rows := make([][]string, len(sessions))
	for i, s := range sessions {
		topic := s.TopicName()
		if topic == "" {
			topic = "-"
		}
		rows[i] = []string{s.ID, s.Title, topic, strconv.Itoa(len(s.Messages)), s.UpdatedAt.Local().Format("2006-01-02 15:04")}
	}
	return renderTable([]string{"ID", "Title", "Topic", "Msgs", "Updated"}, rows)
}

// RenderTopicTable marks the active topic with an asterisk.
func RenderTopicTable(topics []model.Topic, active string) string {
	if len(topics) == 0 {
		return "No topics found."
	}
	rows := make([][]string, len(topics))
	for i, t := range topics {
		mark := ""
		if t.Key == active {
			mark = "*"
		}
		source := string(t.Source)
		if t.Source == model.SourceGroup && t.GroupName != "" {
			source = fmt.Sprintf("group (%s)", t.GroupName)
		}
		rows[i] = []string{mark, t.Key, t.Name, source, strings.Join(t.Files, ", ")}
	}
	return renderTable([]string{"", "Key", "Name", "Source", "Files"}, rows)
}

func RenderGroupTable(groups []model.Group) string {
	if len(groups) == 0 {
		return "No groups found."
	}
	rows := make([][]string, len(groups))
	for i, g := range groups {
		rows[i] = []string{g.ID, g.Name, strconv.Itoa(len(g.Members)), strconv.Itoa(len(g.KnowledgeBase.Topics))}
	}
	return renderTable([]string{"ID", "Name", "Members", "Topics"}, rows)
}

func RenderMemberTable(members []model.Member) string {
	if len(members) == 0 {
		return "No members."
	}
	rows := make([][]string, len(members))
	for i, m := range members {
		rows[i] = []string{m.Name, m.Email, m.Role}
	}
	return renderTable([]string{"Name", "Email", "Role"}, rows)
}

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerRowStyle
			}
			return cellStyle
		})
	return t.Render()
}
