package markdown

import (
	"testing"
	"time"

	"github.com/rogersnm/salesfirst/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestRenderTables_Empty(t *testing.T) {
	assert.Equal(t, "No projects found.", RenderProjectTable(nil))
	assert.Equal(t, "No stages.", RenderStageTable(nil))
	assert.Equal(t, "No chats found.", RenderSessionTable(nil))
	assert.Equal(t, "No topics found.", RenderTopicTable(nil, ""))
	assert.Equal(t, "No groups found.", RenderGroupTable(nil))
	assert.Equal(t, "No members.", RenderMemberTable(nil))
}

func TestRenderProjectTable(t *testing.T) {
	out := RenderProjectTable([]model.Project{{
		ID: "PROJ-ABCDE", Title: "Transit", Client: "Springfield",
		CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}})
	assert.Contains(t, out, "PROJ-ABCDE")
	assert.Contains(t, out, "Springfield")
	assert.Contains(t, out, "2026-03-01")
}

func TestRenderTopicTable_MarksActive(t *testing.T) {
	out := RenderTopicTable([]model.Topic{
		{Key: "governance", Name: "Governance", Source: model.SourcePersonal},
		{Key: "pricing", Name: "Pricing", Source: model.SourceGroup, GroupID: "GRP-1", GroupName: "Bids"},
	}, "pricing")
	assert.Contains(t, out, "*")
	assert.Contains(t, out, "group (Bids)")
}

func TestRenderJourney(t *testing.T) {
	out := RenderJourney([]model.Stage{
		{Name: "RFP Received", Status: model.StatusCompleted},
		{Name: "Initial Analysis", Status: model.StatusInProgress},
	})
	assert.Contains(t, out, "[x] RFP Received")
	assert.Contains(t, out, "[~] Initial Analysis")
}
