package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStatus(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusInProgress, StatusCompleted} {
		assert.NoError(t, ValidateStatus(s))
	}
	assert.Error(t, ValidateStatus("in_progress"))
	assert.Error(t, ValidateStatus(""))
}

func TestStage_Validate_MissingName(t *testing.T) {
	s := &Stage{Status: StatusPending}
	assert.Error(t, s.Validate())
}

func TestValidateJourney_Duplicate(t *testing.T) {
	err := ValidateJourney([]Stage{
		{Name: "A", Status: StatusCompleted},
		{Name: "A", Status: StatusPending},
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate stage "A"`)
}

func TestValidateJourney_Valid(t *testing.T) {
	assert.NoError(t, ValidateJourney([]Stage{
		{Name: "A", Status: StatusCompleted},
		{Name: "B", Status: StatusInProgress},
	}))
	assert.NoError(t, ValidateJourney(nil))
}

func TestCloneStages_Independent(t *testing.T) {
	orig := []Stage{{Name: "A", Status: StatusPending}}
	c := CloneStages(orig)
	c[0].Status = StatusCompleted
	assert.Equal(t, StatusPending, orig[0].Status)
	assert.Nil(t, CloneStages(nil))
}

func TestTopicKey(t *testing.T) {
	assert.Equal(t, "governance", TopicKey("Governance"))
	assert.Equal(t, "business-continuity", TopicKey("Business Continuity"))
	assert.Equal(t, "a-b", TopicKey("  A \t B  "))
	assert.Equal(t, "", TopicKey("   "))
}

func TestTopic_Validate(t *testing.T) {
	valid := &Topic{Key: "x", Name: "X", Files: []string{"f.txt"}, Source: SourcePersonal}
	assert.NoError(t, valid.Validate())

	noFiles := &Topic{Key: "x", Name: "X", Source: SourcePersonal}
	assert.Error(t, noFiles.Validate())

	noName := &Topic{Files: []string{"f.txt"}, Source: SourcePersonal}
	assert.Error(t, noName.Validate())

	groupNoID := &Topic{Key: "x", Name: "X", Files: []string{"f.txt"}, Source: SourceGroup}
	assert.Error(t, groupNoID.Validate())
}

func TestMessage_Validate(t *testing.T) {
	assert.NoError(t, (&Message{Role: RoleUser}).Validate())
	assert.Error(t, (&Message{Role: "system"}).Validate())
}

func TestChatSession_TopicName(t *testing.T) {
	s := &ChatSession{}
	assert.Equal(t, "", s.TopicName())
	topic := "Governance"
	s.Topic = &topic
	assert.Equal(t, "Governance", s.TopicName())
}

func TestGroup_AsTopic(t *testing.T) {
	g := &Group{ID: "g1", Name: "Bid Team"}
	tp := g.AsTopic(GroupTopic{Key: "pricing", Name: "Pricing", Files: []string{"rates.xlsx"}})
	assert.Equal(t, SourceGroup, tp.Source)
	assert.Equal(t, "g1", tp.GroupID)
	assert.Equal(t, "Bid Team", tp.GroupName)
	assert.Equal(t, []string{"rates.xlsx"}, tp.Files)
}

func TestProject_Validate(t *testing.T) {
	p := &Project{ID: "PROJ-ABCDE", Title: "City RFP"}
	assert.NoError(t, p.Validate())

	p.Summary.Estimates = []RoleEstimate{{Role: "", Hours: 3}}
	assert.Error(t, p.Validate())

	p.Summary.Estimates = []RoleEstimate{{Role: "PM", Hours: -1}}
	assert.Error(t, p.Validate())
}

func TestRFPSummary_TotalHours(t *testing.T) {
	s := RFPSummary{Estimates: []RoleEstimate{{Role: "PM", Hours: 40}, {Role: "Dev", Hours: 120.5}}}
	assert.Equal(t, 160.5, s.TotalHours())
}
