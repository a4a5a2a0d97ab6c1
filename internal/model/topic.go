package model

import (
	"fmt"
	"strings"
)

type TopicSource string

const (
	SourcePersonal TopicSource = "personal"
	SourceGroup    TopicSource = "group"
)

type Topic struct {
	Key       string      `json:"key"`
	Name      string      `json:"name"`
	Files     []string    `json:"files"`
	Source    TopicSource `json:"source"`
	GroupID   string      `json:"groupId,omitempty"`
	GroupName string      `json:"groupName,omitempty"`
}

func (t *Topic) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("topic name is required")
	}
	if len(t.Files) == 0 {
		return fmt.Errorf("at least one file is required to create a topic")
	}
	if t.Source != SourcePersonal && t.Source != SourceGroup {
		return fmt.Errorf("invalid topic source %q", t.Source)
	}
	if t.Source == SourceGroup && t.GroupID == "" {
		return fmt.Errorf("group topic requires a group id")
	}
	return nil
}

// TopicKey derives the lookup key for a topic name: lowercased, with each
// run of whitespace replaced by a single hyphen.
func TopicKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
