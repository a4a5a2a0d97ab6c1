package model

import (
	"fmt"
	"time"
)

type Member struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// GroupTopic is the shape a topic takes inside a group's knowledge base.
type GroupTopic struct {
	Key   string   `json:"key"`
	Name  string   `json:"name"`
	Files []string `json:"files"`
}

type KnowledgeBase struct {
	Topics []GroupTopic `json:"topics"`
	Files  []string     `json:"files"`
}

type Group struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Members       []Member      `json:"members"`
	KnowledgeBase KnowledgeBase `json:"knowledgeBase"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func (g *Group) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("group id is required")
	}
	if g.Name == "" {
		return fmt.Errorf("group name is required")
	}
	return nil
}

// AsTopic translates a group knowledge-base entry into the Topic shape.
func (g *Group) AsTopic(gt GroupTopic) Topic {
	return Topic{
		Key:       gt.Key,
		Name:      gt.Name,
		Files:     append([]string(nil), gt.Files...),
		Source:    SourceGroup,
		GroupID:   g.ID,
		GroupName: g.Name,
	}
}
