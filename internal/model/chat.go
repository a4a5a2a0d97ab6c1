package model

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in a chat transcript. Messages are never
// mutated once appended.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func (m *Message) Validate() error {
	if m.Role != RoleUser && m.Role != RoleAssistant {
		return fmt.Errorf("invalid role %q: must be user or assistant", m.Role)
	}
	return nil
}

type ChatSession struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Topic     *string   `json:"topic"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Messages  []Message `json:"messages"`
}

// TopicName returns the session topic or "" when none is set.
func (c *ChatSession) TopicName() string {
	if c.Topic == nil {
		return ""
	}
	return *c.Topic
}

// LastMessage returns the newest message, if any.
func (c *ChatSession) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}
