// Package chat keeps per-project chat transcripts and simulates the
// assistant that answers in them.
package chat

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rogersnm/salesfirst/internal/id"
	"github.com/rogersnm/salesfirst/internal/kv"
	"github.com/rogersnm/salesfirst/internal/logger"
	"github.com/rogersnm/salesfirst/internal/model"
)

const logModule = "chat"

// GenericGreeting seeds sessions created without a topic.
const GenericGreeting = "Hello! I'm your proposal assistant. How can I help you with this RFP today?"

// StorageKey returns the key holding a project's sessions.
func StorageKey(projectID string) string {
	return "chat-sessions-" + projectID
}

// SessionUpdate names the fields Update may change. Nil fields are left alone.
type SessionUpdate struct {
	Title    *string
	Topic    **string
	Messages *[]model.Message
}

// Store manages chat sessions. Each operation reads, modifies and writes
// the whole collection for a project under one lock.
type Store struct {
	store     kv.Store
	log       logger.Logger
	greetings map[string]string
	now       func() time.Time

	mu       sync.Mutex
	onDelete func(projectID, sessionID string)
}

type Option func(*Store)

// WithGreetings registers topic-specific seed messages keyed by topic name.
func WithGreetings(g map[string]string) Option {
	return func(s *Store) {
		for name, text := range g {
			s.greetings[model.TopicKey(name)] = text
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(store kv.Store, log logger.Logger, opts ...Option) *Store {
	s := &Store{
		store:     store,
		log:       log,
		greetings: make(map[string]string),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Greeting returns the seed message for a session on topic.
func (s *Store) Greeting(topic string) string {
	if topic == "" {
		return GenericGreeting
	}
	if g, ok := s.greetings[model.TopicKey(topic)]; ok {
		return g
	}
	return fmt.Sprintf("Let's discuss %s. How can I help you today?", topic)
}

// List returns the project's sessions, newest first. The result is never
// nil; an unreadable collection yields an empty list.
func (s *Store) List(projectID string) []model.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(projectID)
}

// Get returns one session.
func (s *Store) Get(projectID, sessionID string) (model.ChatSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.list(projectID) {
		if c.ID == sessionID {
			return c, true
		}
	}
	return model.ChatSession{}, false
}

// Create starts a session seeded with one assistant greeting and puts it
// at the front of the project's list. An empty topic means no topic.
func (s *Store) Create(projectID, topic string) model.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sid, err := id.NewSessionID(now)
	if err != nil {
		// crypto/rand failure; fall back to the bare timestamp
		sid = fmt.Sprintf("%d", now.UnixMilli())
		s.log.Warn(logModule, "session id suffix unavailable", map[string]interface{}{"error": err})
	}

	session := model.ChatSession{
		ID:        sid,
		Title:     "New Chat",
		CreatedAt: now,
		UpdatedAt: now,
		Messages: []model.Message{{
			ID:        id.NewMessageID(),
			Role:      model.RoleAssistant,
			Content:   s.Greeting(topic),
			Timestamp: now,
		}},
	}
	if topic != "" {
		t := topic
		session.Topic = &t
		session.Title = topic + " Chat"
	}

	stored, err := s.load(projectID)
	if err != nil {
		s.log.Error(logModule, "session not saved", map[string]interface{}{"project": projectID, "session": sid, "error": err})
		return session
	}
	s.persist(projectID, append([]model.ChatSession{session}, stored...))
	s.log.Debug(logModule, "session created", map[string]interface{}{"project": projectID, "session": sid})
	return session
}

// Update merges upd into the session and refreshes UpdatedAt.
func (s *Store) Update(projectID, sessionID string, upd SessionUpdate) (model.ChatSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(projectID, sessionID, upd)
}

// Append adds msg to the end of the session's transcript. Existing messages
// are copied, never modified. A missing id or timestamp is filled in.
func (s *Store) Append(projectID, sessionID string, msg model.Message) (model.ChatSession, bool) {
	if err := msg.Validate(); err != nil {
		s.log.Warn(logModule, "rejecting message", map[string]interface{}{"session": sessionID, "error": err})
		return model.ChatSession{}, false
	}
	if msg.ID == "" {
		msg.ID = id.NewMessageID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.Timestamp.IsZero() {
		msg.Timestamp = s.now()
	}
	sessions, err := s.load(projectID)
	if err != nil {
		s.log.Error(logModule, "message not saved", map[string]interface{}{"session": sessionID, "error": err})
		return model.ChatSession{}, false
	}
	var existing []model.Message
	found := false
	for _, c := range sessions {
		if c.ID == sessionID {
			existing = c.Messages
			found = true
			break
		}
	}
	if !found {
		return model.ChatSession{}, false
	}
	msgs := make([]model.Message, len(existing), len(existing)+1)
	copy(msgs, existing)
	msgs = append(msgs, msg)
	return s.update(projectID, sessionID, SessionUpdate{Messages: &msgs})
}

// Delete removes a session and returns what remains. Pending assistant
// replies for the session are cancelled. When the collection cannot be
// read nothing is removed and the result is empty.
func (s *Store) Delete(projectID, sessionID string) []model.ChatSession {
	s.mu.Lock()
	sessions, err := s.load(projectID)
	if err != nil {
		s.mu.Unlock()
		s.log.Error(logModule, "session not deleted", map[string]interface{}{"project": projectID, "session": sessionID, "error": err})
		return []model.ChatSession{}
	}
	remaining := make([]model.ChatSession, 0, len(sessions))
	for _, c := range sessions {
		if c.ID != sessionID {
			remaining = append(remaining, c)
		}
	}
	s.persist(projectID, remaining)
	hook := s.onDelete
	s.mu.Unlock()

	if hook != nil {
		hook(projectID, sessionID)
	}
	return remaining
}

func (s *Store) setOnDelete(fn func(projectID, sessionID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDelete = fn
}

func (s *Store) update(projectID, sessionID string, upd SessionUpdate) (model.ChatSession, bool) {
	sessions, err := s.load(projectID)
	if err != nil {
		s.log.Error(logModule, "session not updated", map[string]interface{}{"session": sessionID, "error": err})
		return model.ChatSession{}, false
	}
	for i := range sessions {
		if sessions[i].ID != sessionID {
			continue
		}
		c := &sessions[i]
		if upd.Title != nil {
			c.Title = *upd.Title
		}
		if upd.Topic != nil {
			c.Topic = *upd.Topic
		}
		if upd.Messages != nil {
			c.Messages = *upd.Messages
		}
		c.UpdatedAt = s.now()
		s.persist(projectID, sessions)
		return *c, true
	}
	return model.ChatSession{}, false
}

func (s *Store) list(projectID string) []model.ChatSession {
	sessions, _, err := kv.GetJSON[[]model.ChatSession](s.store, StorageKey(projectID))
	if err != nil {
		s.log.Warn(logModule, "reading sessions failed", map[string]interface{}{"project": projectID, "error": err})
		return []model.ChatSession{}
	}
	if sessions == nil {
		return []model.ChatSession{}
	}
	return sessions
}

// load reads the sessions ahead of a write. A corrupt value counts as empty
// so the write replaces it; any other read error is returned and the caller
// must not write.
func (s *Store) load(projectID string) ([]model.ChatSession, error) {
	sessions, _, err := kv.GetJSON[[]model.ChatSession](s.store, StorageKey(projectID))
	if err != nil {
		if !errors.Is(err, kv.ErrCorrupt) {
			return nil, err
		}
		s.log.Warn(logModule, "discarding unreadable sessions", map[string]interface{}{"project": projectID, "error": err})
		sessions = nil
	}
	if sessions == nil {
		sessions = []model.ChatSession{}
	}
	return sessions, nil
}

func (s *Store) persist(projectID string, sessions []model.ChatSession) {
	if err := kv.SetJSON(s.store, StorageKey(projectID), sessions); err != nil {
		s.log.Error(logModule, "persisting sessions failed", map[string]interface{}{"project": projectID, "error": err})
	}
}
