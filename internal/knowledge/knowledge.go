// Package knowledge maintains the named topics that ground chats and
// document drafting, and the generated text kept for each.
package knowledge

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rogersnm/salesfirst/internal/kv"
	"github.com/rogersnm/salesfirst/internal/logger"
	"github.com/rogersnm/salesfirst/internal/model"
)

const (
	TopicsKey  = "knowledge-topics"
	ContentKey = "topic-content"
	ActiveKey  = "active-topic"
)

// RegenerateTrailer is appended to a topic's content on every regeneration.
const RegenerateTrailer = "\n\n[Regenerated with latest knowledge base updates]"

const logModule = "knowledge"

var ErrValidation = errors.New("validation failed")

// Scope selects whose topics an operation sees. The zero value is the
// current user's personal scope.
type Scope struct {
	GroupID string
}

func Personal() Scope              { return Scope{} }
func InGroup(groupID string) Scope { return Scope{GroupID: groupID} }

func (s Scope) IsGroup() bool { return s.GroupID != "" }

// GroupStore is the slice of the group collection the model writes through.
type GroupStore interface {
	Get(groupID string) (model.Group, error)
	AddTopic(groupID string, topic model.GroupTopic) (model.Group, error)
}

// DefaultTopics are shown when the user has no personal topics yet.
func DefaultTopics() []model.Topic {
	return []model.Topic{
		{Key: "transition", Name: "Transition", Files: []string{}, Source: model.SourcePersonal},
		{Key: "governance", Name: "Governance", Files: []string{}, Source: model.SourcePersonal},
		{Key: "business-continuity", Name: "Business Continuity", Files: []string{}, Source: model.SourcePersonal},
	}
}

// Model owns the topic list, the per-topic content map and the active
// topic. Group-scoped topics are written to both the local list and the
// group's knowledge base; the two writes are not atomic and a failed group
// write is logged without undoing the local one.
type Model struct {
	store  kv.Store
	groups GroupStore
	log    logger.Logger
	mu     sync.Mutex
}

func New(store kv.Store, groups GroupStore, log logger.Logger) *Model {
	return &Model{store: store, groups: groups, log: log}
}

// ListTopics returns the personal topics (or the defaults when there are
// none) and, for a group scope, the personal topics followed by the group's.
func (m *Model) ListTopics(scope Scope) []model.Topic {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible(scope)
}

// Topic looks up a visible topic by key.
func (m *Model) Topic(scope Scope, key string) (model.Topic, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return find(m.visible(scope), key)
}

// AddTopic creates a topic from name and its backing files. An empty name
// or file list is rejected with ErrValidation. When the derived key already
// exists the existing topic becomes active and is returned unchanged with
// created set to false.
func (m *Model) AddTopic(name string, files []string, scope Scope) (topic model.Topic, created bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Topic{}, false, fmt.Errorf("%w: topic name is required", ErrValidation)
	}
	files = nonEmpty(files)
	if len(files) == 0 {
		return model.Topic{}, false, fmt.Errorf("%w: attach at least one file to create a topic", ErrValidation)
	}
	key := model.TopicKey(name)

	m.mu.Lock()
	defer m.mu.Unlock()

	stored, err := m.loadTopics()
	if err != nil {
		return model.Topic{}, false, fmt.Errorf("reading topics: %w", err)
	}
	if existing, ok := m.existing(scope, key, stored); ok {
		m.setActive(key)
		return existing, false, nil
	}

	topic = model.Topic{Key: key, Name: name, Files: files, Source: model.SourcePersonal}
	if scope.IsGroup() {
		g, err := m.groups.Get(scope.GroupID)
		if err != nil {
			return model.Topic{}, false, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		topic.Source = model.SourceGroup
		topic.GroupID = g.ID
		topic.GroupName = g.Name
	}
	if err := topic.Validate(); err != nil {
		return model.Topic{}, false, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := kv.SetJSON(m.store, TopicsKey, append(stored, topic)); err != nil {
		m.log.Error(logModule, "persisting topics failed", map[string]interface{}{"topic": key, "error": err})
	}
	if scope.IsGroup() {
		m.mirror(topic)
	}

	if contents, err := m.loadContents(); err != nil {
		m.log.Error(logModule, "topic content not seeded", map[string]interface{}{"topic": key, "error": err})
	} else if _, ok := contents[key]; !ok {
		contents[key] = initialContent(name, files)
		m.saveContents(contents)
	}
	m.setActive(key)
	m.log.Info(logModule, "topic created", map[string]interface{}{"topic": key, "source": string(topic.Source)})
	return topic, true, nil
}

// Content returns the generated text for key, or "" when none exists.
func (m *Model) Content(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.contents()[key]
}

// SetContent replaces the content for key.
func (m *Model) SetContent(key, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	contents, err := m.loadContents()
	if err != nil {
		return fmt.Errorf("reading topic content: %w", err)
	}
	contents[key] = content
	return kv.SetJSON(m.store, ContentKey, contents)
}

// Regenerate appends RegenerateTrailer to the content for key, persists it
// and returns the new content. A failed write is logged; the new content is
// still returned.
func (m *Model) Regenerate(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	contents, err := m.loadContents()
	if err != nil {
		return "", fmt.Errorf("reading topic content: %w", err)
	}
	contents[key] = contents[key] + RegenerateTrailer
	m.saveContents(contents)
	return contents[key], nil
}

// Active returns the key of the active topic.
func (m *Model) Active() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	key, _, err := kv.GetJSON[string](m.store, ActiveKey)
	if err != nil {
		m.log.Warn(logModule, "reading active topic failed", map[string]interface{}{"error": err})
		return ""
	}
	return key
}

// SetActive switches the active topic.
func (m *Model) SetActive(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setActive(key)
}

func (m *Model) setActive(key string) {
	if err := kv.SetJSON(m.store, ActiveKey, key); err != nil {
		m.log.Error(logModule, "persisting active topic failed", map[string]interface{}{"error": err})
	}
}

func (m *Model) visible(scope Scope) []model.Topic {
	var personal, pending []model.Topic
	for _, t := range m.stored() {
		switch {
		case t.Source == model.SourcePersonal:
			personal = append(personal, t)
		case scope.IsGroup() && t.GroupID == scope.GroupID:
			pending = append(pending, t)
		}
	}
	if !scope.IsGroup() {
		if len(personal) == 0 {
			return DefaultTopics()
		}
		return personal
	}

	out := append([]model.Topic{}, personal...)
	g, err := m.groups.Get(scope.GroupID)
	if err != nil {
		m.log.Warn(logModule, "reading group topics failed", map[string]interface{}{"group": scope.GroupID, "error": err})
		return append(out, pending...)
	}
	for _, gt := range g.KnowledgeBase.Topics {
		out = append(out, g.AsTopic(gt))
	}
	// group topics whose mirror write has not landed yet
	for _, t := range pending {
		if !inGroup(g, t.Key) {
			out = append(out, t)
		}
	}
	return out
}

// existing finds a created topic with key in scope. Defaults do not count.
// A local group topic missing from the group's knowledge base is mirrored
// again.
func (m *Model) existing(scope Scope, key string, stored []model.Topic) (model.Topic, bool) {
	for _, t := range stored {
		if t.Key != key {
			continue
		}
		if t.Source == model.SourcePersonal {
			return t, true
		}
		if scope.IsGroup() && t.GroupID == scope.GroupID {
			if g, err := m.groups.Get(scope.GroupID); err == nil && !inGroup(g, key) {
				m.mirror(t)
			}
			return t, true
		}
	}
	if !scope.IsGroup() {
		return model.Topic{}, false
	}
	g, err := m.groups.Get(scope.GroupID)
	if err != nil {
		return model.Topic{}, false
	}
	for _, gt := range g.KnowledgeBase.Topics {
		if gt.Key == key {
			return g.AsTopic(gt), true
		}
	}
	return model.Topic{}, false
}

// mirror writes a group topic into the group's knowledge base. Failure is
// logged and leaves the local copy in place.
func (m *Model) mirror(t model.Topic) {
	_, err := m.groups.AddTopic(t.GroupID, model.GroupTopic{Key: t.Key, Name: t.Name, Files: t.Files})
	if err != nil {
		m.log.Error(logModule, "mirroring topic to group failed", map[string]interface{}{
			"topic": t.Key,
			"group": t.GroupID,
			"error": err,
		})
	}
}

// stored reads the topic list for display. Any read error yields an empty
// list.
func (m *Model) stored() []model.Topic {
	topics, _, err := kv.GetJSON[[]model.Topic](m.store, TopicsKey)
	if err != nil {
		m.log.Warn(logModule, "reading topics failed", map[string]interface{}{"error": err})
		return []model.Topic{}
	}
	return topics
}

// loadTopics reads the topic list ahead of a write. A corrupt value counts
// as empty so the write replaces it; any other read error is returned.
func (m *Model) loadTopics() ([]model.Topic, error) {
	topics, _, err := kv.GetJSON[[]model.Topic](m.store, TopicsKey)
	if err != nil {
		if !errors.Is(err, kv.ErrCorrupt) {
			return nil, err
		}
		m.log.Warn(logModule, "discarding unreadable topics", map[string]interface{}{"error": err})
		topics = nil
	}
	return topics, nil
}

func (m *Model) contents() map[string]string {
	c, _, err := kv.GetJSON[map[string]string](m.store, ContentKey)
	if err != nil {
		m.log.Warn(logModule, "reading topic content failed", map[string]interface{}{"error": err})
	}
	if c == nil {
		c = make(map[string]string)
	}
	return c
}

func (m *Model) loadContents() (map[string]string, error) {
	c, _, err := kv.GetJSON[map[string]string](m.store, ContentKey)
	if err != nil {
		if !errors.Is(err, kv.ErrCorrupt) {
			return nil, err
		}
		m.log.Warn(logModule, "discarding unreadable topic content", map[string]interface{}{"error": err})
		c = nil
	}
	if c == nil {
		c = make(map[string]string)
	}
	return c, nil
}

func (m *Model) saveContents(c map[string]string) {
	if err := kv.SetJSON(m.store, ContentKey, c); err != nil {
		m.log.Error(logModule, "persisting topic content failed", map[string]interface{}{"error": err})
	}
}

func inGroup(g model.Group, key string) bool {
	for _, gt := range g.KnowledgeBase.Topics {
		if gt.Key == key {
			return true
		}
	}
	return false
}

func find(topics []model.Topic, key string) (model.Topic, bool) {
	for _, t := range topics {
		if t.Key == key {
			return t, true
		}
	}
	return model.Topic{}, false
}

func nonEmpty(files []string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func initialContent(name string, files []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", name)
	sb.WriteString("Summary compiled from the attached material:\n\n")
	for _, f := range files {
		fmt.Fprintf(&sb, "- %s\n", f)
	}
	return sb.String()
}
