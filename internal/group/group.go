// Package group stores the shared team containers whose knowledge bases
// are visible to every member.
package group

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rogersnm/salesfirst/internal/id"
	"github.com/rogersnm/salesfirst/internal/kv"
	"github.com/rogersnm/salesfirst/internal/model"
)

const StorageKey = "groups"

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("group not found")
)

var validate = validator.New()

type inviteRequest struct {
	Email string `validate:"required,email"`
	Role  string `validate:"omitempty,max=32"`
}

type Store struct {
	store kv.Store
	now   func() time.Time
	mu    sync.Mutex
}

func NewStore(store kv.Store) *Store {
	return &Store{store: store, now: func() time.Time { return time.Now().UTC().Truncate(time.Second) }}
}

func (s *Store) List() ([]model.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list()
}

func (s *Store) Get(groupID string) (model.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	groups, err := s.list()
	if err != nil {
		return model.Group{}, err
	}
	for _, g := range groups {
		if g.ID == groupID {
			return g, nil
		}
	}
	return model.Group{}, fmt.Errorf("%w: %s", ErrNotFound, groupID)
}

func (s *Store) Create(name, description string) (model.Group, error) {
	gid, err := id.New(id.Group)
	if err != nil {
		return model.Group{}, err
	}
	g := model.Group{
		ID:            gid,
		Name:          strings.TrimSpace(name),
		Description:   description,
		Members:       []model.Member{},
		KnowledgeBase: model.KnowledgeBase{Topics: []model.GroupTopic{}, Files: []string{}},
		CreatedAt:     s.now(),
	}
	if err := g.Validate(); err != nil {
		return model.Group{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	groups, err := s.list()
	if err != nil {
		return model.Group{}, err
	}
	if err := kv.SetJSON(s.store, StorageKey, append(groups, g)); err != nil {
		return model.Group{}, err
	}
	return g, nil
}

// Invite adds a member. The email must be a valid address not already in
// the group; role defaults to "member".
func (s *Store) Invite(groupID, name, email, role string) (model.Group, error) {
	req := inviteRequest{Email: strings.TrimSpace(email), Role: strings.TrimSpace(role)}
	if err := validate.Struct(req); err != nil {
		return model.Group{}, fmt.Errorf("%w: invalid invite for %q: %v", ErrValidation, email, err)
	}
	if req.Role == "" {
		req.Role = "member"
	}
	if name == "" {
		name = req.Email[:strings.Index(req.Email, "@")]
	}

	return s.modify(groupID, func(g *model.Group) error {
		for _, m := range g.Members {
			if strings.EqualFold(m.Email, req.Email) {
				return fmt.Errorf("%w: %s is already a member", ErrValidation, req.Email)
			}
		}
		g.Members = append(g.Members, model.Member{Name: name, Email: req.Email, Role: req.Role})
		return nil
	})
}

// AddTopic records a topic in the group's knowledge base. An existing key
// keeps its entry and gains any new files. Files are also added to the
// group-wide file list.
func (s *Store) AddTopic(groupID string, topic model.GroupTopic) (model.Group, error) {
	if topic.Key == "" || topic.Name == "" {
		return model.Group{}, fmt.Errorf("%w: topic key and name are required", ErrValidation)
	}
	return s.modify(groupID, func(g *model.Group) error {
		found := false
		for i := range g.KnowledgeBase.Topics {
			if g.KnowledgeBase.Topics[i].Key == topic.Key {
				g.KnowledgeBase.Topics[i].Files = mergeFiles(g.KnowledgeBase.Topics[i].Files, topic.Files)
				found = true
				break
			}
		}
		if !found {
			g.KnowledgeBase.Topics = append(g.KnowledgeBase.Topics, model.GroupTopic{
				Key:   topic.Key,
				Name:  topic.Name,
				Files: mergeFiles(nil, topic.Files),
			})
		}
		g.KnowledgeBase.Files = mergeFiles(g.KnowledgeBase.Files, topic.Files)
		return nil
	})
}

func (s *Store) modify(groupID string, fn func(g *model.Group) error) (model.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	groups, err := s.list()
	if err != nil {
		return model.Group{}, err
	}
	for i := range groups {
		if groups[i].ID != groupID {
			continue
		}
		if err := fn(&groups[i]); err != nil {
			return model.Group{}, err
		}
		if err := kv.SetJSON(s.store, StorageKey, groups); err != nil {
			return model.Group{}, err
		}
		return groups[i], nil
	}
	return model.Group{}, fmt.Errorf("%w: %s", ErrNotFound, groupID)
}

func (s *Store) list() ([]model.Group, error) {
	groups, _, err := kv.GetJSON[[]model.Group](s.store, StorageKey)
	if err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []model.Group{}
	}
	return groups, nil
}

func mergeFiles(existing, add []string) []string {
	out := append([]string{}, existing...)
	seen := make(map[string]bool, len(out)+len(add))
	for _, f := range out {
		seen[f] = true
	}
	for _, f := range add {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
