// Package project is the catalog of RFP projects and their analysis summaries.
package project

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rogersnm/salesfirst/internal/id"
	"github.com/rogersnm/salesfirst/internal/kv"
	"github.com/rogersnm/salesfirst/internal/model"
)

const StorageKey = "projects"

var ErrNotFound = errors.New("project not found")

// SummaryUpdate names the summary fields to change. Nil fields are left alone.
type SummaryUpdate struct {
	Title           *string
	Client          *string
	DueDate         **time.Time
	Purpose         *string
	Scope           *string
	PaymentTerms    *string
	KeyRequirements *[]string
	Estimates       *[]model.RoleEstimate
}

type Store struct {
	store kv.Store
	mu    sync.Mutex
}

func NewStore(store kv.Store) *Store {
	return &Store{store: store}
}

func (s *Store) Create(title, client string) (*model.Project, error) {
	pid, err := id.New(id.Project)
	if err != nil {
		return nil, err
	}
	at := now()
	p := &model.Project{
		ID:        pid,
		Title:     strings.TrimSpace(title),
		Client:    strings.TrimSpace(client),
		CreatedAt: at,
		UpdatedAt: at,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	projects, err := s.list()
	if err != nil {
		return nil, err
	}
	if err := kv.SetJSON(s.store, StorageKey, append(projects, *p)); err != nil {
		return nil, fmt.Errorf("writing project: %w", err)
	}
	return p, nil
}

func (s *Store) Get(projectID string) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	projects, err := s.list()
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == projectID {
			return &projects[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, projectID)
}

// List returns projects oldest first.
func (s *Store) List() ([]model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list()
}

func (s *Store) UpdateSummary(projectID string, upd SummaryUpdate) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	projects, err := s.list()
	if err != nil {
		return nil, err
	}
	for i := range projects {
		p := &projects[i]
		if p.ID != projectID {
			continue
		}
		if upd.Title != nil {
			p.Title = *upd.Title
		}
		if upd.Client != nil {
			p.Client = *upd.Client
		}
		if upd.DueDate != nil {
			p.DueDate = *upd.DueDate
		}
		if upd.Purpose != nil {
			p.Summary.Purpose = *upd.Purpose
		}
		if upd.Scope != nil {
			p.Summary.Scope = *upd.Scope
		}
		if upd.PaymentTerms != nil {
			p.Summary.PaymentTerms = *upd.PaymentTerms
		}
		if upd.KeyRequirements != nil {
			p.Summary.KeyRequirements = *upd.KeyRequirements
		}
		if upd.Estimates != nil {
			p.Summary.Estimates = *upd.Estimates
		}
		p.UpdatedAt = now()
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if err := kv.SetJSON(s.store, StorageKey, projects); err != nil {
			return nil, fmt.Errorf("writing project: %w", err)
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, projectID)
}

// Delete removes the catalog entry only. The project's journey and chat
// sessions stay in storage.
func (s *Store) Delete(projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	projects, err := s.list()
	if err != nil {
		return err
	}
	remaining := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if p.ID != projectID {
			remaining = append(remaining, p)
		}
	}
	if len(remaining) == len(projects) {
		return fmt.Errorf("%w: %s", ErrNotFound, projectID)
	}
	return kv.SetJSON(s.store, StorageKey, remaining)
}

func (s *Store) list() ([]model.Project, error) {
	projects, _, err := kv.GetJSON[[]model.Project](s.store, StorageKey)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []model.Project{}
	}
	return projects, nil
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
