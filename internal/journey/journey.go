// Package journey tracks each project's progress through its ordered
// pipeline of named stages.
package journey

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rogersnm/salesfirst/internal/kv"
	"github.com/rogersnm/salesfirst/internal/logger"
	"github.com/rogersnm/salesfirst/internal/model"
)

// StorageKey holds every project's journey in one map keyed by project id.
const StorageKey = "journey-blocks"

const logModule = "journey"

// ErrInvalidJourney is returned by Replace for lists it refuses to store.
var ErrInvalidJourney = errors.New("invalid journey")

// Tracker reads and transitions journeys. Reads fall back to the caller's
// defaults and storage failures are logged, never returned, from the
// degrading operations (Get, SetStageStatus, Advance).
type Tracker struct {
	store kv.Store
	log   logger.Logger
	mu    sync.Mutex
}

func NewTracker(store kv.Store, log logger.Logger) *Tracker {
	return &Tracker{store: store, log: log}
}

// DefaultStages is the lifecycle a freshly uploaded RFP starts in.
func DefaultStages() []model.Stage {
	return []model.Stage{
		{Name: "RFP Received", Status: model.StatusCompleted, Icon: "upload"},
		{Name: "Initial Analysis", Status: model.StatusInProgress, Icon: "analytics"},
		{Name: "Estimation Review", Status: model.StatusPending, Icon: "calculate"},
		{Name: "Response Writeup", Status: model.StatusPending, Icon: "edit"},
		{Name: "Submission", Status: model.StatusPending, Icon: "send"},
	}
}

// Load returns the stored journey for projectID. found is false when
// nothing is stored. A corrupt store surfaces as an error wrapping kv.ErrCorrupt.
func (t *Tracker) Load(projectID string) ([]model.Stage, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load(projectID)
}

// Save writes stages for projectID without validation and returns any
// storage error.
func (t *Tracker) Save(projectID string, stages []model.Stage) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.save(projectID, stages)
}

// Get returns the stored journey or, when none is stored or it cannot be
// read, a copy of defaults. Nothing is persisted.
func (t *Tracker) Get(projectID string, defaults []model.Stage) []model.Stage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current(projectID, defaults)
}

// Replace overwrites the journey for projectID. Stage names must be unique
// and statuses valid; a rejected list is not written.
func (t *Tracker) Replace(projectID string, stages []model.Stage) error {
	if err := model.ValidateJourney(stages); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJourney, err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.save(projectID, stages)
}

// SetStageStatus sets status on every stage named name and persists the
// list, even when no stage matched.
func (t *Tracker) SetStageStatus(projectID, name string, status model.Status, defaults []model.Stage) []model.Stage {
	t.mu.Lock()
	defer t.mu.Unlock()

	stages := t.current(projectID, defaults)
	matched := 0
	for i := range stages {
		if stages[i].Name == name {
			stages[i].Status = status
			matched++
		}
	}
	if matched == 0 {
		t.log.Debug(logModule, "no stage matched", map[string]interface{}{"project": projectID, "stage": name})
	}
	t.persist(projectID, stages)
	return stages
}

// Advance completes the first in-progress stage named current and promotes
// the first pending stage after it. If current is not in progress the list
// is persisted unchanged.
func (t *Tracker) Advance(projectID, current string, defaults []model.Stage) []model.Stage {
	t.mu.Lock()
	defer t.mu.Unlock()

	stages := advance(t.current(projectID, defaults), current)
	t.persist(projectID, stages)
	return stages
}

func advance(stages []model.Stage, current string) []model.Stage {
	completed := false
	armed := false
	for i := range stages {
		switch {
		case !completed && stages[i].Name == current && stages[i].Status == model.StatusInProgress:
			stages[i].Status = model.StatusCompleted
			completed = true
			armed = true
		case armed && stages[i].Status == model.StatusPending:
			stages[i].Status = model.StatusInProgress
			armed = false
		}
	}
	return stages
}

// InProgressCount reports how many stages are in progress. Correct use of
// Advance keeps this at most one.
func InProgressCount(stages []model.Stage) int {
	n := 0
	for _, s := range stages {
		if s.Status == model.StatusInProgress {
			n++
		}
	}
	return n
}

// Current returns the first in-progress stage.
func Current(stages []model.Stage) (model.Stage, bool) {
	for _, s := range stages {
		if s.Status == model.StatusInProgress {
			return s, true
		}
	}
	return model.Stage{}, false
}

func (t *Tracker) current(projectID string, defaults []model.Stage) []model.Stage {
	stages, found, err := t.load(projectID)
	if err != nil {
		t.log.Warn(logModule, "reading journey failed, using defaults", map[string]interface{}{
			"project": projectID,
			"error":   err,
		})
		return model.CloneStages(defaults)
	}
	if !found {
		return model.CloneStages(defaults)
	}
	return stages
}

func (t *Tracker) persist(projectID string, stages []model.Stage) {
	if err := t.save(projectID, stages); err != nil {
		t.log.Error(logModule, "persisting journey failed", map[string]interface{}{
			"project": projectID,
			"error":   err,
		})
	}
}

func (t *Tracker) load(projectID string) ([]model.Stage, bool, error) {
	all, _, err := kv.GetJSON[map[string][]model.Stage](t.store, StorageKey)
	if err != nil {
		return nil, false, err
	}
	stages, ok := all[projectID]
	if !ok {
		return nil, false, nil
	}
	return model.CloneStages(stages), true, nil
}

func (t *Tracker) save(projectID string, stages []model.Stage) error {
	all, _, err := kv.GetJSON[map[string][]model.Stage](t.store, StorageKey)
	if err != nil {
		if !errors.Is(err, kv.ErrCorrupt) {
			return err
		}
		// A corrupt map is replaced wholesale.
		t.log.Warn(logModule, "discarding unreadable journey map", map[string]interface{}{"error": err})
		all = nil
	}
	if all == nil {
		all = make(map[string][]model.Stage)
	}
	if stages == nil {
		stages = []model.Stage{}
	}
	all[projectID] = model.CloneStages(stages)
	return kv.SetJSON(t.store, StorageKey, all)
}
