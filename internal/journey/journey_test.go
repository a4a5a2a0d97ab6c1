package journey

import (
	"testing"

	"github.com/rogersnm/salesfirst/internal/kv"
	"github.com/rogersnm/salesfirst/internal/logger"
	"github.com/rogersnm/salesfirst/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T) (*Tracker, *kv.Memory) {
	t.Helper()
	m := kv.NewMemory()
	return NewTracker(m, logger.NewNop()), m
}

func stages(pairs ...string) []model.Stage {
	out := make([]model.Stage, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, model.Stage{Name: pairs[i], Status: model.Status(pairs[i+1])})
	}
	return out
}

func statuses(ss []model.Stage) []model.Status {
	out := make([]model.Status, len(ss))
	for i, s := range ss {
		out[i] = s.Status
	}
	return out
}

func TestGet_DefaultFallback(t *testing.T) {
	tr, m := newTestTracker(t)
	defaults := DefaultStages()

	got := tr.Get("p1", defaults)
	assert.Equal(t, defaults, got)

	// defaults are not persisted by a read
	_, found, err := m.Get(StorageKey)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGet_ReturnsCopyOfDefaults(t *testing.T) {
	tr, _ := newTestTracker(t)
	defaults := DefaultStages()
	got := tr.Get("p1", defaults)
	got[0].Status = model.StatusPending
	assert.Equal(t, model.StatusCompleted, defaults[0].Status)
}

func TestGet_CorruptStoreFallsBack(t *testing.T) {
	tr, m := newTestTracker(t)
	require.NoError(t, m.Set(StorageKey, []byte("not-json")))

	defaults := stages("A", "pending")
	assert.Equal(t, defaults, tr.Get("p1", defaults))

	_, _, err := tr.Load("p1")
	assert.ErrorIs(t, err, kv.ErrCorrupt)
}

func TestReplace_RoundTrip(t *testing.T) {
	tr, _ := newTestTracker(t)
	want := stages("X", "completed", "Y", "in-progress")
	require.NoError(t, tr.Replace("p1", want))

	assert.Equal(t, want, tr.Get("p1", DefaultStages()))
	assert.Equal(t, want, tr.Get("p1", nil))
}

func TestReplace_Idempotent(t *testing.T) {
	tr, m := newTestTracker(t)
	want := stages("X", "completed")
	require.NoError(t, tr.Replace("p1", want))
	first, _, _ := m.Get(StorageKey)
	require.NoError(t, tr.Replace("p1", want))
	second, _, _ := m.Get(StorageKey)
	assert.Equal(t, first, second)
}

func TestReplace_RejectsDuplicateNames(t *testing.T) {
	tr, m := newTestTracker(t)
	err := tr.Replace("p1", stages("A", "pending", "A", "completed"))
	assert.ErrorIs(t, err, ErrInvalidJourney)

	_, found, _ := m.Get(StorageKey)
	assert.False(t, found)
}

func TestReplace_RejectsUnknownStatus(t *testing.T) {
	tr, _ := newTestTracker(t)
	assert.ErrorIs(t, tr.Replace("p1", stages("A", "done")), ErrInvalidJourney)
}

func TestReplace_ProjectsAreIsolated(t *testing.T) {
	tr, _ := newTestTracker(t)
	require.NoError(t, tr.Replace("p1", stages("A", "completed")))
	require.NoError(t, tr.Replace("p2", stages("B", "pending")))

	assert.Equal(t, stages("A", "completed"), tr.Get("p1", nil))
	assert.Equal(t, stages("B", "pending"), tr.Get("p2", nil))
}

func TestSetStageStatus(t *testing.T) {
	tr, _ := newTestTracker(t)
	defaults := stages("A", "completed", "B", "in-progress", "C", "pending")

	got := tr.SetStageStatus("p1", "B", model.StatusPending, defaults)
	assert.Equal(t, []model.Status{"completed", "pending", "pending"}, statuses(got))

	stored, found, err := tr.Load("p1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, got, stored)
}

func TestSetStageStatus_NoMatchStillPersists(t *testing.T) {
	tr, _ := newTestTracker(t)
	defaults := stages("A", "pending")

	got := tr.SetStageStatus("p1", "Missing", model.StatusCompleted, defaults)
	assert.Equal(t, defaults, got)

	stored, found, err := tr.Load("p1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, defaults, stored)
}

func TestSetStageStatus_DuplicateNamesAllUpdated(t *testing.T) {
	tr, _ := newTestTracker(t)
	defaults := stages("A", "pending", "A", "pending", "B", "pending")

	got := tr.SetStageStatus("p1", "A", model.StatusCompleted, defaults)
	assert.Equal(t, []model.Status{"completed", "completed", "pending"}, statuses(got))
}

func TestAdvance_CompletesAndPromotesNext(t *testing.T) {
	tr, _ := newTestTracker(t)
	require.NoError(t, tr.Replace("p1", stages("A", "completed", "B", "in-progress", "C", "pending", "D", "pending")))

	got := tr.Advance("p1", "B", nil)
	assert.Equal(t, []model.Status{"completed", "completed", "in-progress", "pending"}, statuses(got))

	again := tr.Advance("p1", "B", nil)
	assert.Equal(t, got, again)
}

func TestAdvance_PromotesOnlyOne(t *testing.T) {
	tr, _ := newTestTracker(t)
	defaults := stages("A", "in-progress", "B", "pending", "C", "pending")

	got := tr.Advance("p1", "A", defaults)
	assert.Equal(t, []model.Status{"completed", "in-progress", "pending"}, statuses(got))
	assert.Equal(t, 1, InProgressCount(got))
}

func TestAdvance_SkipsNonPendingAfterMatch(t *testing.T) {
	tr, _ := newTestTracker(t)
	defaults := stages("A", "in-progress", "B", "completed", "C", "pending")

	got := tr.Advance("p1", "A", defaults)
	assert.Equal(t, []model.Status{"completed", "completed", "in-progress"}, statuses(got))
}

func TestAdvance_LastStage(t *testing.T) {
	tr, _ := newTestTracker(t)
	defaults := stages("A", "completed", "B", "in-progress")

	got := tr.Advance("p1", "B", defaults)
	assert.Equal(t, []model.Status{"completed", "completed"}, statuses(got))
	assert.Equal(t, 0, InProgressCount(got))
}

func TestAdvance_NotInProgressPersistsUnchanged(t *testing.T) {
	tr, _ := newTestTracker(t)
	defaults := []model.Stage{
		{Name: "RFP Received", Status: model.StatusCompleted},
		{Name: "Initial Analysis", Status: model.StatusPending},
	}

	got := tr.Advance("p1", "RFP Received", defaults)
	assert.Equal(t, defaults, got)

	stored, found, err := tr.Load("p1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, defaults, stored)
}

func TestAdvance_WalksWholePipeline(t *testing.T) {
	tr, _ := newTestTracker(t)
	defaults := DefaultStages()

	names := []string{"Initial Analysis", "Estimation Review", "Response Writeup", "Submission"}
	var got []model.Stage
	for _, n := range names {
		got = tr.Advance("p1", n, defaults)
		assert.LessOrEqual(t, InProgressCount(got), 1)
	}
	for _, s := range got {
		assert.Equal(t, model.StatusCompleted, s.Status, s.Name)
	}
}

func TestAdvance_QuotaFailureIsSilent(t *testing.T) {
	m := kv.NewMemory()
	tr := NewTracker(kv.WithQuota(m, 4), logger.NewNop())
	defaults := stages("A", "in-progress", "B", "pending")

	got := tr.Advance("p1", "A", defaults)
	assert.Equal(t, []model.Status{"completed", "in-progress"}, statuses(got))

	// nothing was written, so the next read falls back to defaults again
	assert.Equal(t, defaults, tr.Get("p1", defaults))
}

func TestSave_ReplacesCorruptMap(t *testing.T) {
	tr, m := newTestTracker(t)
	require.NoError(t, m.Set(StorageKey, []byte("{")))

	require.NoError(t, tr.Save("p1", stages("A", "pending")))
	got, found, err := tr.Load("p1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, stages("A", "pending"), got)
}

func TestCurrent(t *testing.T) {
	s, ok := Current(DefaultStages())
	assert.True(t, ok)
	assert.Equal(t, "Initial Analysis", s.Name)

	_, ok = Current(stages("A", "completed"))
	assert.False(t, ok)
}
