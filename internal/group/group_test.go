package group

import (
	"strings"
	"testing"

	"github.com/rogersnm/salesfirst/internal/kv"
	"github.com/rogersnm/salesfirst/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *kv.Memory) {
	t.Helper()
	m := kv.NewMemory()
	return NewStore(m), m
}

func TestList_Empty(t *testing.T) {
	s, _ := newTestStore(t)
	groups, err := s.List()
	require.NoError(t, err)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestList_Corrupt(t *testing.T) {
	s, m := newTestStore(t)
	require.NoError(t, m.Set(StorageKey, []byte("[")))
	_, err := s.List()
	assert.ErrorIs(t, err, kv.ErrCorrupt)
}

func TestCreate(t *testing.T) {
	s, _ := newTestStore(t)
	g, err := s.Create("Bid Team", "Public sector bids")
	require.NoError(t, err)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, "Bid Team", g.Name)
	assert.False(t, g.CreatedAt.IsZero())

	got, err := s.Get(g.ID)
	require.NoError(t, err)
	assert.Equal(t, g.Name, got.Name)
}

func TestCreate_EmptyName(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Create("  ", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGet_NotFound(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Get("GRP-ZZZZZ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvite(t *testing.T) {
	s, _ := newTestStore(t)
	g, _ := s.Create("Bid Team", "")

	g, err := s.Invite(g.ID, "", "ana@example.com", "")
	require.NoError(t, err)
	require.Len(t, g.Members, 1)
	assert.Equal(t, model.Member{Name: "ana", Email: "ana@example.com", Role: "member"}, g.Members[0])

	_, err = s.Invite(g.ID, "Ana", "ANA@example.com", "owner")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInvite_InvalidEmail(t *testing.T) {
	s, _ := newTestStore(t)
	g, _ := s.Create("Bid Team", "")
	for _, e := range []string{"", "not-an-email", "Ana <ana@example.com>", "ana@", "@example.com", "ana smith@example.com"} {
		_, err := s.Invite(g.ID, "Ana", e, "")
		assert.ErrorIs(t, err, ErrValidation, e)
	}
	got, _ := s.Get(g.ID)
	assert.Empty(t, got.Members)
}

func TestInvite_RoleTooLong(t *testing.T) {
	s, _ := newTestStore(t)
	g, _ := s.Create("Bid Team", "")
	_, err := s.Invite(g.ID, "Ana", "ana@example.com", strings.Repeat("r", 33))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInvite_TrimsInput(t *testing.T) {
	s, _ := newTestStore(t)
	g, _ := s.Create("Bid Team", "")
	g, err := s.Invite(g.ID, "Ana", "  ana@example.com ", " editor ")
	require.NoError(t, err)
	assert.Equal(t, model.Member{Name: "Ana", Email: "ana@example.com", Role: "editor"}, g.Members[0])
}

func TestInvite_UnknownGroup(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Invite("GRP-ZZZZZ", "Ana", "ana@example.com", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddTopic_DedupeAndMergeFiles(t *testing.T) {
	s, _ := newTestStore(t)
	g, _ := s.Create("Bid Team", "")

	_, err := s.AddTopic(g.ID, model.GroupTopic{Key: "pricing", Name: "Pricing", Files: []string{"a.pdf"}})
	require.NoError(t, err)
	g, err = s.AddTopic(g.ID, model.GroupTopic{Key: "pricing", Name: "Pricing", Files: []string{"a.pdf", "b.pdf"}})
	require.NoError(t, err)

	require.Len(t, g.KnowledgeBase.Topics, 1)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, g.KnowledgeBase.Topics[0].Files)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, g.KnowledgeBase.Files)
}

func TestAddTopic_Validation(t *testing.T) {
	s, _ := newTestStore(t)
	g, _ := s.Create("Bid Team", "")
	_, err := s.AddTopic(g.ID, model.GroupTopic{Name: "Pricing"})
	assert.ErrorIs(t, err, ErrValidation)
}
