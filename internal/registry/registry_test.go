package registry

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grandline-arena/internal/domain"
)

func newTestRegistry() *Registry {
	return New(zerolog.Nop())
}

func TestCreate_RegistersBothParticipants(t *testing.T) {
	r := newTestRegistry()

	match, err := r.Create(domain.Combatant{ID: "a"}, domain.Combatant{ID: "b"})
	require.NoError(t, err)
	require.NotEmpty(t, match.ID)

	byA, ok := r.FindByParticipant("a")
	require.True(t, ok)
	byB, ok := r.FindByParticipant("b")
	require.True(t, ok)
	assert.Same(t, match, byA)
	assert.Same(t, match, byB)
}

func TestCreate_RejectsParticipantAlreadyInMatch(t *testing.T) {
	r := newTestRegistry()

	_, err := r.Create(domain.Combatant{ID: "a"}, domain.Combatant{ID: "b"})
	require.NoError(t, err)

	_, err = r.Create(domain.Combatant{ID: "a"}, domain.Combatant{ID: "c"})
	assert.ErrorIs(t, err, domain.ErrAlreadyMatched)

	_, err = r.Create(domain.Combatant{ID: "c"}, domain.Combatant{ID: "b"})
	assert.ErrorIs(t, err, domain.ErrAlreadyMatched)

	// The failed creations must not have left partial registrations.
	_, ok := r.FindByParticipant("c")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())
}

func TestRemove_LeavesNoResidualMappings(t *testing.T) {
	r := newTestRegistry()

	match, err := r.Create(domain.Combatant{ID: "a"}, domain.Combatant{ID: "b"})
	require.NoError(t, err)

	r.Remove(match.ID)

	_, ok := r.FindByParticipant("a")
	assert.False(t, ok)
	_, ok = r.FindByParticipant("b")
	assert.False(t, ok)
	_, ok = r.Get(match.ID)
	assert.False(t, ok)
	assert.Zero(t, r.Len())

	// Both participants can be matched again.
	_, err = r.Create(domain.Combatant{ID: "a"}, domain.Combatant{ID: "b"})
	assert.NoError(t, err)
}

func TestRemove_TwiceIsNoOp(t *testing.T) {
	r := newTestRegistry()

	match, err := r.Create(domain.Combatant{ID: "a"}, domain.Combatant{ID: "b"})
	require.NoError(t, err)

	r.Remove(match.ID)
	r.Remove(match.ID)

	assert.Zero(t, r.Len())
}

func TestGet_ByMatchID(t *testing.T) {
	r := newTestRegistry()

	match, err := r.Create(domain.Combatant{ID: "a"}, domain.Combatant{ID: "b"})
	require.NoError(t, err)

	got, ok := r.Get(match.ID)
	require.True(t, ok)
	assert.Same(t, match, got)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestCreate_IndependentMatches(t *testing.T) {
	r := newTestRegistry()

	m1, err := r.Create(domain.Combatant{ID: "a"}, domain.Combatant{ID: "b"})
	require.NoError(t, err)
	m2, err := r.Create(domain.Combatant{ID: "c"}, domain.Combatant{ID: "d"})
	require.NoError(t, err)

	assert.NotEqual(t, m1.ID, m2.ID)
	assert.Equal(t, 2, r.Len())
}
