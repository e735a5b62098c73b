package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestMatch() *Match {
	return NewMatch("m1",
		Combatant{ID: "a", Name: "Luffy"},
		Combatant{ID: "b", Name: "Zoro"},
	)
}

func TestNewMatch_InitialState(t *testing.T) {
	m := newTestMatch()

	assert.Equal(t, MatchActive, m.Status)
	assert.Equal(t, "a", m.CurrentTurn)
	assert.Equal(t, 1, m.Round)
	assert.Equal(t, MaxHealth, m.CombatantA.Health)
	assert.Equal(t, MaxEnergy, m.CombatantB.Energy)
}

func TestCombatant_DamageClampedAtZero(t *testing.T) {
	c := Combatant{Health: 10}

	defeated := c.ApplyDamage(50)

	assert.True(t, defeated)
	assert.Equal(t, 0, c.Health)
}

func TestCombatant_EnergyClampedAtZero(t *testing.T) {
	c := Combatant{Energy: 5}

	c.SpendEnergy(10)

	assert.Equal(t, 0, c.Energy)
}

func TestCombatant_DamageBelowHealthDoesNotDefeat(t *testing.T) {
	c := Combatant{Health: 50}

	defeated := c.ApplyDamage(25)

	assert.False(t, defeated)
	assert.Equal(t, 25, c.Health)
}

func TestMatch_AdvanceTurnFlipsAndBumpsVersion(t *testing.T) {
	m := newTestMatch()
	before := m.Version

	m.AdvanceTurn()

	assert.Equal(t, "b", m.CurrentTurn)
	assert.Equal(t, 2, m.Round)
	assert.Greater(t, m.Version, before)

	m.AdvanceTurn()
	assert.Equal(t, "a", m.CurrentTurn)
}

func TestMatch_FinishIsIrrevocable(t *testing.T) {
	m := newTestMatch()

	assert.True(t, m.Finish("a"))
	assert.Equal(t, MatchFinished, m.Status)
	assert.Equal(t, "a", m.Winner)

	// A second finish must not change the winner or report success.
	assert.False(t, m.Finish("b"))
	assert.Equal(t, "a", m.Winner)
}

func TestMatch_CurrentAndOpponent(t *testing.T) {
	m := newTestMatch()

	assert.Equal(t, "a", m.Current().ID)
	assert.Equal(t, "b", m.Opponent().ID)

	m.AdvanceTurn()
	assert.Equal(t, "b", m.Current().ID)
	assert.Equal(t, "a", m.Opponent().ID)
}

func TestMatch_ByID(t *testing.T) {
	m := newTestMatch()

	assert.Equal(t, "Luffy", m.ByID("a").Name)
	assert.Equal(t, "Zoro", m.ByID("b").Name)
	assert.Nil(t, m.ByID("c"))
}

func TestMatch_RecentLogKeepsTail(t *testing.T) {
	m := newTestMatch()
	m.AppendLog("one")
	m.AppendLog("two")
	m.AppendLog("three")
	m.AppendLog("four")

	assert.Equal(t, []string{"two", "three", "four"}, m.RecentLog(3))
	assert.Equal(t, []string{"one", "two", "three", "four"}, m.RecentLog(10))
	assert.Nil(t, m.RecentLog(0))
}
