package domain

import (
	"sync"
)

const (
	MaxHealth = 100
	MaxEnergy = 100

	// LogDisplayLines is how many trailing narrative lines status frames show.
	LogDisplayLines = 3
)

// Combatant is the per-match snapshot of a participant. It is owned
// exclusively by the match and never synced back to the Character record
// while the match runs.
type Combatant struct {
	ID     string
	Name   string
	Health int
	Energy int
}

// Match is one active duel between two participants. All mutation must
// happen under Lock; Version increments on every turn advance so that a
// deadline timer armed for an older turn can detect it is stale.
type Match struct {
	mu sync.Mutex

	ID          string
	CombatantA  Combatant
	CombatantB  Combatant
	CurrentTurn string
	Round       int
	Status      MatchStatus
	Winner      string
	Version     uint64

	log []string
}

func NewMatch(id string, a, b Combatant) *Match {
	a.Health, a.Energy = MaxHealth, MaxEnergy
	b.Health, b.Energy = MaxHealth, MaxEnergy
	return &Match{
		ID:          id,
		CombatantA:  a,
		CombatantB:  b,
		CurrentTurn: a.ID,
		Round:       1,
		Status:      MatchActive,
		Version:     1,
	}
}

// Lock serializes all mutation of the match. Action submissions and firing
// deadline timers both take it; whichever loses the race re-checks Version
// and Status before touching anything.
func (m *Match) Lock() { m.mu.Lock() }

func (m *Match) Unlock() { m.mu.Unlock() }

// Current returns the combatant whose turn it is. Callers hold the lock.
func (m *Match) Current() *Combatant {
	if m.CurrentTurn == m.CombatantA.ID {
		return &m.CombatantA
	}
	return &m.CombatantB
}

// Opponent returns the combatant waiting on the current turn.
func (m *Match) Opponent() *Combatant {
	if m.CurrentTurn == m.CombatantA.ID {
		return &m.CombatantB
	}
	return &m.CombatantA
}

// ByID returns the combatant with the given participant id, or nil.
func (m *Match) ByID(id string) *Combatant {
	switch id {
	case m.CombatantA.ID:
		return &m.CombatantA
	case m.CombatantB.ID:
		return &m.CombatantB
	}
	return nil
}

// ApplyDamage reduces the combatant's health, clamped at zero, and reports
// whether it hit zero.
func (c *Combatant) ApplyDamage(amount int) bool {
	c.Health -= amount
	if c.Health < 0 {
		c.Health = 0
	}
	return c.Health == 0
}

// SpendEnergy debits energy, clamped at zero.
func (c *Combatant) SpendEnergy(amount int) {
	c.Energy -= amount
	if c.Energy < 0 {
		c.Energy = 0
	}
}

// AdvanceTurn flips the current turn to the other combatant, increments the
// round and bumps the version. Callers hold the lock.
func (m *Match) AdvanceTurn() {
	m.CurrentTurn = m.Opponent().ID
	m.Round++
	m.Version++
}

// Finish marks the match finished with the given winner. Finishing is
// irrevocable; later calls are no-ops so the termination path cannot credit
// rewards twice.
func (m *Match) Finish(winnerID string) bool {
	if m.Status == MatchFinished {
		return false
	}
	m.Status = MatchFinished
	m.Winner = winnerID
	m.Version++
	return true
}

// AppendLog records one narrative line.
func (m *Match) AppendLog(line string) {
	m.log = append(m.log, line)
}

// RecentLog returns up to the last n narrative lines.
func (m *Match) RecentLog(n int) []string {
	if n <= 0 || len(m.log) == 0 {
		return nil
	}
	if len(m.log) > n {
		return append([]string(nil), m.log[len(m.log)-n:]...)
	}
	return append([]string(nil), m.log...)
}
