package domain

import (
	"time"
)

// Character is the persisted record for a participant, independent of any
// running match. Match-local health and energy live on Combatant snapshots
// and are never synced back here; only win/loss tallies, experience and
// berrys are credited at match end.
type Character struct {
	ID              string
	Name            string
	Race            string
	Alignment       string
	Level           int
	XP              int
	AttributePoints int
	Berrys          int
	Energy          int
	MaxEnergy       int
	Force           int
	Vitesse         int
	Endurance       int
	Reflexe         int
	Intelligence    int
	Precision       int
	Wins            int
	Losses          int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ActionKind classifies an interpreted action.
type ActionKind string

const (
	KindAttack ActionKind = "attack"
	KindDodge  ActionKind = "dodge"
	KindBlock  ActionKind = "block"
)

// ActionDescriptor is the structured result of interpreting one turn's
// free-text action. Optional facets are empty/zero when absent.
type ActionDescriptor struct {
	Kind           ActionKind
	Member         string
	DistanceMeters int
	HasDistance    bool
	Direction      string
	TargetZone     string
	NamedTechnique bool
	Specificity    int
	Valid          bool
}

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	MatchActive   MatchStatus = "active"
	MatchFinished MatchStatus = "finished"
)
