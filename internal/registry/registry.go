// Package registry indexes active matches by participant and enforces the
// one-match-per-participant invariant.
package registry

import (
	"fmt"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"grandline-arena/internal/domain"
)

type Registry struct {
	mu            sync.Mutex
	byParticipant map[string]*domain.Match
	byID          map[string]*domain.Match
	logger        zerolog.Logger
}

func New(logger zerolog.Logger) *Registry {
	return &Registry{
		byParticipant: make(map[string]*domain.Match),
		byID:          make(map[string]*domain.Match),
		logger:        logger,
	}
}

// Create registers a new match between two participants. Both must be
// absent from the registry; otherwise nothing is inserted and
// domain.ErrAlreadyMatched is returned.
func (r *Registry) Create(a, b domain.Combatant) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byParticipant[a.ID]; ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyMatched, a.ID)
	}
	if _, ok := r.byParticipant[b.ID]; ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyMatched, b.ID)
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate match id: %w", err)
	}

	match := domain.NewMatch(id, a, b)
	r.byParticipant[a.ID] = match
	r.byParticipant[b.ID] = match
	r.byID[id] = match

	r.logger.Info().
		Str("match_id", id).
		Str("participant_a", a.ID).
		Str("participant_b", b.ID).
		Msg("match registered")

	return match, nil
}

// FindByParticipant returns the participant's active match, if any.
func (r *Registry) FindByParticipant(participantID string) (*domain.Match, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	match, ok := r.byParticipant[participantID]
	return match, ok
}

// Get returns a match by its id.
func (r *Registry) Get(matchID string) (*domain.Match, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	match, ok := r.byID[matchID]
	return match, ok
}

// Remove drops the match and both participant mappings. Removing an
// already-removed match is a no-op so whichever path observes the finish
// first wins.
func (r *Registry) Remove(matchID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	match, ok := r.byID[matchID]
	if !ok {
		return
	}

	delete(r.byParticipant, match.CombatantA.ID)
	delete(r.byParticipant, match.CombatantB.ID)
	delete(r.byID, matchID)

	r.logger.Info().Str("match_id", matchID).Msg("match removed from registry")
}

// Len reports how many matches are active.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.byID)
}
