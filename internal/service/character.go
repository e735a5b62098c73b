package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"grandline-arena/internal/constants"
	"grandline-arena/internal/domain"
)

// CharacterStore is the persistence collaborator the engine depends on.
// *repository.CharacterRepository satisfies it; tests substitute fakes.
type CharacterStore interface {
	Get(ctx context.Context, id string) (*domain.Character, error)
	Create(ctx context.Context, c *domain.Character) error
	Update(ctx context.Context, c *domain.Character) error
}

// raceBonuses mirrors the game's race table. A zero entry means the race
// grants its +5 to an attribute of the player's choice.
var raceBonuses = map[string]map[string]int{
	"Humain":        nil, // +5 to chosen attribute
	"Homme-poisson": {"force": 10},
	"Géant":         {"force": 20, "vitesse": -10},
	"Mink":          {"vitesse": 10},
	"Skypéien":      {"reflexe": 10},
	"Cyborg":        {"endurance": 10},
}

var alignments = map[string]bool{
	"Pirate":          true,
	"Marine":          true,
	"Révolutionnaire": true,
	"Civil":           true,
}

const (
	baseAttribute      = 5
	humanChoiceBonus   = 5
	startingBerrys     = 1000
	startingPoints     = 30
	energyPerEndurance = 10
)

type CharacterService struct {
	store  CharacterStore
	logger zerolog.Logger
}

func NewCharacterService(store CharacterStore, logger zerolog.Logger) *CharacterService {
	return &CharacterService{store: store, logger: logger}
}

// Create builds a fresh character with the race and alignment bonuses
// applied. bonusAttribute is only consulted for races with a free choice.
func (s *CharacterService) Create(ctx context.Context, id, name, race, alignment, bonusAttribute string) (*domain.Character, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	bonuses, ok := raceBonuses[race]
	if !ok {
		return nil, fmt.Errorf("invalid race: %q", race)
	}
	if !alignments[alignment] {
		return nil, fmt.Errorf("invalid alignment: %q", alignment)
	}

	attrs := map[string]int{
		"force":        baseAttribute,
		"vitesse":      baseAttribute,
		"endurance":    baseAttribute,
		"reflexe":      baseAttribute,
		"intelligence": baseAttribute,
		"precision":    baseAttribute,
	}

	if bonuses == nil {
		if _, ok := attrs[bonusAttribute]; !ok {
			return nil, fmt.Errorf("invalid bonus attribute: %q", bonusAttribute)
		}
		attrs[bonusAttribute] += humanChoiceBonus
	} else {
		for attr, bonus := range bonuses {
			attrs[attr] += bonus
		}
	}

	maxEnergy := attrs["endurance"] * energyPerEndurance

	character := &domain.Character{
		ID:              id,
		Name:            name,
		Race:            race,
		Alignment:       alignment,
		Level:           1,
		AttributePoints: startingPoints,
		Berrys:          startingBerrys,
		Energy:          maxEnergy,
		MaxEnergy:       maxEnergy,
		Force:           attrs["force"],
		Vitesse:         attrs["vitesse"],
		Endurance:       attrs["endurance"],
		Reflexe:         attrs["reflexe"],
		Intelligence:    attrs["intelligence"],
		Precision:       attrs["precision"],
	}

	if err := s.store.Create(ctx, character); err != nil {
		return nil, err
	}
	return character, nil
}

func (s *CharacterService) Get(ctx context.Context, id string) (*domain.Character, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.store.Get(ctx, id)
}
