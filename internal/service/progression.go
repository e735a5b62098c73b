package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// levelTable maps cumulative experience to levels and the attribute points
// each level grants. Levels 11-14, 16-19 and 21-24 do not exist; the table
// jumps the way the game's progression does.
var levelTable = []struct {
	level      int
	xpRequired int
	points     int
}{
	{1, 0, 30},
	{2, 100, 10},
	{3, 250, 10},
	{4, 450, 10},
	{5, 700, 10},
	{6, 1000, 10},
	{7, 1350, 10},
	{8, 1750, 10},
	{9, 2200, 10},
	{10, 2700, 15},
	{15, 5700, 15},
	{20, 10200, 20},
	{25, 16200, 20},
	{30, 24200, 25},
}

// LevelFromXP returns the level a cumulative experience total corresponds to.
func LevelFromXP(xp int) int {
	level := 1
	for i := len(levelTable) - 1; i >= 0; i-- {
		if xp >= levelTable[i].xpRequired {
			level = levelTable[i].level
			break
		}
	}
	return level
}

// XPForNextLevel returns the threshold of the next level above the given
// one, or 0 when the character is at the cap.
func XPForNextLevel(level int) int {
	for _, entry := range levelTable {
		if entry.level > level {
			return entry.xpRequired
		}
	}
	return 0
}

// ProgressionService credits experience and currency to persisted
// characters and applies level-ups.
type ProgressionService struct {
	store  CharacterStore
	logger zerolog.Logger
}

func NewProgressionService(store CharacterStore, logger zerolog.Logger) *ProgressionService {
	return &ProgressionService{store: store, logger: logger}
}

// ExperienceResult reports what a credit did to the character.
type ExperienceResult struct {
	XPGained  int
	OldLevel  int
	NewLevel  int
	LeveledUp bool
}

// CreditExperience adds experience and applies any level-ups, granting the
// attribute points of every level crossed.
func (s *ProgressionService) CreditExperience(ctx context.Context, participantID string, amount int) (*ExperienceResult, error) {
	character, err := s.store.Get(ctx, participantID)
	if err != nil {
		return nil, err
	}

	oldLevel := character.Level
	character.XP += amount
	newLevel := LevelFromXP(character.XP)

	if newLevel > oldLevel {
		for _, entry := range levelTable {
			if entry.level > oldLevel && entry.level <= newLevel {
				character.AttributePoints += entry.points
			}
		}
		character.Level = newLevel
	}

	if err := s.store.Update(ctx, character); err != nil {
		return nil, fmt.Errorf("failed to credit experience: %w", err)
	}

	s.logger.Info().
		Str("character_id", participantID).
		Int("xp_gained", amount).
		Int("level", character.Level).
		Bool("leveled_up", newLevel > oldLevel).
		Msg("experience credited")

	return &ExperienceResult{
		XPGained:  amount,
		OldLevel:  oldLevel,
		NewLevel:  newLevel,
		LeveledUp: newLevel > oldLevel,
	}, nil
}

// CreditCurrency adds berrys to the character's purse.
func (s *ProgressionService) CreditCurrency(ctx context.Context, participantID string, amount int) error {
	character, err := s.store.Get(ctx, participantID)
	if err != nil {
		return err
	}

	character.Berrys += amount
	if err := s.store.Update(ctx, character); err != nil {
		return fmt.Errorf("failed to credit currency: %w", err)
	}

	s.logger.Info().
		Str("character_id", participantID).
		Int("berrys", amount).
		Msg("currency credited")
	return nil
}

// RecordResult bumps the win or loss tally.
func (s *ProgressionService) RecordResult(ctx context.Context, participantID string, won bool) error {
	character, err := s.store.Get(ctx, participantID)
	if err != nil {
		return err
	}

	if won {
		character.Wins++
	} else {
		character.Losses++
	}
	if err := s.store.Update(ctx, character); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}
	return nil
}
