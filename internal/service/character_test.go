package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCharacter_RaceBonus(t *testing.T) {
	store := newFakeStore()
	svc := NewCharacterService(store, zerolog.Nop())

	c, err := svc.Create(context.Background(), "p1", "Jinbe", "Homme-poisson", "Pirate", "")
	require.NoError(t, err)

	assert.Equal(t, 15, c.Force)
	assert.Equal(t, 5, c.Vitesse)
	assert.Equal(t, 1000, c.Berrys)
	assert.Equal(t, 30, c.AttributePoints)
	assert.Equal(t, 50, c.MaxEnergy) // endurance 5 × 10
	assert.Equal(t, c.MaxEnergy, c.Energy)
}

func TestCreateCharacter_GiantTradeoff(t *testing.T) {
	store := newFakeStore()
	svc := NewCharacterService(store, zerolog.Nop())

	c, err := svc.Create(context.Background(), "p1", "Oimo", "Géant", "Civil", "")
	require.NoError(t, err)

	assert.Equal(t, 25, c.Force)
	assert.Equal(t, -5, c.Vitesse)
}

func TestCreateCharacter_HumanChoosesBonus(t *testing.T) {
	store := newFakeStore()
	svc := NewCharacterService(store, zerolog.Nop())

	c, err := svc.Create(context.Background(), "p1", "Koby", "Humain", "Marine", "reflexe")
	require.NoError(t, err)

	assert.Equal(t, 10, c.Reflexe)
	assert.Equal(t, 5, c.Force)
}

func TestCreateCharacter_HumanInvalidBonusAttribute(t *testing.T) {
	store := newFakeStore()
	svc := NewCharacterService(store, zerolog.Nop())

	_, err := svc.Create(context.Background(), "p1", "Koby", "Humain", "Marine", "charisme")
	assert.Error(t, err)
}

func TestCreateCharacter_InvalidRace(t *testing.T) {
	store := newFakeStore()
	svc := NewCharacterService(store, zerolog.Nop())

	_, err := svc.Create(context.Background(), "p1", "Koby", "Tontatta", "Marine", "")
	assert.Error(t, err)
}

func TestCreateCharacter_InvalidAlignment(t *testing.T) {
	store := newFakeStore()
	svc := NewCharacterService(store, zerolog.Nop())

	_, err := svc.Create(context.Background(), "p1", "Koby", "Mink", "Yonko", "")
	assert.Error(t, err)
}

func TestCreateCharacter_CyborgEnergyScalesWithEndurance(t *testing.T) {
	store := newFakeStore()
	svc := NewCharacterService(store, zerolog.Nop())

	c, err := svc.Create(context.Background(), "p1", "Franky", "Cyborg", "Pirate", "")
	require.NoError(t, err)

	assert.Equal(t, 15, c.Endurance)
	assert.Equal(t, 150, c.MaxEnergy)
}
