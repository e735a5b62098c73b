package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"grandline-arena/internal/domain"
)

// CharacterRepository persists character records. The engine treats it as a
// synchronous collaborator: calls succeed or return an error, no retries.
type CharacterRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewCharacterRepository(db *sql.DB, logger zerolog.Logger) *CharacterRepository {
	return &CharacterRepository{db: db, logger: logger}
}

const characterColumns = `id, name, race, alignment, level, xp, attribute_points, berrys,
	energy, max_energy, force, vitesse, endurance, reflexe, intelligence, precision,
	wins, losses, created_at, updated_at`

func scanCharacter(row *sql.Row) (*domain.Character, error) {
	var c domain.Character
	err := row.Scan(
		&c.ID, &c.Name, &c.Race, &c.Alignment, &c.Level, &c.XP, &c.AttributePoints, &c.Berrys,
		&c.Energy, &c.MaxEnergy, &c.Force, &c.Vitesse, &c.Endurance, &c.Reflexe, &c.Intelligence, &c.Precision,
		&c.Wins, &c.Losses, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CharacterRepository) Get(ctx context.Context, id string) (*domain.Character, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE id = ?`, id)

	character, err := scanCharacter(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrCharacterNotFound, id)
	}
	if err != nil {
		r.logger.Error().Err(err).Str("character_id", id).Msg("failed to load character")
		return nil, fmt.Errorf("failed to load character: %w", err)
	}
	return character, nil
}

func (r *CharacterRepository) Create(ctx context.Context, c *domain.Character) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO characters (`+characterColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Race, c.Alignment, c.Level, c.XP, c.AttributePoints, c.Berrys,
		c.Energy, c.MaxEnergy, c.Force, c.Vitesse, c.Endurance, c.Reflexe, c.Intelligence, c.Precision,
		c.Wins, c.Losses, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("character_id", c.ID).Msg("failed to create character")
		return fmt.Errorf("failed to create character: %w", err)
	}

	r.logger.Info().Str("character_id", c.ID).Str("name", c.Name).Msg("character created")
	return nil
}

func (r *CharacterRepository) Update(ctx context.Context, c *domain.Character) error {
	c.UpdatedAt = time.Now()

	res, err := r.db.ExecContext(ctx,
		`UPDATE characters SET
			name = ?, race = ?, alignment = ?, level = ?, xp = ?, attribute_points = ?, berrys = ?,
			energy = ?, max_energy = ?, force = ?, vitesse = ?, endurance = ?, reflexe = ?,
			intelligence = ?, precision = ?, wins = ?, losses = ?, updated_at = ?
		 WHERE id = ?`,
		c.Name, c.Race, c.Alignment, c.Level, c.XP, c.AttributePoints, c.Berrys,
		c.Energy, c.MaxEnergy, c.Force, c.Vitesse, c.Endurance, c.Reflexe,
		c.Intelligence, c.Precision, c.Wins, c.Losses, c.UpdatedAt,
		c.ID,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("character_id", c.ID).Msg("failed to update character")
		return fmt.Errorf("failed to update character: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrCharacterNotFound, c.ID)
	}
	return nil
}

// RegenerateEnergy restores energy to every character below their maximum,
// clamped at max_energy. One statement for the whole roster.
func (r *CharacterRepository) RegenerateEnergy(ctx context.Context, amount int) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE characters
		 SET energy = MIN(max_energy, energy + ?), updated_at = ?
		 WHERE energy < max_energy`,
		amount, time.Now(),
	)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to regenerate energy")
		return 0, fmt.Errorf("failed to regenerate energy: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected, nil
}
