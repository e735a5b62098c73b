package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"grandline-arena/internal/constants"
)

// EnergyRegenerator is the slice of the repository the regen loop needs.
type EnergyRegenerator interface {
	RegenerateEnergy(ctx context.Context, amount int) (int64, error)
}

// EnergyRegenService periodically restores persisted character energy.
type EnergyRegenService struct {
	repo     EnergyRegenerator
	interval time.Duration
	amount   int
	logger   zerolog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

func NewEnergyRegenService(repo EnergyRegenerator, logger zerolog.Logger) *EnergyRegenService {
	return &EnergyRegenService{
		repo:     repo,
		interval: constants.EnergyRegenInterval,
		amount:   constants.EnergyRegenAmount,
		logger:   logger,
	}
}

// Start launches the regeneration ticker. Stop shuts it down.
func (s *EnergyRegenService) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx)
	s.logger.Info().Dur("interval", s.interval).Int("amount", s.amount).Msg("energy regeneration started")
}

func (s *EnergyRegenService) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.logger.Info().Msg("energy regeneration stopped")
}

func (s *EnergyRegenService) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tickCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
			affected, err := s.repo.RegenerateEnergy(tickCtx, s.amount)
			cancel()
			if err != nil {
				s.logger.Error().Err(err).Msg("energy regeneration tick failed")
				continue
			}
			s.logger.Debug().Int64("characters", affected).Msg("energy regenerated")
		}
	}
}
