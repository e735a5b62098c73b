package fx

import (
	"go.uber.org/fx"

	"grandline-arena/internal/config"
	"grandline-arena/internal/database"
	"grandline-arena/internal/logger"
	"grandline-arena/internal/notify"
	"grandline-arena/internal/registry"
	"grandline-arena/internal/repository"
	"grandline-arena/internal/scheduler"
	"grandline-arena/internal/server"
	"grandline-arena/internal/service"
)

func provideNotifier(n *notify.WebhookNotifier) notify.Notifier { return n }

func provideStore(r *repository.CharacterRepository) service.CharacterStore { return r }

func provideRegen(r *repository.CharacterRepository) service.EnergyRegenerator { return r }

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewCharacterRepository),
	fx.Provide(provideStore),
	fx.Provide(provideRegen),
	// engine
	fx.Provide(registry.New),
	fx.Provide(scheduler.Default),
	// transport boundary
	fx.Provide(notify.NewWebhookNotifier),
	fx.Provide(provideNotifier),
	// svc
	fx.Provide(service.NewProgressionService),
	fx.Provide(service.NewCharacterService),
	fx.Provide(service.NewDuelService),
	fx.Provide(service.NewEnergyRegenService),
	// server
	fx.Provide(server.NewArenaServer),
)
