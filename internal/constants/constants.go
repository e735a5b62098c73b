package constants

import "time"

// Turn deadline window and its warning marks (60% and 90% elapsed).
const (
	TurnTimeout       = 5 * time.Minute
	TurnWarningFirst  = 3 * time.Minute
	TurnWarningSecond = 4*time.Minute + 30*time.Second
)

const (
	TimeoutEnergyPenalty = 10
)

// Rewards credited when a match finishes.
const (
	WinnerBerrys = 500
	WinnerXP     = 100
	LoserXP      = 30
)

// Passive energy regeneration for persisted characters.
const (
	EnergyRegenInterval = 5 * time.Minute
	EnergyRegenAmount   = 10
)

const (
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
	NotifyTimeout   = 10 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)
