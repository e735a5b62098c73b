// Package scheduler owns the per-match turn deadline timers: two
// non-terminal warnings and one terminal timeout per arming.
package scheduler

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"grandline-arena/internal/constants"
)

// Callbacks are invoked from timer goroutines. Each carries the match
// version the timers were armed for; the receiver must treat a stale
// version as a no-op, so cancellation is a fast path rather than the only
// defense against double-apply.
type Callbacks interface {
	OnWarning(matchID, participantID string, version uint64, remaining time.Duration)
	OnTimeout(matchID, participantID string, version uint64)
}

// Windows holds the deadline window and its warning marks. Production code
// uses Default; tests shrink it to milliseconds.
type Windows struct {
	Timeout       time.Duration
	FirstWarning  time.Duration
	SecondWarning time.Duration
}

func Default() Windows {
	return Windows{
		Timeout:       constants.TurnTimeout,
		FirstWarning:  constants.TurnWarningFirst,
		SecondWarning: constants.TurnWarningSecond,
	}
}

type arming struct {
	timers  []*time.Timer
	version uint64
}

type Scheduler struct {
	mu      sync.Mutex
	armed   map[string]*arming
	windows Windows
	cb      Callbacks
	logger  zerolog.Logger
}

func New(windows Windows, cb Callbacks, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		armed:   make(map[string]*arming),
		windows: windows,
		cb:      cb,
		logger:  logger,
	}
}

// Arm schedules the deadline and both warnings for the participant whose
// turn just started. A previous arming is replaced only when the requested
// version is newer; versions only grow within a match, so an arm arriving
// out of order for an older turn must not displace the live turn's timers.
func (s *Scheduler) Arm(matchID, participantID string, version uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.armed[matchID]; ok && prev.version >= version {
		return
	}
	s.cancelLocked(matchID)

	firstRemaining := s.windows.Timeout - s.windows.FirstWarning
	secondRemaining := s.windows.Timeout - s.windows.SecondWarning

	a := &arming{version: version}
	a.timers = append(a.timers,
		time.AfterFunc(s.windows.FirstWarning, func() {
			s.cb.OnWarning(matchID, participantID, version, firstRemaining)
		}),
		time.AfterFunc(s.windows.SecondWarning, func() {
			s.cb.OnWarning(matchID, participantID, version, secondRemaining)
		}),
		time.AfterFunc(s.windows.Timeout, func() {
			s.cb.OnTimeout(matchID, participantID, version)
		}),
	)
	s.armed[matchID] = a

	s.logger.Debug().
		Str("match_id", matchID).
		Str("participant_id", participantID).
		Uint64("version", version).
		Msg("turn deadline armed")
}

// Cancel stops all pending timers for the match. Must be called before a
// match is removed from the registry so no timer fires against a removed
// match.
func (s *Scheduler) Cancel(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(matchID)
}

func (s *Scheduler) cancelLocked(matchID string) {
	a, ok := s.armed[matchID]
	if !ok {
		return
	}
	for _, t := range a.timers {
		t.Stop()
	}
	delete(s.armed, matchID)

	s.logger.Debug().Str("match_id", matchID).Msg("turn deadline cancelled")
}

// CancelAll stops every pending timer; used on shutdown.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.armed {
		s.cancelLocked(id)
	}
}
