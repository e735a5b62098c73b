package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	kind          string
	matchID       string
	participantID string
	version       uint64
}

type recorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recorder) OnWarning(matchID, participantID string, version uint64, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{"warning", matchID, participantID, version})
}

func (r *recorder) OnTimeout(matchID, participantID string, version uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{"timeout", matchID, participantID, version})
}

func (r *recorder) snapshot() []recordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedEvent(nil), r.events...)
}

func shortWindows() Windows {
	return Windows{
		Timeout:       50 * time.Millisecond,
		FirstWarning:  10 * time.Millisecond,
		SecondWarning: 30 * time.Millisecond,
	}
}

func TestArm_FiresWarningsThenTimeout(t *testing.T) {
	rec := &recorder{}
	s := New(shortWindows(), rec, zerolog.Nop())

	s.Arm("m1", "a", 1)

	assert.Eventually(t, func() bool {
		return len(rec.snapshot()) == 3
	}, time.Second, 5*time.Millisecond)

	events := rec.snapshot()
	require.Len(t, events, 3)
	assert.Equal(t, "warning", events[0].kind)
	assert.Equal(t, "warning", events[1].kind)
	assert.Equal(t, "timeout", events[2].kind)
	for _, ev := range events {
		assert.Equal(t, "m1", ev.matchID)
		assert.Equal(t, "a", ev.participantID)
		assert.Equal(t, uint64(1), ev.version)
	}
}

func TestCancel_StopsAllCallbacks(t *testing.T) {
	rec := &recorder{}
	s := New(shortWindows(), rec, zerolog.Nop())

	s.Arm("m1", "a", 1)
	s.Cancel("m1")

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestArm_ReplacesPreviousArming(t *testing.T) {
	rec := &recorder{}
	s := New(shortWindows(), rec, zerolog.Nop())

	s.Arm("m1", "a", 1)
	s.Arm("m1", "b", 2)

	assert.Eventually(t, func() bool {
		return len(rec.snapshot()) == 3
	}, time.Second, 5*time.Millisecond)

	// Only the second arming's callbacks may have fired.
	for _, ev := range rec.snapshot() {
		assert.Equal(t, "b", ev.participantID)
		assert.Equal(t, uint64(2), ev.version)
	}
}

func TestArm_OlderVersionDoesNotReplace(t *testing.T) {
	rec := &recorder{}
	s := New(shortWindows(), rec, zerolog.Nop())

	// The arm for turn 3 lands first; a delayed arm for turn 2 arrives
	// afterwards and must not displace the live turn's timers.
	s.Arm("m1", "b", 3)
	s.Arm("m1", "a", 2)

	assert.Eventually(t, func() bool {
		return len(rec.snapshot()) == 3
	}, time.Second, 5*time.Millisecond)

	for _, ev := range rec.snapshot() {
		assert.Equal(t, "b", ev.participantID)
		assert.Equal(t, uint64(3), ev.version)
	}
}

func TestArm_SameVersionKeepsExistingTimers(t *testing.T) {
	rec := &recorder{}
	s := New(shortWindows(), rec, zerolog.Nop())

	s.Arm("m1", "a", 1)
	s.Arm("m1", "a", 1)

	assert.Eventually(t, func() bool {
		return len(rec.snapshot()) == 3
	}, time.Second, 5*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.Len(t, rec.snapshot(), 3)
}

func TestArm_IndependentMatches(t *testing.T) {
	rec := &recorder{}
	s := New(shortWindows(), rec, zerolog.Nop())

	s.Arm("m1", "a", 1)
	s.Arm("m2", "c", 1)
	s.Cancel("m1")

	assert.Eventually(t, func() bool {
		return len(rec.snapshot()) == 3
	}, time.Second, 5*time.Millisecond)

	for _, ev := range rec.snapshot() {
		assert.Equal(t, "m2", ev.matchID)
	}
}

func TestCancelAll(t *testing.T) {
	rec := &recorder{}
	s := New(shortWindows(), rec, zerolog.Nop())

	s.Arm("m1", "a", 1)
	s.Arm("m2", "c", 1)
	s.CancelAll()

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestDefault_WindowOffsets(t *testing.T) {
	w := Default()

	assert.Equal(t, 5*time.Minute, w.Timeout)
	assert.Equal(t, 3*time.Minute, w.FirstWarning)
	assert.Equal(t, 4*time.Minute+30*time.Second, w.SecondWarning)
}
