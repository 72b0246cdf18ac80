package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionTimer_RejectsNonPositiveDurations(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct{ max, idle time.Duration }{
		{0, 15 * time.Second},
		{30 * time.Second, 0},
		{-time.Second, 15 * time.Second},
		{30 * time.Second, -time.Second},
	} {
		_, err := NewSessionTimer(tc.max, tc.idle)
		assert.Error(t, err, "max=%v idle=%v", tc.max, tc.idle)
	}
}

func TestSessionTimer_FreshTimerHasNoTimeouts(t *testing.T) {
	t.Parallel()

	timer, err := NewSessionTimer(30*time.Second, 15*time.Second)
	require.NoError(t, err)
	assert.False(t, timer.IsSessionExpired())
	assert.False(t, timer.IsIdleTimedOut())
}

func TestSessionTimer_IdleElapsesBeforeLifetime(t *testing.T) {
	t.Parallel()

	timer, err := NewSessionTimer(30*time.Second, 15*time.Second)
	require.NoError(t, err)

	// 16 seconds without activity
	timer.startedAt = time.Now().Add(-16 * time.Second)
	timer.lastActivity = time.Now().Add(-16 * time.Second)

	assert.True(t, timer.IsIdleTimedOut())
	assert.False(t, timer.IsSessionExpired())
}

func TestSessionTimer_MarkActivityResetsIdleOnly(t *testing.T) {
	t.Parallel()

	timer, err := NewSessionTimer(30*time.Second, 15*time.Second)
	require.NoError(t, err)

	timer.startedAt = time.Now().Add(-31 * time.Second)
	timer.lastActivity = time.Now().Add(-16 * time.Second)
	timer.MarkActivity()

	assert.False(t, timer.IsIdleTimedOut(), "activity resets the idle window")
	assert.True(t, timer.IsSessionExpired(), "lifetime is unaffected by activity")
}
