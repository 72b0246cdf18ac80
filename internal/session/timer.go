package session

import (
	"fmt"
	"time"

	"github.com/agrovision/kiosk-go/internal/errors"
)

// SessionTimer tracks how long a session has been alive and how long
// since the last activity. It is a pure polled evaluator: nothing fires,
// callers ask. Durations are measured against the monotonic clock reading
// carried by time.Time, so wall clock adjustments cannot end a session.
// Not safe for concurrent use; the Manager serializes access.
type SessionTimer struct {
	maxSession   time.Duration
	idleTimeout  time.Duration
	startedAt    time.Time
	lastActivity time.Time
}

// NewSessionTimer starts a timer for a session beginning now. Both
// durations must be positive.
func NewSessionTimer(maxSession, idleTimeout time.Duration) (*SessionTimer, error) {
	if maxSession <= 0 || idleTimeout <= 0 {
		return nil, errors.New(fmt.Errorf("timer durations must be positive: max=%v idle=%v", maxSession, idleTimeout)).
			Component("session").
			Category(errors.CategoryValidation).
			Build()
	}
	now := time.Now()
	return &SessionTimer{
		maxSession:   maxSession,
		idleTimeout:  idleTimeout,
		startedAt:    now,
		lastActivity: now,
	}, nil
}

// MarkActivity records that the session saw activity now.
func (t *SessionTimer) MarkActivity() {
	t.lastActivity = time.Now()
}

// IsSessionExpired reports whether the session has outlived its maximum
// duration.
func (t *SessionTimer) IsSessionExpired() bool {
	return time.Since(t.startedAt) >= t.maxSession
}

// IsIdleTimedOut reports whether the idle window elapsed with no activity.
func (t *SessionTimer) IsIdleTimedOut() bool {
	return time.Since(t.lastActivity) >= t.idleTimeout
}
