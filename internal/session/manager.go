package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/agrovision/kiosk-go/internal/catalog"
	"github.com/agrovision/kiosk-go/internal/conf"
	"github.com/agrovision/kiosk-go/internal/logging"
	"github.com/agrovision/kiosk-go/internal/observability/metrics"
	"github.com/agrovision/kiosk-go/internal/state"
)

// Notifier receives the state machine events the session lifecycle emits.
// *state.Machine satisfies it.
type Notifier interface {
	Transition(event state.Event)
}

// Manager is the single authority over the current scan session. All
// session mutation goes through it under one lock; state machine events
// are always fired after the lock is released so observers can call back
// into the manager without deadlocking.
type Manager struct {
	mu          sync.Mutex
	current     *ScanSession
	timer       *SessionTimer
	maxSession  time.Duration
	idleTimeout time.Duration
	maxEntries  int

	notifier Notifier
	metrics  *metrics.SessionMetrics
	log      *slog.Logger
}

// NewManager builds a session manager. Invalid settings have already been
// normalized by the config layer; metrics may be nil.
func NewManager(settings conf.SessionSettings, notifier Notifier, m *metrics.SessionMetrics) *Manager {
	return &Manager{
		maxSession:  settings.MaxDuration,
		idleTimeout: settings.IdleTimeout,
		maxEntries:  settings.MaxEntries,
		notifier:    notifier,
		metrics:     m,
		log:         logging.ForService("session"),
	}
}

// Configure updates the session durations at runtime. Non-positive values
// are ignored with a warning and the previous values are retained.
func (m *Manager) Configure(maxSession, idleTimeout time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if maxSession > 0 {
		m.maxSession = maxSession
	} else {
		m.log.Warn("ignoring non-positive max session duration", "value", maxSession)
	}
	if idleTimeout > 0 {
		m.idleTimeout = idleTimeout
	} else {
		m.log.Warn("ignoring non-positive idle timeout", "value", idleTimeout)
	}
}

// StartNewSession force-ends any existing session and begins a fresh one,
// then requests a new scan from the state machine.
func (m *Manager) StartNewSession() string {
	m.mu.Lock()
	if m.current != nil {
		m.endLocked("replaced")
	}
	m.current = NewScanSession(m.maxEntries)
	timer, err := NewSessionTimer(m.maxSession, m.idleTimeout)
	if err != nil {
		// Configure rejects non-positive durations, so this only fires
		// with a zero-value Manager
		timer, _ = NewSessionTimer(30*time.Second, 15*time.Second)
	}
	m.timer = timer
	id := m.current.ID()
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.SessionsStarted.Inc()
	}
	m.log.Info("session started", "session_id", id)
	m.notify(state.NewScanRequested)
	return id
}

// AddEntry records an identified product in the current session. It
// reports false when no session is active, the entry is a duplicate, or
// the session is full. A successful add counts as activity.
func (m *Manager) AddEntry(entry catalog.Entry) bool {
	m.mu.Lock()
	if m.current == nil || !m.current.IsActive() {
		m.mu.Unlock()
		return false
	}
	added := m.current.Add(entry)
	if added {
		m.timer.MarkActivity()
	}
	id := m.current.ID()
	count := m.current.Len()
	m.mu.Unlock()

	if added {
		m.log.Info("entry added to session",
			"session_id", id,
			"entry_id", entry.ID,
			"entries", count)
	}
	return added
}

// MarkActivity resets the session idle window without adding an entry.
func (m *Manager) MarkActivity() {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.MarkActivity()
	}
	m.mu.Unlock()
}

// Tick evaluates the session timers. When the session lifetime or idle
// window has elapsed the session is force-ended and an idle timeout event
// is emitted. Call it from the frame loop.
func (m *Manager) Tick() {
	m.mu.Lock()
	if m.current == nil || m.timer == nil {
		m.mu.Unlock()
		return
	}
	expired := m.timer.IsSessionExpired()
	idle := m.timer.IsIdleTimedOut()
	if !expired && !idle {
		m.mu.Unlock()
		return
	}
	id := m.current.ID()
	m.endLocked("timeout")
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.SessionsTimedOut.Inc()
	}
	m.log.Info("session timed out",
		"session_id", id,
		"expired", expired,
		"idle", idle)
	m.notify(state.IdleTimeout)
}

// CompleteSession ends the current session and reports its entries. A
// session with at least one entry emits a match-found event, an empty one
// emits match-not-found. Returns nil entries when no session was active.
func (m *Manager) CompleteSession() []catalog.Entry {
	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return nil
	}
	entries := m.current.Entries()
	id := m.current.ID()
	m.endLocked(outcomeFor(len(entries)))
	m.mu.Unlock()

	m.log.Info("session completed", "session_id", id, "entries", len(entries))
	if len(entries) > 0 {
		m.notify(state.MatchFound)
	} else {
		m.notify(state.MatchNotFound)
	}
	return entries
}

// Current returns the active session id and entry count, or ok=false when
// no session is active.
func (m *Manager) Current() (id string, entries int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil || !m.current.IsActive() {
		return "", 0, false
	}
	return m.current.ID(), m.current.Len(), true
}

// endLocked finalizes the current session. Caller holds the lock.
func (m *Manager) endLocked(outcome string) {
	if m.current == nil {
		return
	}
	m.current.End()
	if m.metrics != nil {
		m.metrics.SessionsCompleted.WithLabelValues(outcome).Inc()
		m.metrics.SessionDuration.Observe(time.Since(m.current.StartedAt()).Seconds())
	}
	m.current = nil
	m.timer = nil
}

func (m *Manager) notify(event state.Event) {
	if m.notifier != nil {
		m.notifier.Transition(event)
	}
}

func outcomeFor(entries int) string {
	if entries > 0 {
		return "matched"
	}
	return "empty"
}
