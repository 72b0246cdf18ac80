package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovision/kiosk-go/internal/conf"
	"github.com/agrovision/kiosk-go/internal/state"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []state.Event
}

func (r *recordingNotifier) Transition(event state.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingNotifier) recorded() []state.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]state.Event, len(r.events))
	copy(out, r.events)
	return out
}

func testSettings() conf.SessionSettings {
	return conf.SessionSettings{
		MaxDuration: 30 * time.Second,
		IdleTimeout: 15 * time.Second,
		MaxEntries:  4,
	}
}

func TestManager_StartNewSessionFiresNewScan(t *testing.T) {
	t.Parallel()

	n := &recordingNotifier{}
	m := NewManager(testSettings(), n, nil)

	id := m.StartNewSession()
	assert.NotEmpty(t, id)
	assert.Equal(t, []state.Event{state.NewScanRequested}, n.recorded())

	gotID, entries, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, id, gotID)
	assert.Zero(t, entries)
}

func TestManager_StartNewSessionReplacesExisting(t *testing.T) {
	t.Parallel()

	m := NewManager(testSettings(), &recordingNotifier{}, nil)
	first := m.StartNewSession()
	second := m.StartNewSession()
	assert.NotEqual(t, first, second)

	gotID, _, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, second, gotID)
}

func TestManager_AddEntryRules(t *testing.T) {
	t.Parallel()

	m := NewManager(testSettings(), &recordingNotifier{}, nil)

	assert.False(t, m.AddEntry(entry("a")), "no active session")

	m.StartNewSession()
	assert.True(t, m.AddEntry(entry("a")))
	assert.False(t, m.AddEntry(entry("a")), "duplicate rejected")

	for _, id := range []string{"b", "c", "d"} {
		require.True(t, m.AddEntry(entry(id)))
	}
	assert.False(t, m.AddEntry(entry("e")), "cap reached")
}

func TestManager_CompleteWithEntriesFiresMatchFound(t *testing.T) {
	t.Parallel()

	n := &recordingNotifier{}
	m := NewManager(testSettings(), n, nil)

	m.StartNewSession()
	require.True(t, m.AddEntry(entry("a")))

	entries := m.CompleteSession()
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].ID)
	assert.Equal(t, []state.Event{state.NewScanRequested, state.MatchFound}, n.recorded())

	_, _, ok := m.Current()
	assert.False(t, ok, "session cleared after completion")
}

func TestManager_CompleteEmptyFiresMatchNotFound(t *testing.T) {
	t.Parallel()

	n := &recordingNotifier{}
	m := NewManager(testSettings(), n, nil)

	m.StartNewSession()
	entries := m.CompleteSession()
	assert.Empty(t, entries)
	assert.Equal(t, []state.Event{state.NewScanRequested, state.MatchNotFound}, n.recorded())
}

func TestManager_CompleteWithoutSessionIsNil(t *testing.T) {
	t.Parallel()

	n := &recordingNotifier{}
	m := NewManager(testSettings(), n, nil)
	assert.Nil(t, m.CompleteSession())
	assert.Empty(t, n.recorded())
}

func TestManager_TickEndsIdleSession(t *testing.T) {
	t.Parallel()

	n := &recordingNotifier{}
	m := NewManager(testSettings(), n, nil)
	m.StartNewSession()

	m.Tick()
	_, _, ok := m.Current()
	assert.True(t, ok, "fresh session survives a tick")

	m.mu.Lock()
	m.timer.lastActivity = time.Now().Add(-16 * time.Second)
	m.mu.Unlock()

	m.Tick()
	_, _, ok = m.Current()
	assert.False(t, ok, "idle session force-ended")
	assert.Equal(t, []state.Event{state.NewScanRequested, state.IdleTimeout}, n.recorded())
}

func TestManager_TickEndsExpiredSession(t *testing.T) {
	t.Parallel()

	n := &recordingNotifier{}
	m := NewManager(testSettings(), n, nil)
	m.StartNewSession()
	m.MarkActivity()

	m.mu.Lock()
	m.timer.startedAt = time.Now().Add(-31 * time.Second)
	m.mu.Unlock()

	m.Tick()
	_, _, ok := m.Current()
	assert.False(t, ok)
	assert.Contains(t, n.recorded(), state.IdleTimeout)
}

func TestManager_ConfigureIgnoresNonPositive(t *testing.T) {
	t.Parallel()

	m := NewManager(testSettings(), &recordingNotifier{}, nil)
	m.Configure(0, -time.Second)

	m.mu.Lock()
	maxSession, idle := m.maxSession, m.idleTimeout
	m.mu.Unlock()
	assert.Equal(t, 30*time.Second, maxSession)
	assert.Equal(t, 15*time.Second, idle)

	m.Configure(time.Minute, 20*time.Second)
	m.mu.Lock()
	maxSession, idle = m.maxSession, m.idleTimeout
	m.mu.Unlock()
	assert.Equal(t, time.Minute, maxSession)
	assert.Equal(t, 20*time.Second, idle)
}

// Notifiers may call straight back into the manager; events fire after
// the lock is released so this must not deadlock.
func TestManager_NotifierMayReenter(t *testing.T) {
	t.Parallel()

	m := NewManager(testSettings(), nil, nil)
	reenter := &reentrantNotifier{}
	m.notifier = reenter
	reenter.manager = m

	done := make(chan struct{})
	go func() {
		m.StartNewSession()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notifier re-entry deadlocked the manager")
	}
}

type reentrantNotifier struct {
	manager *Manager
}

func (r *reentrantNotifier) Transition(event state.Event) {
	if event == state.NewScanRequested {
		r.manager.AddEntry(entry("reentrant"))
	}
}
