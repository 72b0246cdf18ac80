package state

import (
	"log/slog"
	"sync"

	"github.com/agrovision/kiosk-go/internal/logging"
)

// Observer receives the new state after every accepted transition.
// Observers must not block and must not call back into the machine
// synchronously; this is a usage contract, not enforced at runtime.
type Observer interface {
	OnStateChanged(newState AppState)
}

// ObserverFunc adapts a func to the Observer interface.
type ObserverFunc func(newState AppState)

// OnStateChanged implements Observer.
func (f ObserverFunc) OnStateChanged(newState AppState) {
	f(newState)
}

// TransitionHook is invoked exactly once for every accepted transition,
// before observers are notified. It exists for audit and analytics sinks
// that need the triggering event, not just the new state.
type TransitionHook func(from, to AppState, event Event)

// Machine holds the current AppState, applies the static rules table, and
// notifies observers. It is the only component allowed to mutate the state.
//
// All mutation happens under one internal lock; hooks and observer
// notifications are delivered strictly after the lock is released so an
// observer can safely interact with components that call back into the
// machine.
type Machine struct {
	mu         sync.Mutex
	current    AppState
	observers  map[int]Observer
	nextObsID  int
	hooks      []TransitionHook
	log        *slog.Logger
}

// NewMachine creates a machine in the Ready state.
func NewMachine() *Machine {
	return &Machine{
		current:   Ready,
		observers: make(map[int]Observer),
		log:       logging.ForService("state-machine"),
	}
}

// Current returns the current state.
func (m *Machine) Current() AppState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// AddObserver registers an observer for state changes and returns a handle
// for RemoveObserver.
func (m *Machine) AddObserver(o Observer) int {
	if o == nil {
		return -1
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextObsID
	m.nextObsID++
	m.observers[id] = o
	return id
}

// RemoveObserver unregisters the observer with the given handle.
func (m *Machine) RemoveObserver(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.observers, id)
}

// AddTransitionHook registers an audit hook fired on every accepted
// transition.
func (m *Machine) AddTransitionHook(h TransitionHook) {
	if h == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, h)
}

// Transition applies event to the current state. Events absent from the
// rules table, or mapping to the same state, are silent no-ops: no log, no
// hook, no notification.
func (m *Machine) Transition(event Event) {
	m.mu.Lock()

	from := m.current
	next := NextState(from, event)
	if next == from {
		m.mu.Unlock()
		return
	}
	m.current = next

	// Snapshot under lock so late (un)registrations cannot corrupt or skip
	// this notification round.
	observers := make([]Observer, 0, len(m.observers))
	for _, o := range m.observers {
		observers = append(observers, o)
	}
	hooks := make([]TransitionHook, len(m.hooks))
	copy(hooks, m.hooks)
	m.mu.Unlock()

	m.log.Info("state transition", "from", from, "to", next, "event", event)

	for _, h := range hooks {
		h(from, next, event)
	}
	for _, o := range observers {
		o.OnStateChanged(next)
	}
}
