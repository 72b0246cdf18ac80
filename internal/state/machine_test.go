package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachine_InitialState(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	assert.Equal(t, Ready, m.Current())
}

func TestMachine_HappyPathScan(t *testing.T) {
	t.Parallel()

	m := NewMachine()

	m.Transition(ObjectDetected)
	assert.Equal(t, Scanning, m.Current())

	m.Transition(MatchFound)
	assert.Equal(t, ResultAuto, m.Current())

	m.Transition(ResultTimeout)
	assert.Equal(t, Ready, m.Current())
}

func TestMachine_UnknownNoteFlow(t *testing.T) {
	t.Parallel()

	m := NewMachine()

	m.Transition(ObjectDetected)
	m.Transition(MatchNotFound)
	assert.Equal(t, UnknownNote, m.Current())

	m.Transition(ObjectRemoved)
	assert.Equal(t, Ready, m.Current())
}

func TestMachine_IdleAlwaysWakes(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	m.Transition(IdleTimeout)
	require.Equal(t, Idle, m.Current())

	m.Transition(ActivityDetected)
	assert.Equal(t, Ready, m.Current())
}

func TestMachine_IllegalTransitionsAreSilent(t *testing.T) {
	t.Parallel()

	m := NewMachine()

	var notified int
	m.AddObserver(ObserverFunc(func(AppState) { notified++ }))

	var hooked int
	m.AddTransitionHook(func(AppState, AppState, Event) { hooked++ })

	// None of these is legal from READY.
	for _, ev := range []Event{MatchFound, MatchNotFound, ResultTimeout,
		ResumeRequested, ManualSelection, ObjectRemoved, ActivityDetected,
		NewScanRequested, PauseRequested} {
		m.Transition(ev)
		assert.Equal(t, Ready, m.Current(), "event %s must be ignored in READY", ev)
	}

	assert.Zero(t, notified, "illegal transitions must not notify observers")
	assert.Zero(t, hooked, "illegal transitions must not fire hooks")
}

func TestMachine_AllAbsentPairsAreIdentity(t *testing.T) {
	t.Parallel()

	states := []AppState{Ready, Scanning, ResultAuto, ResultManualNav, ResultPaused, UnknownNote, Idle}
	events := []Event{ObjectDetected, ObjectRemoved, NewScanRequested, MatchFound,
		MatchNotFound, ManualSelection, ResultTimeout, PauseRequested,
		ResumeRequested, IdleTimeout, ActivityDetected}

	for _, s := range states {
		for _, e := range events {
			if _, legal := rules[transitionKey{s, e}]; legal {
				continue
			}
			assert.Equal(t, s, NextState(s, e), "(%s, %s) must be identity", s, e)
		}
	}
}

func TestMachine_ObserversAndHookFireOncePerTransition(t *testing.T) {
	t.Parallel()

	m := NewMachine()

	var mu sync.Mutex
	var observed []AppState
	var hookFrom, hookTo []AppState
	var hookEvents []Event

	m.AddObserver(ObserverFunc(func(s AppState) {
		mu.Lock()
		observed = append(observed, s)
		mu.Unlock()
	}))
	m.AddTransitionHook(func(from, to AppState, ev Event) {
		mu.Lock()
		hookFrom = append(hookFrom, from)
		hookTo = append(hookTo, to)
		hookEvents = append(hookEvents, ev)
		mu.Unlock()
	})

	m.Transition(ObjectDetected)
	m.Transition(MatchFound)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []AppState{Scanning, ResultAuto}, observed)
	assert.Equal(t, []AppState{Ready, Scanning}, hookFrom)
	assert.Equal(t, []AppState{Scanning, ResultAuto}, hookTo)
	assert.Equal(t, []Event{ObjectDetected, MatchFound}, hookEvents)
}

func TestMachine_ObserverMutationDuringNotification(t *testing.T) {
	t.Parallel()

	m := NewMachine()

	var firstCalls int
	var firstID int
	firstID = m.AddObserver(ObserverFunc(func(AppState) {
		firstCalls++
		// Mutating the observer set mid-notification must be safe.
		m.RemoveObserver(firstID)
		m.AddObserver(ObserverFunc(func(AppState) {}))
	}))

	m.Transition(ObjectDetected)
	assert.Equal(t, 1, firstCalls)

	// The removed observer is not part of later rounds.
	m.Transition(MatchFound)
	assert.Equal(t, 1, firstCalls)
}

func TestMachine_RemoveObserverStopsNotifications(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	var calls int
	id := m.AddObserver(ObserverFunc(func(AppState) { calls++ }))

	m.Transition(ObjectDetected)
	m.RemoveObserver(id)
	m.Transition(MatchFound)

	assert.Equal(t, 1, calls)
}

func TestStateAndEventStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "READY", Ready.String())
	assert.Equal(t, "RESULT_MANUAL_NAV", ResultManualNav.String())
	assert.Equal(t, "OBJECT_DETECTED", ObjectDetected.String())
	assert.Equal(t, "ACTIVITY_DETECTED", ActivityDetected.String())
}
