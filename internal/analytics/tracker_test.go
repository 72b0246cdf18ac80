package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovision/kiosk-go/internal/datastore"
	"github.com/agrovision/kiosk-go/internal/taskqueue"
)

func newTestTracker(t *testing.T, minInterval time.Duration) (*Tracker, *datastore.MockStore) {
	t.Helper()
	store := datastore.NewMockStore()
	lane := taskqueue.NewLane("io", 20, taskqueue.DropNewest, nil)
	t.Cleanup(func() { _ = lane.Shutdown(time.Second) })
	return NewTracker(store, lane, nil, minInterval), store
}

func waitForEvents(t *testing.T, store *datastore.MockStore, want int) []datastore.ScanEvent {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		events, err := store.EventsSince(time.Time{})
		require.NoError(t, err)
		if len(events) >= want {
			return events
		}
		select {
		case <-deadline:
			t.Fatalf("expected %d events, got %d", want, len(events))
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestTracker_TransitionPersisted(t *testing.T) {
	t.Parallel()

	tracker, store := newTestTracker(t, time.Minute)
	tracker.TrackTransition("READY", "SCANNING", "OBJECT_DETECTED")

	events := waitForEvents(t, store, 1)
	assert.Equal(t, datastore.EventStateTransition, events[0].Kind)
	assert.Equal(t, "READY>SCANNING:OBJECT_DETECTED", events[0].Detail)
}

func TestTracker_RateLimitsRepeatedKeys(t *testing.T) {
	t.Parallel()

	tracker, store := newTestTracker(t, time.Minute)
	for i := 0; i < 5; i++ {
		tracker.TrackTransition("READY", "SCANNING", "OBJECT_DETECTED")
	}
	tracker.TrackTransition("SCANNING", "READY", "OBJECT_REMOVED")

	events := waitForEvents(t, store, 2)
	assert.Len(t, events, 2, "repeats of the same transition are suppressed")
}

func TestTracker_RateLimitExpires(t *testing.T) {
	t.Parallel()

	tracker, store := newTestTracker(t, 20*time.Millisecond)
	tracker.TrackScanResolved("s1", "neem", "exact")
	time.Sleep(30 * time.Millisecond)
	tracker.TrackScanResolved("s1", "neem", "exact")

	waitForEvents(t, store, 2)
}

func TestTracker_SessionSummaryNeverRateLimited(t *testing.T) {
	t.Parallel()

	tracker, store := newTestTracker(t, time.Minute)
	tracker.TrackSessionSummary("s1", []string{"neem", "copper"})
	tracker.TrackSessionSummary("s1", []string{"neem"})

	events := waitForEvents(t, store, 2)
	assert.Equal(t, "neem,copper", events[0].Detail)
	assert.Equal(t, datastore.EventSessionSummary, events[1].Kind)
}
