// Package analytics records what the kiosk did: state transitions, scan
// resolutions, and session summaries. Events are rate limited per key and
// persisted off the hot path through the background I/O lane.
package analytics

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/agrovision/kiosk-go/internal/datastore"
	"github.com/agrovision/kiosk-go/internal/logging"
	"github.com/agrovision/kiosk-go/internal/mqtt"
	"github.com/agrovision/kiosk-go/internal/taskqueue"
)

// DefaultMinInterval is the minimum gap between two events with the same
// key. Detection flicker can otherwise produce hundreds of identical
// transition events per minute.
const DefaultMinInterval = 5 * time.Second

// Tracker records kiosk events with per-key rate limiting.
type Tracker struct {
	mu          sync.Mutex
	lastSent    map[string]time.Time
	minInterval time.Duration

	store     datastore.Store
	ioLane    *taskqueue.Lane
	publisher *mqtt.Publisher
	log       *slog.Logger
}

// NewTracker builds a tracker. store and ioLane are required; publisher
// may be nil when MQTT is disabled; a non-positive minInterval falls back
// to DefaultMinInterval.
func NewTracker(store datastore.Store, ioLane *taskqueue.Lane, publisher *mqtt.Publisher, minInterval time.Duration) *Tracker {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	return &Tracker{
		lastSent:    make(map[string]time.Time),
		minInterval: minInterval,
		store:       store,
		ioLane:      ioLane,
		publisher:   publisher,
		log:         logging.ForService("analytics"),
	}
}

// TrackTransition records a state change.
func (t *Tracker) TrackTransition(from, to, event string) {
	key := "transition:" + from + ">" + to
	if !t.admit(key) {
		return
	}
	t.persist(&datastore.ScanEvent{
		Kind:   datastore.EventStateTransition,
		Detail: from + ">" + to + ":" + event,
	})
	if t.publisher != nil {
		t.publisher.PublishTransition(mqtt.TransitionMessage{
			Timestamp: time.Now(),
			From:      from,
			To:        to,
			Event:     event,
		})
	}
}

// TrackScanResolved records one resolved scan within a session.
func (t *Tracker) TrackScanResolved(sessionID, productID, detail string) {
	if !t.admit("scan:" + sessionID + ":" + productID) {
		return
	}
	t.persist(&datastore.ScanEvent{
		Kind:      datastore.EventScanResolved,
		SessionID: sessionID,
		ProductID: productID,
		Detail:    detail,
	})
}

// TrackSessionSummary records a completed session. Summaries are never
// rate limited; each session ends exactly once.
func (t *Tracker) TrackSessionSummary(sessionID string, productIDs []string) {
	t.persist(&datastore.ScanEvent{
		Kind:      datastore.EventSessionSummary,
		SessionID: sessionID,
		Detail:    strings.Join(productIDs, ","),
	})
	if t.publisher != nil {
		t.publisher.PublishScanSummary(mqtt.ScanSummaryMessage{
			Timestamp: time.Now(),
			SessionID: sessionID,
			Products:  productIDs,
		})
	}
}

// admit reports whether an event with the given key passes the rate
// limit, recording it when it does.
func (t *Tracker) admit(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	if last, seen := t.lastSent[key]; seen && now.Sub(last) < t.minInterval {
		return false
	}
	t.lastSent[key] = now
	return true
}

// persist hands the write to the I/O lane; an overloaded lane drops the
// event rather than stalling the caller.
func (t *Tracker) persist(event *datastore.ScanEvent) {
	event.Timestamp = time.Now()
	accepted := t.ioLane.Submit(taskqueue.Task{
		Name: "analytics-save",
		Run: func() {
			if err := t.store.SaveEvent(event); err != nil {
				t.log.Warn("saving analytics event", "kind", event.Kind, "error", err)
			}
		},
	})
	if !accepted {
		t.log.Debug("analytics event dropped, io lane full", "kind", event.Kind)
	}
}
