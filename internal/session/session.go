// Package session owns the lifecycle of one physical scanning visit: a
// bounded list of identified products gathered while an object sits in
// front of the camera, plus the timers that end the visit.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrovision/kiosk-go/internal/catalog"
)

// MaxEntries is the default cap on products per session.
const MaxEntries = 4

// ScanSession collects the catalog entries identified during one visit.
// It is a plain value guarded by its owning Manager; it does not lock.
type ScanSession struct {
	id         string
	startedAt  time.Time
	maxEntries int
	entries    []catalog.Entry
	active     bool
}

// NewScanSession starts a fresh active session. A non-positive maxEntries
// falls back to MaxEntries.
func NewScanSession(maxEntries int) *ScanSession {
	if maxEntries <= 0 {
		maxEntries = MaxEntries
	}
	return &ScanSession{
		id:         uuid.NewString(),
		startedAt:  time.Now(),
		maxEntries: maxEntries,
		active:     true,
	}
}

// ID returns the session id.
func (s *ScanSession) ID() string { return s.id }

// StartedAt returns the session start time.
func (s *ScanSession) StartedAt() time.Time { return s.startedAt }

// IsActive reports whether the session still accepts entries.
func (s *ScanSession) IsActive() bool { return s.active }

// Add appends a catalog entry. It reports false when the session is
// inactive, the entry id is already present, or the cap is reached.
func (s *ScanSession) Add(entry catalog.Entry) bool {
	if !s.active || len(s.entries) >= s.maxEntries {
		return false
	}
	for _, e := range s.entries {
		if e.ID == entry.ID {
			return false
		}
	}
	s.entries = append(s.entries, entry)
	return true
}

// End marks the session inactive. Further Add calls are rejected.
func (s *ScanSession) End() { s.active = false }

// Len returns the number of collected entries.
func (s *ScanSession) Len() int { return len(s.entries) }

// Entries returns a copy of the collected entries in scan order.
func (s *ScanSession) Entries() []catalog.Entry {
	out := make([]catalog.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
