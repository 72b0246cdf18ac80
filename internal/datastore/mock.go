package datastore

import (
	"sync"
	"time"

	"github.com/agrovision/kiosk-go/internal/catalog"
)

// MockStore is an in-memory Store for tests and for running the kiosk
// with persistence disabled.
type MockStore struct {
	mu       sync.Mutex
	open     bool
	products map[string]ProductRecord
	events   []ScanEvent
	nextID   uint
}

// NewMockStore builds an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{products: make(map[string]ProductRecord)}
}

func (s *MockStore) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
	return nil
}

func (s *MockStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	return nil
}

func (s *MockStore) SaveProducts(entries []catalog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range entries {
		s.products[entry.ID] = recordFromEntry(entry)
	}
	return nil
}

func (s *MockStore) Products() ([]ProductRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ProductRecord, 0, len(s.products))
	for _, record := range s.products {
		out = append(out, record)
	}
	return out, nil
}

func (s *MockStore) SaveEvent(event *ScanEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	stored := *event
	stored.ID = s.nextID
	if stored.Timestamp.IsZero() {
		stored.Timestamp = time.Now()
	}
	s.events = append(s.events, stored)
	return nil
}

func (s *MockStore) EventsSince(since time.Time) ([]ScanEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ScanEvent
	for _, event := range s.events {
		if !event.Timestamp.Before(since) {
			out = append(out, event)
		}
	}
	return out, nil
}
