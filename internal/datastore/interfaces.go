// Package datastore persists catalog products and scan analytics. The
// pipeline never blocks on it: every write is submitted through the
// background I/O lane by the caller.
package datastore

import (
	"strings"
	"time"

	"github.com/agrovision/kiosk-go/internal/catalog"
)

// Store is the persistence interface the kiosk core depends on.
type Store interface {
	Open() error
	Close() error

	// SaveProducts upserts the catalog snapshot.
	SaveProducts(entries []catalog.Entry) error
	// Products returns all stored products ordered by name.
	Products() ([]ProductRecord, error)

	// SaveEvent appends one analytics event.
	SaveEvent(event *ScanEvent) error
	// EventsSince returns events at or after the given time, oldest first.
	EventsSince(since time.Time) ([]ScanEvent, error)
}

// recordFromEntry flattens a catalog entry into its persisted form.
func recordFromEntry(entry catalog.Entry) ProductRecord {
	return ProductRecord{
		ProductID: entry.ID,
		Name:      entry.Name,
		Company:   entry.Company,
		Crops:     strings.Join(entry.Crops, ","),
		Pests:     strings.Join(entry.Pests, ","),
		Usage:     entry.Usage,
		Warnings:  entry.Warnings,
	}
}
