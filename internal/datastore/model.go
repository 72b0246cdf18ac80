package datastore

import "time"

// ProductRecord is a persisted catalog entry. Crops and pests are stored
// as comma-joined strings to keep the schema flat.
type ProductRecord struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID string `gorm:"uniqueIndex;size:64"`
	Name      string `gorm:"index;size:128"`
	Company   string `gorm:"size:128"`
	Crops     string
	Pests     string
	Usage     string
	Warnings  string
	UpdatedAt time.Time
}

// ScanEvent is one persisted analytics event: a state transition, a scan
// outcome, or a session summary.
type ScanEvent struct {
	ID        uint      `gorm:"primaryKey"`
	Timestamp time.Time `gorm:"index"`
	Kind      string    `gorm:"index;size:32"`
	SessionID string    `gorm:"index;size:64"`
	ProductID string    `gorm:"size:64"`
	Detail    string
}

// Event kinds recorded by the pipeline.
const (
	EventStateTransition = "state_transition"
	EventScanResolved    = "scan_resolved"
	EventSessionSummary  = "session_summary"
)
