package datastore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/agrovision/kiosk-go/internal/catalog"
	"github.com/agrovision/kiosk-go/internal/errors"
	"github.com/agrovision/kiosk-go/internal/logging"
)

// SQLiteStore implements Store on a local sqlite file.
type SQLiteStore struct {
	path string
	db   *gorm.DB
}

// NewSQLiteStore builds a store for the given database path. Open must be
// called before use.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Open connects to the database and migrates the schema.
func (s *SQLiteStore) Open() error {
	if s.path == "" {
		return errors.NewStd("datastore path is empty")
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.New(fmt.Errorf("creating datastore directory: %w", err)).
				Component("datastore").
				Category(errors.CategoryDatabase).
				Context("path", s.path).
				Build()
		}
	}

	db, err := gorm.Open(sqlite.Open(s.path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return errors.New(fmt.Errorf("opening sqlite database: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("path", s.path).
			Build()
	}

	if err := db.AutoMigrate(&ProductRecord{}, &ScanEvent{}); err != nil {
		return errors.New(fmt.Errorf("migrating schema: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}

	s.db = db
	logging.ForService("datastore").Info("sqlite datastore open", "path", s.path)
	return nil
}

// Close releases the underlying connection.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveProducts upserts the catalog snapshot keyed by product id.
func (s *SQLiteStore) SaveProducts(entries []catalog.Entry) error {
	if err := s.ready(); err != nil {
		return err
	}
	for _, entry := range entries {
		record := recordFromEntry(entry)
		err := s.db.Where(ProductRecord{ProductID: record.ProductID}).
			Assign(record).
			FirstOrCreate(&ProductRecord{}).Error
		if err != nil {
			return errors.New(fmt.Errorf("upserting product: %w", err)).
				Component("datastore").
				Category(errors.CategoryDatabase).
				Context("product_id", record.ProductID).
				Build()
		}
	}
	return nil
}

// Products returns all stored products ordered by name.
func (s *SQLiteStore) Products() ([]ProductRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var records []ProductRecord
	if err := s.db.Order("name").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// SaveEvent appends one analytics event, stamping the time when unset.
func (s *SQLiteStore) SaveEvent(event *ScanEvent) error {
	if err := s.ready(); err != nil {
		return err
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := s.db.Create(event).Error; err != nil {
		return errors.New(fmt.Errorf("saving event: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("kind", event.Kind).
			Build()
	}
	return nil
}

// EventsSince returns events at or after since, oldest first.
func (s *SQLiteStore) EventsSince(since time.Time) ([]ScanEvent, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var events []ScanEvent
	err := s.db.Where("timestamp >= ?", since).Order("timestamp").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *SQLiteStore) ready() error {
	if s.db == nil {
		return errors.NewStd("datastore is not open")
	}
	return nil
}
