package datastore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovision/kiosk-go/internal/catalog"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "kiosk.db"))
	require.NoError(t, store.Open())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_SaveProductsUpserts(t *testing.T) {
	store := openTestStore(t)

	entries := []catalog.Entry{
		{ID: "neem", Name: "Neem Oil Spray", Crops: []string{"Tomato", "Chili"}},
		{ID: "copper", Name: "Copper Fungicide"},
	}
	require.NoError(t, store.SaveProducts(entries))

	// second save with a changed name must not duplicate
	entries[0].Name = "Neem Oil Spray v2"
	require.NoError(t, store.SaveProducts(entries))

	records, err := store.Products()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Copper Fungicide", records[0].Name)
	assert.Equal(t, "Neem Oil Spray v2", records[1].Name)
	assert.Equal(t, "Tomato,Chili", records[1].Crops)
}

func TestSQLiteStore_EventsSince(t *testing.T) {
	store := openTestStore(t)

	old := &ScanEvent{Kind: EventStateTransition, Timestamp: time.Now().Add(-time.Hour)}
	recent := &ScanEvent{Kind: EventScanResolved, SessionID: "s1", ProductID: "neem"}
	require.NoError(t, store.SaveEvent(old))
	require.NoError(t, store.SaveEvent(recent))

	events, err := store.EventsSince(time.Now().Add(-time.Minute))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EventScanResolved, events[0].Kind)
	assert.Equal(t, "s1", events[0].SessionID)
	assert.False(t, events[0].Timestamp.IsZero(), "timestamp stamped on save")
}

func TestSQLiteStore_NotOpen(t *testing.T) {
	t.Parallel()

	store := NewSQLiteStore("/tmp/never-opened.db")
	assert.Error(t, store.SaveEvent(&ScanEvent{Kind: EventScanResolved}))
	_, err := store.Products()
	assert.Error(t, err)
}

func TestSQLiteStore_EmptyPath(t *testing.T) {
	t.Parallel()

	assert.Error(t, NewSQLiteStore("").Open())
}

func TestMockStore_BehavesLikeStore(t *testing.T) {
	t.Parallel()

	var store Store = NewMockStore()
	require.NoError(t, store.Open())

	require.NoError(t, store.SaveProducts([]catalog.Entry{{ID: "a", Name: "Alpha"}}))
	records, err := store.Products()
	require.NoError(t, err)
	assert.Len(t, records, 1)

	require.NoError(t, store.SaveEvent(&ScanEvent{Kind: EventSessionSummary}))
	events, err := store.EventsSince(time.Time{})
	require.NoError(t, err)
	assert.Len(t, events, 1)
	require.NoError(t, store.Close())
}
