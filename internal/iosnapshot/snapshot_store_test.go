package iosnapshot

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/triagehq/triage/schema"
)

func TestSnapshotStore_NoneBackend(t *testing.T) {
	store, err := NewSnapshotStore(snapshotTable, schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// Get should report a miss for NoneBackend
	_, _, _, err = store.Get("some-key")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	// Set is a no-op
	err = store.Set("some-key", []byte("value"), 1, time.Now().Unix())
	assert.NoError(t, err)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	err = store.Close()
	assert.NoError(t, err)
}

func TestSnapshotStore_SQLite(t *testing.T) {
	store, err := NewSnapshotStore(snapshotTable, schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	ts := time.Now().Unix()
	err = store.Set("repo-key", []byte(`{"issues":[]}`), 1, ts)
	require.NoError(t, err)

	value, version, gotTs, err := store.Get("repo-key")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"issues":[]}`), value)
	assert.Equal(t, 1, version)
	assert.Equal(t, ts, gotTs)
}

func TestSnapshotStore_Upsert(t *testing.T) {
	store, err := NewSnapshotStore(snapshotTable, schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Set("key", []byte("old"), 1, 100))
	require.NoError(t, store.Set("key", []byte("new"), 2, 200))

	value, version, ts, err := store.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), value)
	assert.Equal(t, 2, version)
	assert.Equal(t, int64(200), ts)
}

func TestSnapshotStore_MissingKey(t *testing.T) {
	store, err := NewSnapshotStore(snapshotTable, schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, _, _, err = store.Get("never-set")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSnapshotStore_GetStatus(t *testing.T) {
	store, err := NewSnapshotStore(snapshotTable, schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Empty store
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalEntries)

	// Entries with distinct timestamps
	require.NoError(t, store.Set("a", []byte("1"), 1, 100))
	require.NoError(t, store.Set("b", []byte("2"), 1, 200))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalEntries)
	assert.Equal(t, time.Unix(200, 0), status.LastEntryTime)
	assert.Equal(t, time.Unix(100, 0), status.OldestEntryTime)
	assert.Greater(t, status.TableSizeBytes, int64(0))
}

func TestSnapshotStore_InvalidTableName(t *testing.T) {
	_, err := NewSnapshotStore("bad;name", schema.SQLiteBackend, ":memory:")
	assert.Error(t, err)
}

func TestSnapshotStore_UnsupportedBackend(t *testing.T) {
	_, err := NewSnapshotStore(snapshotTable, schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}
