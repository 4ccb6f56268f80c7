package iosnapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/triagehq/triage/schema"
)

func TestValidateTableName(t *testing.T) {
	valid := []string{"triage_snapshot", "_private", "t1"}
	for _, name := range valid {
		assert.NoError(t, validateTableName(name))
	}

	invalid := []string{"", "1table", "drop;table", "name-with-dash", "name with space"}
	for _, name := range invalid {
		assert.Error(t, validateTableName(name), "expected %q to be rejected", name)
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`triage_runs`", quoteTableName("triage_runs", schema.MySQLBackend))
	assert.Equal(t, `"triage_runs"`, quoteTableName("triage_runs", schema.PostgreSQLBackend))
	assert.Equal(t, `"triage_runs"`, quoteTableName("triage_runs", schema.SQLiteBackend))
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	// SQLite stores text, other backends keep the native time
	assert.Equal(t, ts.Format(time.RFC3339Nano), formatTime(ts, schema.SQLiteBackend))
	assert.Equal(t, ts, formatTime(ts, schema.MySQLBackend))
	assert.Equal(t, ts, formatTime(ts, schema.PostgreSQLBackend))
}

func TestClearSnapshotNoneBackend(t *testing.T) {
	assert.NoError(t, ClearSnapshot(schema.NoneBackend, "", ""))
}

func TestClearHistoryNoneBackend(t *testing.T) {
	assert.NoError(t, ClearHistory(schema.NoneBackend, "", ""))
}

func TestClearSnapshotSQLiteRequiresPath(t *testing.T) {
	assert.Error(t, ClearSnapshot(schema.SQLiteBackend, "", ""))
}

func TestClearHistorySQLiteMissingFile(t *testing.T) {
	// Removing a file that does not exist is not an error
	assert.NoError(t, ClearHistory(schema.SQLiteBackend, t.TempDir()+"/nope.db", ""))
}
