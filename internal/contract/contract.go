// Package contract provides interfaces and shared utilities for the triage CLI's internal architecture.
package contract

import (
	"context"
	"errors"
	"time"

	"github.com/triagehq/triage/schema"
)

// ErrIssueNotFound indicates an issue number that does not exist in the
// configured repository. Sources return it so callers can report a bad
// reference cleanly instead of a raw HTTP failure.
var ErrIssueNotFound = errors.New("issue not found")

// IssueSource defines the interface for fetching issues from a tracker.
// This allows the GitHub client to be mocked for testing.
type IssueSource interface {
	ListIssues(ctx context.Context, repo string, state string) ([]schema.Issue, error)
	GetIssue(ctx context.Context, repo string, number int) (*schema.Issue, error)
}

// StoreManager defines the interface for managing persistence stores.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetSnapshotStore() SnapshotStore
	GetRunStore() RunStore
}

// SnapshotStore defines the interface for issue snapshot storage.
type SnapshotStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (*schema.SnapshotStatus, error)
	Close() error
}

// RunStore defines the interface for triage run history storage.
type RunStore interface {
	BeginRun(repo string, startTime time.Time, configParams string) (int64, error)
	EndRun(runID int64, endTime time.Time, totalIssues int) error
	RecordIssueScores(runID int64, scoredAt time.Time, scores []schema.IssueScoreRecord) error
	GetStatus() (*schema.HistoryStatus, error)
	GetAllRuns() ([]schema.TriageRunRecord, error)
	GetAllIssueScores() ([]schema.IssueScoreRecord, error)
	Close() error
}
