package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/triagehq/triage/schema"
)

// mockRunStore records run lifecycle calls in memory.
type mockRunStore struct {
	nextRunID int64
	begun     []string
	ended     []int64
	records   []schema.IssueScoreRecord
	beginErr  error
}

func (m *mockRunStore) BeginRun(repo string, _ time.Time, _ string) (int64, error) {
	if m.beginErr != nil {
		return 0, m.beginErr
	}
	m.nextRunID++
	m.begun = append(m.begun, repo)
	return m.nextRunID, nil
}

func (m *mockRunStore) EndRun(runID int64, _ time.Time, _ int) error {
	m.ended = append(m.ended, runID)
	return nil
}

func (m *mockRunStore) RecordIssueScores(_ int64, _ time.Time, scores []schema.IssueScoreRecord) error {
	m.records = append(m.records, scores...)
	return nil
}

func (m *mockRunStore) GetStatus() (*schema.HistoryStatus, error) {
	return &schema.HistoryStatus{Backend: "mock", Connected: true}, nil
}

func (m *mockRunStore) GetAllRuns() ([]schema.TriageRunRecord, error)        { return nil, nil }
func (m *mockRunStore) GetAllIssueScores() ([]schema.IssueScoreRecord, error) { return nil, nil }
func (m *mockRunStore) Close() error                                          { return nil }

func TestScoreIssuesWorkerPool(t *testing.T) {
	cfg := testConfig()
	cfg.Workers = 4
	now := time.Now()

	issues := make([]schema.Issue, 0, 50)
	for i := 1; i <= 50; i++ {
		issues = append(issues, schema.Issue{
			Number:    i,
			Title:     "issue",
			Labels:    []string{"bug"},
			State:     "open",
			CreatedAt: now.Add(-time.Duration(i) * 24 * time.Hour),
			UpdatedAt: now,
		})
	}

	scored := scoreIssues(cfg, issues, now)
	require.Len(t, scored, 50)

	// Every issue is present exactly once and scored identically to the
	// sequential path.
	seen := make(map[int]struct{})
	for _, si := range scored {
		_, dup := seen[si.Issue.Number]
		assert.False(t, dup, "issue %d scored twice", si.Issue.Number)
		seen[si.Issue.Number] = struct{}{}

		expected := scoreIssue(si.Issue, cfg, now)
		assert.Equal(t, expected, si)
	}
}

func TestScoreIssuesEmpty(t *testing.T) {
	cfg := testConfig()
	scored := scoreIssues(cfg, nil, time.Now())
	assert.Empty(t, scored)
}

func TestRunScoredAnalysisTracking(t *testing.T) {
	cfg := testConfig()
	now := time.Now()
	store := &mockRunStore{}
	mgr := &mockStoreManager{runs: store}

	scored := runScoredAnalysis(cfg, mgr, sampleIssues(now), now)
	require.Len(t, scored, 3)

	require.Len(t, store.begun, 1)
	assert.Equal(t, cfg.Repository, store.begun[0])
	assert.Equal(t, []int64{1}, store.ended)
	require.Len(t, store.records, 3)
	for _, rec := range store.records {
		assert.Equal(t, int64(1), rec.RunID)
		assert.NotEmpty(t, rec.Tier)
	}
}

func TestRunScoredAnalysisTrackingDegrades(t *testing.T) {
	cfg := testConfig()
	now := time.Now()
	store := &mockRunStore{beginErr: assert.AnError}
	mgr := &mockStoreManager{runs: store}

	// A failing run store must not fail scoring.
	scored := runScoredAnalysis(cfg, mgr, sampleIssues(now), now)
	assert.Len(t, scored, 3)
	assert.Empty(t, store.records)
}

func TestRunScoredAnalysisNoStore(t *testing.T) {
	cfg := testConfig()
	now := time.Now()
	scored := runScoredAnalysis(cfg, &mockStoreManager{}, sampleIssues(now), now)
	assert.Len(t, scored, 3)
}
