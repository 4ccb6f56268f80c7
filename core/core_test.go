package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/triagehq/triage/internal/contract"
	"github.com/triagehq/triage/schema"
)

// mockSource is an in-memory IssueSource that counts fetches.
type mockSource struct {
	issues    []schema.Issue
	listCalls int
}

func (m *mockSource) ListIssues(_ context.Context, _ string, _ string) ([]schema.Issue, error) {
	m.listCalls++
	return m.issues, nil
}

func (m *mockSource) GetIssue(_ context.Context, _ string, number int) (*schema.Issue, error) {
	for _, issue := range m.issues {
		if issue.Number == number {
			return &issue, nil
		}
	}
	return nil, contract.ErrIssueNotFound
}

// mockSnapshotStore is an in-memory SnapshotStore.
type mockSnapshotStore struct {
	data      map[string][]byte
	versions  map[string]int
	times     map[string]int64
	setCalls  int
	failReads bool
}

func newMockSnapshotStore() *mockSnapshotStore {
	return &mockSnapshotStore{
		data:     make(map[string][]byte),
		versions: make(map[string]int),
		times:    make(map[string]int64),
	}
}

func (m *mockSnapshotStore) Get(key string) ([]byte, int, int64, error) {
	if m.failReads {
		return nil, 0, 0, assert.AnError
	}
	data, ok := m.data[key]
	if !ok {
		return nil, 0, 0, assert.AnError
	}
	return data, m.versions[key], m.times[key], nil
}

func (m *mockSnapshotStore) Set(key string, value []byte, version int, timestamp int64) error {
	m.setCalls++
	m.data[key] = value
	m.versions[key] = version
	m.times[key] = timestamp
	return nil
}

func (m *mockSnapshotStore) GetStatus() (*schema.SnapshotStatus, error) {
	return &schema.SnapshotStatus{Backend: "mock", Connected: true, TotalEntries: len(m.data)}, nil
}

func (m *mockSnapshotStore) Close() error { return nil }

// mockStoreManager wires the mock stores together.
type mockStoreManager struct {
	snapshot contract.SnapshotStore
	runs     contract.RunStore
}

func (m *mockStoreManager) GetSnapshotStore() contract.SnapshotStore { return m.snapshot }
func (m *mockStoreManager) GetRunStore() contract.RunStore           { return m.runs }

func sampleIssues(now time.Time) []schema.Issue {
	return []schema.Issue{
		{
			Number: 101, Title: "Bug: scheduler NaN", Labels: []string{"bug"},
			State: "open", CommentCount: 12,
			CreatedAt: now.Add(-5 * 24 * time.Hour), UpdatedAt: now,
		},
		{
			Number: 102, Title: "Add CUDA graph support", Labels: []string{"enhancement"},
			State: "open", CreatedAt: now.Add(-40 * 24 * time.Hour), UpdatedAt: now.Add(-35 * 24 * time.Hour),
		},
		{
			Number: 103, Title: "Docs typo", Labels: []string{"documentation"},
			State: "open", Assignee: "octocat", CreatedAt: now.Add(-2 * 24 * time.Hour), UpdatedAt: now,
		},
	}
}

func TestGetPrioritizedResults(t *testing.T) {
	now := time.Now()
	cfg := testConfig()
	src := &mockSource{issues: sampleIssues(now)}
	mgr := &mockStoreManager{}

	results, err := GetPrioritizedResults(context.Background(), cfg, src, mgr)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Descending by priority score.
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].PriorityScore, results[i].PriorityScore)
	}
	// The bug with a high-bucket label outranks the rest.
	assert.Equal(t, 101, results[0].Issue.Number)
}

func TestGetListResultsNewestFirst(t *testing.T) {
	now := time.Now()
	cfg := testConfig()
	src := &mockSource{issues: sampleIssues(now)}

	results, err := GetListResults(context.Background(), cfg, src, &mockStoreManager{})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 103, results[0].Issue.Number)
	assert.Equal(t, 101, results[1].Issue.Number)
	assert.Equal(t, 102, results[2].Issue.Number)
}

func TestGetAssignedResults(t *testing.T) {
	now := time.Now()
	cfg := testConfig()
	src := &mockSource{issues: sampleIssues(now)}

	results, err := GetAssignedResults(context.Background(), cfg, src, &mockStoreManager{}, "OctoCat")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 103, results[0].Issue.Number)
}

func TestGetStaleResults(t *testing.T) {
	now := time.Now()
	cfg := testConfig()
	src := &mockSource{issues: sampleIssues(now)}

	results, err := GetStaleResults(context.Background(), cfg, src, &mockStoreManager{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 102, results[0].Issue.Number)
}

func TestGetRecommendResultsEmptyProfile(t *testing.T) {
	now := time.Now()
	cfg := testConfig()
	src := &mockSource{issues: sampleIssues(now)}

	results, err := GetRecommendResults(context.Background(), cfg, src, &mockStoreManager{}, schema.ExpertiseProfile{})
	require.NoError(t, err)
	assert.Empty(t, results)
	// The empty-profile short circuit avoids fetching entirely.
	assert.Zero(t, src.listCalls)
}

func TestGetAnalyzeResult(t *testing.T) {
	now := time.Now()
	cfg := testConfig()
	src := &mockSource{issues: sampleIssues(now)}

	result, approach, err := GetAnalyzeResult(context.Background(), cfg, src, &mockStoreManager{}, 101)
	require.NoError(t, err)
	assert.Equal(t, 101, result.Issue.Number)
	// Label 10 + age bonus 5 + capped engagement 15 lands exactly on the
	// high threshold, which is inclusive.
	assert.Equal(t, schema.HighTier, result.Tier)
	assert.NotEmpty(t, approach)
}

func TestGetAnalyzeResultNotFound(t *testing.T) {
	now := time.Now()
	cfg := testConfig()
	src := &mockSource{issues: sampleIssues(now)}

	_, _, err := GetAnalyzeResult(context.Background(), cfg, src, &mockStoreManager{}, 99999)
	assert.ErrorIs(t, err, ErrIssueNotFound)
}
