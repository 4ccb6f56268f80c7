package mcp_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/triagehq/triage/internal/contract"
	mcp_internal "github.com/triagehq/triage/internal/mcp"
	"github.com/triagehq/triage/schema"
)

// fakeSource serves a fixed issue set without touching the network.
type fakeSource struct {
	issues []schema.Issue
}

func (f *fakeSource) ListIssues(_ context.Context, _ string, _ string) ([]schema.Issue, error) {
	return f.issues, nil
}

func (f *fakeSource) GetIssue(_ context.Context, _ string, number int) (*schema.Issue, error) {
	for i := range f.issues {
		if f.issues[i].Number == number {
			return &f.issues[i], nil
		}
	}
	return nil, contract.ErrIssueNotFound
}

func testBaseConfig(t *testing.T) *contract.Config {
	t.Helper()
	return &contract.Config{
		Repository:  "owner/repo",
		IssueState:  "open",
		ResultLimit: 10,
		Workers:     2,
		Precision:   1,
		ProfilePath: filepath.Join(t.TempDir(), "profile.yaml"),
		StaleDays:   30,
		PriorityLabels: map[schema.PriorityTier][]string{
			schema.HighTier:   {"bug"},
			schema.MediumTier: {"enhancement"},
			schema.LowTier:    {"question"},
		},
		LabelWeights:     schema.GetDefaultLabelWeights(),
		HighThreshold:    30,
		MediumThreshold:  15,
		AgeBonusPerDay:   1.0,
		AgeBonusCap:      10.0,
		RecommendWeights: schema.GetDefaultRecommendWeights(),
	}
}

func testIssues(now time.Time) []schema.Issue {
	return []schema.Issue{
		{
			Number:       101,
			Title:        "Bug: training crashes on resume",
			Body:         "See src/train.py for the failing loop.",
			Labels:       []string{"bug"},
			State:        "open",
			CommentCount: 4,
			CreatedAt:    now.Add(-48 * time.Hour),
			UpdatedAt:    now,
		},
		{
			Number:    102,
			Title:     "Question about tokenizer padding",
			Labels:    []string{"question"},
			State:     "open",
			CreatedAt: now.Add(-60 * 24 * time.Hour),
			UpdatedAt: now.Add(-45 * 24 * time.Hour),
		},
	}
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func TestMCPServerPrioritizeIssues(t *testing.T) {
	src := &fakeSource{issues: testIssues(time.Now())}
	s := mcp_internal.NewMCPServer(testBaseConfig(t), src, nil)

	res := callTool(t, s, "prioritize_issues", map[string]any{"limit": 1.0})
	require.False(t, res.IsError)

	text := res.Content[0].(mcp.TextContent).Text
	assert.Contains(t, text, `"number": 101`)
	// The limit of 1 excludes the lower-priority question issue
	assert.NotContains(t, text, `"number": 102`)
}

func TestMCPServerRecommendIssues(t *testing.T) {
	src := &fakeSource{issues: testIssues(time.Now())}
	s := mcp_internal.NewMCPServer(testBaseConfig(t), src, nil)

	res := callTool(t, s, "recommend_issues", map[string]any{"keywords": "tokenizer, padding"})
	require.False(t, res.IsError)

	text := res.Content[0].(mcp.TextContent).Text
	assert.Contains(t, text, `"number": 102`)
}

func TestMCPServerRecommendIssuesNoProfile(t *testing.T) {
	src := &fakeSource{issues: testIssues(time.Now())}
	s := mcp_internal.NewMCPServer(testBaseConfig(t), src, nil)

	res := callTool(t, s, "recommend_issues", map[string]any{})
	assert.True(t, res.IsError, "The response should indicate an error state")
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "no expertise keywords")
}

func TestMCPServerAnalyzeIssue(t *testing.T) {
	src := &fakeSource{issues: testIssues(time.Now())}
	s := mcp_internal.NewMCPServer(testBaseConfig(t), src, nil)

	res := callTool(t, s, "analyze_issue", map[string]any{"number": 101.0})
	require.False(t, res.IsError)

	text := res.Content[0].(mcp.TextContent).Text
	assert.Contains(t, text, "suggested_approach")
	assert.Contains(t, text, "src/train.py")
}

func TestMCPServerAnalyzeIssueInvalidNumber(t *testing.T) {
	src := &fakeSource{issues: testIssues(time.Now())}
	s := mcp_internal.NewMCPServer(testBaseConfig(t), src, nil)

	res := callTool(t, s, "analyze_issue", map[string]any{"number": 0.0})
	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "positive issue number")
}

func TestMCPServerStaleIssues(t *testing.T) {
	src := &fakeSource{issues: testIssues(time.Now())}
	s := mcp_internal.NewMCPServer(testBaseConfig(t), src, nil)

	res := callTool(t, s, "stale_issues", map[string]any{"stale_days": 30.0})
	require.False(t, res.IsError)

	text := res.Content[0].(mcp.TextContent).Text
	assert.Contains(t, text, `"number": 102`)
	assert.NotContains(t, text, `"number": 101`)
}

func TestMCPServerStaleIssuesErrorPropagation(t *testing.T) {
	cfg := testBaseConfig(t)
	cfg.Repository = "owner/missing"
	s := mcp_internal.NewMCPServer(cfg, &failingSource{}, nil)

	res := callTool(t, s, "stale_issues", map[string]any{})
	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "stale detection failed")
}

// failingSource always errors, for error-path coverage.
type failingSource struct{}

func (f *failingSource) ListIssues(_ context.Context, _ string, _ string) ([]schema.Issue, error) {
	return nil, assert.AnError
}

func (f *failingSource) GetIssue(_ context.Context, _ string, _ int) (*schema.Issue, error) {
	return nil, assert.AnError
}
