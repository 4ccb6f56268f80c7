package gh

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/triagehq/triage/internal/contract"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("TRIAGE_TEST_TOKEN_UNSET")
	c.baseURL = srv.URL
	return c
}

func issuePayload(number int, labels ...string) map[string]any {
	labelObjs := make([]map[string]string, 0, len(labels))
	for _, l := range labels {
		labelObjs = append(labelObjs, map[string]string{"name": l})
	}
	return map[string]any{
		"number":     number,
		"title":      fmt.Sprintf("issue %d", number),
		"body":       "body",
		"state":      "open",
		"comments":   2,
		"labels":     labelObjs,
		"user":       map[string]string{"login": "octocat"},
		"created_at": time.Now().UTC().Format(time.RFC3339),
		"updated_at": time.Now().UTC().Format(time.RFC3339),
		"html_url":   fmt.Sprintf("https://github.com/o/r/issues/%d", number),
	}
}

func TestListIssuesPagination(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/o/r/issues", r.URL.Path)
		assert.Equal(t, "open", r.URL.Query().Get("state"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		page := r.URL.Query().Get("page")
		var issues []map[string]any
		switch page {
		case "1":
			for i := 1; i <= perPage; i++ {
				issues = append(issues, issuePayload(i))
			}
		default:
			issues = []map[string]any{issuePayload(perPage + 1)}
		}
		require.NoError(t, json.NewEncoder(w).Encode(issues))
	}))

	got, err := c.ListIssues(context.Background(), "o/r", "open")
	require.NoError(t, err)
	assert.Len(t, got, perPage+1)
	assert.Equal(t, 1, got[0].Number)
	assert.Equal(t, "octocat", got[0].Author)
}

func TestListIssuesFiltersPullRequests(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		pr := issuePayload(2)
		pr["pull_request"] = map[string]any{"url": "https://api.github.com/repos/o/r/pulls/2"}
		issues := []map[string]any{issuePayload(1, "Bug"), pr}
		require.NoError(t, json.NewEncoder(w).Encode(issues))
	}))

	got, err := c.ListIssues(context.Background(), "o/r", "open")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Number)
	// Labels are normalized to lowercase.
	assert.Equal(t, []string{"bug"}, got[0].Labels)
}

func TestGetIssue(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/o/r/issues/42", r.URL.Path)
		payload := issuePayload(42)
		payload["assignee"] = map[string]string{"login": "maintainer"}
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))

	got, err := c.GetIssue(context.Background(), "o/r", 42)
	require.NoError(t, err)
	assert.Equal(t, 42, got.Number)
	assert.Equal(t, "maintainer", got.Assignee)
}

func TestGetIssueNotFound(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.GetIssue(context.Background(), "o/r", 999)
	assert.ErrorIs(t, err, contract.ErrIssueNotFound)
}

func TestTokenHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewEncoder(w).Encode([]map[string]any{}))
	}))
	t.Cleanup(srv.Close)

	t.Setenv("TRIAGE_TEST_TOKEN", "tok123")
	c := NewClient("TRIAGE_TEST_TOKEN")
	c.baseURL = srv.URL

	_, err := c.ListIssues(context.Background(), "o/r", "open")
	require.NoError(t, err)
	assert.Equal(t, "token tok123", gotAuth)
}

func TestUnauthenticatedDegrades(t *testing.T) {
	var gotAuth string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewEncoder(w).Encode([]map[string]any{}))
	}))

	_, err := c.ListIssues(context.Background(), "o/r", "open")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestServerErrorRetries(t *testing.T) {
	calls := 0
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode([]map[string]any{issuePayload(1)}))
	}))

	got, err := c.ListIssues(context.Background(), "o/r", "open")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 2, calls)
}
