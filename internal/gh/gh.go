// Package gh provides the GitHub REST client used to fetch issues.
package gh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/triagehq/triage/internal/contract"
	"github.com/triagehq/triage/schema"
)

const (
	defaultBaseURL = "https://api.github.com"
	perPage        = 100
	acceptHeader   = "application/vnd.github.v3+json"
	httpTimeout    = 30 * time.Second
)

// Retry constants.
const (
	maxRetryAttempts  = 5
	initialRetryDelay = 1 * time.Second
	maxRetryDelay     = 30 * time.Second
)

// Client handles all GitHub API interactions.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates a GitHub API client. The token is read from the given
// environment variable; its absence degrades to unauthenticated requests
// (lower rate limit) rather than failing.
func NewClient(tokenEnv string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: httpTimeout},
		baseURL:    defaultBaseURL,
		token:      os.Getenv(tokenEnv),
	}
}

// issueJSON mirrors the subset of the GitHub issue payload we consume.
type issueJSON struct {
	Number   int    `json:"number"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	State    string `json:"state"`
	Comments int    `json:"comments"`
	Labels   []struct {
		Name string `json:"name"`
	} `json:"labels"`
	Assignee *struct {
		Login string `json:"login"`
	} `json:"assignee"`
	User *struct {
		Login string `json:"login"`
	} `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	HTMLURL   string    `json:"html_url"`

	// Present only when the "issue" is actually a pull request.
	PullRequest *struct{} `json:"pull_request,omitempty"`
}

func (r *issueJSON) toIssue() schema.Issue {
	labels := make([]string, 0, len(r.Labels))
	for _, l := range r.Labels {
		labels = append(labels, l.Name)
	}
	issue := schema.Issue{
		Number:       r.Number,
		Title:        r.Title,
		Body:         r.Body,
		Labels:       schema.NormalizeTerms(labels),
		State:        r.State,
		CommentCount: r.Comments,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		URL:          r.HTMLURL,
	}
	if r.Assignee != nil {
		issue.Assignee = r.Assignee.Login
	}
	if r.User != nil {
		issue.Author = r.User.Login
	}
	return issue
}

// ListIssues fetches all issues for the repository in the given state,
// following pagination. Pull requests share the issues endpoint on the
// GitHub API and are filtered out.
func (c *Client) ListIssues(ctx context.Context, repo string, state string) ([]schema.Issue, error) {
	var all []schema.Issue
	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/repos/%s/issues?state=%s&per_page=%d&page=%d",
			c.baseURL, repo, state, perPage, page)

		var raw []issueJSON
		if err := c.getJSON(ctx, url, &raw); err != nil {
			return nil, fmt.Errorf("failed to list issues for %s: %w", repo, err)
		}

		for i := range raw {
			if raw[i].PullRequest != nil {
				continue
			}
			all = append(all, raw[i].toIssue())
		}

		if len(raw) < perPage {
			break
		}
	}
	return all, nil
}

// GetIssue fetches one issue by number. A 404 maps to ErrIssueNotFound so
// callers can report a bad reference cleanly.
func (c *Client) GetIssue(ctx context.Context, repo string, number int) (*schema.Issue, error) {
	url := fmt.Sprintf("%s/repos/%s/issues/%d", c.baseURL, repo, number)

	var raw issueJSON
	if err := c.getJSON(ctx, url, &raw); err != nil {
		return nil, err
	}
	if raw.PullRequest != nil {
		return nil, contract.ErrIssueNotFound
	}
	issue := raw.toIssue()
	return &issue, nil
}

// getJSON performs a GET with retry/backoff and decodes the response body.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	return retryWithBackoff(ctx, url, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", acceptHeader)
		if c.token != "" {
			req.Header.Set("Authorization", "token "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer drainAndCloseBody(resp.Body)

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return contract.ErrIssueNotFound
		case resp.StatusCode == http.StatusTooManyRequests,
			resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
			return fmt.Errorf("http %d: rate limited", resp.StatusCode)
		case resp.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("http %d: server error", resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}

		return json.NewDecoder(resp.Body).Decode(out)
	})
}

// retryWithBackoff executes a function with exponential backoff. Only rate
// limits, server errors and transient network failures are retried.
func retryWithBackoff(ctx context.Context, operation string, fn func() error) error {
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(maxRetryAttempts),
		retry.Delay(initialRetryDelay),
		retry.MaxDelay(maxRetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			contract.LogWarn(fmt.Sprintf("Retrying %s (attempt %d/%d)", operation, n+1, maxRetryAttempts), err)
		}),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			if err == nil {
				return false
			}
			errStr := err.Error()
			return strings.Contains(errStr, "rate limited") ||
				strings.Contains(errStr, "server error") ||
				strings.Contains(errStr, "connection refused") ||
				strings.Contains(errStr, "timeout") ||
				strings.Contains(errStr, "EOF")
		}),
	)
}

// drainAndCloseBody drains and closes an HTTP response body to keep the
// underlying connection reusable.
func drainAndCloseBody(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
