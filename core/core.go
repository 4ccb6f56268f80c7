package core

import (
	"context"
	"sort"
	"time"

	"github.com/triagehq/triage/internal/contract"
	"github.com/triagehq/triage/internal/outwriter"
	"github.com/triagehq/triage/schema"
)

// ErrIssueNotFound indicates an issue number that does not resolve to any
// issue in the configured repository.
var ErrIssueNotFound = contract.ErrIssueNotFound

// ExecuteList shows the most recent issues, scored, and prints results to stdout.
// It serves as the main entry point for the 'list' command.
func ExecuteList(ctx context.Context, cfg *contract.Config, src contract.IssueSource, mgr contract.StoreManager) error {
	start := time.Now()
	results, err := GetListResults(ctx, cfg, src, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintIssueResults(results, cfg, duration)
}

// ExecutePrioritize ranks all fetched issues by priority score and prints
// results to stdout. It serves as the main entry point for the 'prioritize' command.
func ExecutePrioritize(ctx context.Context, cfg *contract.Config, src contract.IssueSource, mgr contract.StoreManager) error {
	start := time.Now()
	results, err := GetPrioritizedResults(ctx, cfg, src, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintIssueResults(results, cfg, duration)
}

// ExecuteRecommend ranks issues against the expertise profile and prints
// results to stdout. It serves as the main entry point for the 'recommend' command.
func ExecuteRecommend(ctx context.Context, cfg *contract.Config, src contract.IssueSource, mgr contract.StoreManager, profile schema.ExpertiseProfile) error {
	start := time.Now()
	results, err := GetRecommendResults(ctx, cfg, src, mgr, profile)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintRecommendResults(results, cfg, duration)
}

// ExecuteAssigned shows issues assigned to the given user, ranked by
// priority, and prints results to stdout.
func ExecuteAssigned(ctx context.Context, cfg *contract.Config, src contract.IssueSource, mgr contract.StoreManager, user string) error {
	start := time.Now()
	results, err := GetAssignedResults(ctx, cfg, src, mgr, user)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintIssueResults(results, cfg, duration)
}

// ExecuteStale shows open, unassigned issues inactive beyond the configured
// threshold and prints results to stdout.
func ExecuteStale(ctx context.Context, cfg *contract.Config, src contract.IssueSource, mgr contract.StoreManager) error {
	start := time.Now()
	results, err := GetStaleResults(ctx, cfg, src, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintStaleResults(results, cfg, duration)
}

// ExecuteAnalyze shows the full triage detail for one issue number.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, src contract.IssueSource, mgr contract.StoreManager, number int) error {
	result, approach, err := GetAnalyzeResult(ctx, cfg, src, mgr, number)
	if err != nil {
		return err
	}
	return outwriter.PrintAnalyzeResult(result, approach, cfg)
}

// GetListResults returns the newest issues, scored, up to the result limit.
func GetListResults(ctx context.Context, cfg *contract.Config, src contract.IssueSource, mgr contract.StoreManager) ([]schema.ScoredIssue, error) {
	scored, err := fetchAndScore(ctx, cfg, src, mgr)
	if err != nil {
		return nil, err
	}
	return rankByNewest(scored, cfg.ResultLimit), nil
}

// GetPrioritizedResults returns issues ranked by priority score, up to the
// result limit.
func GetPrioritizedResults(ctx context.Context, cfg *contract.Config, src contract.IssueSource, mgr contract.StoreManager) ([]schema.ScoredIssue, error) {
	scored, err := fetchAndScore(ctx, cfg, src, mgr)
	if err != nil {
		return nil, err
	}
	return rankByPriority(scored, cfg.ResultLimit), nil
}

// GetRecommendResults returns the expertise-ranked subset of issues. An
// empty profile yields an empty result, not an error.
func GetRecommendResults(ctx context.Context, cfg *contract.Config, src contract.IssueSource, mgr contract.StoreManager, profile schema.ExpertiseProfile) ([]schema.ScoredIssue, error) {
	if profile.IsEmpty() {
		return nil, nil
	}
	scored, err := fetchAndScore(ctx, cfg, src, mgr)
	if err != nil {
		return nil, err
	}
	return recommend(scored, profile, cfg, cfg.ResultLimit), nil
}

// GetAssignedResults returns issues assigned to the given user, ranked by
// priority score.
func GetAssignedResults(ctx context.Context, cfg *contract.Config, src contract.IssueSource, mgr contract.StoreManager, user string) ([]schema.ScoredIssue, error) {
	scored, err := fetchAndScore(ctx, cfg, src, mgr)
	if err != nil {
		return nil, err
	}
	return rankByPriority(filterAssigned(scored, user), cfg.ResultLimit), nil
}

// GetStaleResults returns stale issues ordered by longest inactivity first.
func GetStaleResults(ctx context.Context, cfg *contract.Config, src contract.IssueSource, mgr contract.StoreManager) ([]schema.ScoredIssue, error) {
	scored, err := fetchAndScore(ctx, cfg, src, mgr)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	var stale []schema.ScoredIssue
	for _, si := range scored {
		if isStale(si.Issue, cfg.StaleDays, now) {
			stale = append(stale, si)
		}
	}
	sort.Slice(stale, func(i, j int) bool {
		if !stale[i].Issue.UpdatedAt.Equal(stale[j].Issue.UpdatedAt) {
			return stale[i].Issue.UpdatedAt.Before(stale[j].Issue.UpdatedAt)
		}
		return stale[i].Issue.Number < stale[j].Issue.Number
	})
	if len(stale) > cfg.ResultLimit {
		stale = stale[:cfg.ResultLimit]
	}
	return stale, nil
}

// GetAnalyzeResult returns the scored detail and suggested approach for one
// issue. The snapshot collection is tried first; a direct fetch covers
// issues outside it. A number that resolves nowhere yields ErrIssueNotFound.
func GetAnalyzeResult(ctx context.Context, cfg *contract.Config, src contract.IssueSource, mgr contract.StoreManager, number int) (*schema.ScoredIssue, string, error) {
	issues, err := cachedFetchIssues(ctx, cfg, src, mgr)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	for _, issue := range issues {
		if issue.Number == number {
			si := scoreIssue(issue, cfg, now)
			return &si, suggestedApproach(issue, si.Complexity), nil
		}
	}

	issue, err := src.GetIssue(ctx, cfg.Repository, number)
	if err != nil {
		return nil, "", err
	}
	si := scoreIssue(*issue, cfg, now)
	return &si, suggestedApproach(*issue, si.Complexity), nil
}

// fetchAndScore is the common fetch + score + track pipeline behind every
// listing command.
func fetchAndScore(ctx context.Context, cfg *contract.Config, src contract.IssueSource, mgr contract.StoreManager) ([]schema.ScoredIssue, error) {
	issues, err := cachedFetchIssues(ctx, cfg, src, mgr)
	if err != nil {
		return nil, err
	}
	return runScoredAnalysis(cfg, mgr, issues, time.Now()), nil
}
