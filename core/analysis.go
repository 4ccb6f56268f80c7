package core

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/triagehq/triage/internal/contract"
	"github.com/triagehq/triage/schema"
)

// scoreIssues annotates every issue with priority, complexity and file
// references using a bounded worker pool. Scoring is pure, so workers need
// no coordination beyond the channels; 'now' is captured once so every
// issue is scored against the same instant.
func scoreIssues(cfg *contract.Config, issues []schema.Issue, now time.Time) []schema.ScoredIssue {
	issueCh := make(chan schema.Issue, len(issues))
	resultCh := make(chan schema.ScoredIssue, len(issues))
	var wg sync.WaitGroup

	// Start worker pool
	for range cfg.Workers {
		wg.Go(func() {
			for issue := range issueCh {
				resultCh <- scoreIssue(issue, cfg, now)
			}
		})
	}

	for _, issue := range issues {
		issueCh <- issue
	}
	close(issueCh)

	wg.Wait()
	close(resultCh)

	results := make([]schema.ScoredIssue, 0, len(issues))
	for r := range resultCh {
		results = append(results, r)
	}
	return results
}

// scoreIssue computes every triage dimension for a single issue.
func scoreIssue(issue schema.Issue, cfg *contract.Config, now time.Time) schema.ScoredIssue {
	score, tier := scorePriority(issue, cfg, now)
	level, raw := estimateComplexity(issue)
	refs := extractFileRefs(issue.Title + "\n" + issue.Body)

	return schema.ScoredIssue{
		Issue:           issue,
		PriorityScore:   score,
		Tier:            tier,
		Complexity:      level,
		ComplexityScore: raw,
		ReferencedFiles: refs,
	}
}

// runScoredAnalysis scores all issues and, when a run store is configured,
// records the run and its per-issue scores. Tracking failures degrade to
// warnings; they never fail the triage run itself.
func runScoredAnalysis(cfg *contract.Config, mgr contract.StoreManager, issues []schema.Issue, now time.Time) []schema.ScoredIssue {
	var runID int64
	var runStore contract.RunStore
	if mgr != nil {
		runStore = mgr.GetRunStore()
	}

	if runStore != nil {
		params, _ := json.Marshal(map[string]any{
			"repository":   cfg.Repository,
			"workers":      cfg.Workers,
			"result_limit": cfg.ResultLimit,
			"stale_days":   cfg.StaleDays,
		})
		var err error
		runID, err = runStore.BeginRun(cfg.Repository, now, string(params))
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
			runID = 0
		}
	}

	scored := scoreIssues(cfg, issues, now)

	if runStore != nil && runID > 0 {
		records := make([]schema.IssueScoreRecord, 0, len(scored))
		for _, si := range scored {
			records = append(records, schema.IssueScoreRecord{
				RunID:           runID,
				IssueNumber:     int64(si.Issue.Number),
				Title:           si.Issue.Title,
				ScoredAt:        now,
				PriorityScore:   int32(si.PriorityScore),
				Tier:            string(si.Tier),
				ComplexityScore: si.ComplexityScore,
				Complexity:      string(si.Complexity),
				CommentCount:    int32(si.Issue.CommentCount),
				AgeDays:         schema.AgeDays(si.Issue, now),
				Stale:           isStale(si.Issue, cfg.StaleDays, now),
			})
		}
		if err := runStore.RecordIssueScores(runID, now, records); err != nil {
			contract.LogWarn("Failed to record issue scores", err)
		}
		if err := runStore.EndRun(runID, time.Now(), len(scored)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	return scored
}
