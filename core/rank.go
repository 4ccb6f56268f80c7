package core

import (
	"sort"
	"strings"

	"github.com/triagehq/triage/schema"
)

// rankByPriority sorts scored issues by priority score in descending order
// and returns the top 'limit' issues. Equal scores tie-break on the lower
// issue number so ordering stays stable across runs.
func rankByPriority(issues []schema.ScoredIssue, limit int) []schema.ScoredIssue {
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].PriorityScore != issues[j].PriorityScore {
			return issues[i].PriorityScore > issues[j].PriorityScore
		}
		return issues[i].Issue.Number < issues[j].Issue.Number
	})
	if len(issues) > limit {
		return issues[:limit]
	}
	return issues
}

// rankByNewest sorts scored issues by creation time, newest first, and
// returns the top 'limit' issues.
func rankByNewest(issues []schema.ScoredIssue, limit int) []schema.ScoredIssue {
	sort.Slice(issues, func(i, j int) bool {
		if !issues[i].Issue.CreatedAt.Equal(issues[j].Issue.CreatedAt) {
			return issues[i].Issue.CreatedAt.After(issues[j].Issue.CreatedAt)
		}
		return issues[i].Issue.Number > issues[j].Issue.Number
	})
	if len(issues) > limit {
		return issues[:limit]
	}
	return issues
}

// filterAssigned keeps issues assigned to the given user (case-insensitive).
func filterAssigned(issues []schema.ScoredIssue, user string) []schema.ScoredIssue {
	var out []schema.ScoredIssue
	for _, si := range issues {
		if strings.EqualFold(si.Issue.Assignee, user) {
			out = append(out, si)
		}
	}
	return out
}
