package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/triagehq/triage/schema"
)

func TestRankByPriority(t *testing.T) {
	issues := []schema.ScoredIssue{
		{Issue: schema.Issue{Number: 3}, PriorityScore: 10},
		{Issue: schema.Issue{Number: 1}, PriorityScore: 30},
		{Issue: schema.Issue{Number: 2}, PriorityScore: 30},
		{Issue: schema.Issue{Number: 4}, PriorityScore: 20},
	}

	ranked := rankByPriority(issues, 3)
	require.Len(t, ranked, 3)
	assert.Equal(t, 1, ranked[0].Issue.Number) // tie broken by lower number
	assert.Equal(t, 2, ranked[1].Issue.Number)
	assert.Equal(t, 4, ranked[2].Issue.Number)
}

func TestRankByPriorityLimitLargerThanInput(t *testing.T) {
	issues := []schema.ScoredIssue{
		{Issue: schema.Issue{Number: 1}, PriorityScore: 5},
	}
	assert.Len(t, rankByPriority(issues, 100), 1)
}

func TestFilterAssigned(t *testing.T) {
	issues := []schema.ScoredIssue{
		{Issue: schema.Issue{Number: 1, Assignee: "alice"}},
		{Issue: schema.Issue{Number: 2, Assignee: "Bob"}},
		{Issue: schema.Issue{Number: 3}},
	}

	got := filterAssigned(issues, "bob")
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Issue.Number)

	assert.Empty(t, filterAssigned(issues, "carol"))
}
