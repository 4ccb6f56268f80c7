package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/triagehq/triage/internal/contract"
	"github.com/triagehq/triage/schema"
)

// testConfig returns a validated-shape config with default scoring rules and
// a populated high bucket.
func testConfig() *contract.Config {
	return &contract.Config{
		Repository:  "huggingface/diffusers",
		ResultLimit: contract.DefaultResultLimit,
		Workers:     2,
		PriorityLabels: map[schema.PriorityTier][]string{
			schema.HighTier:   {"bug", "security", "good first issue"},
			schema.MediumTier: {"enhancement", "performance"},
			schema.LowTier:    {"question"},
		},
		LabelWeights:     schema.GetDefaultLabelWeights(),
		HighThreshold:    contract.DefaultHighThreshold,
		MediumThreshold:  contract.DefaultMediumThreshold,
		AgeBonusPerDay:   contract.DefaultAgeBonusPerDay,
		AgeBonusCap:      contract.DefaultAgeBonusCap,
		StaleDays:        contract.DefaultStaleDays,
		RecommendWeights: schema.GetDefaultRecommendWeights(),
	}
}

func TestScorePriorityLabelsAndAge(t *testing.T) {
	cfg := testConfig()
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	// Labels "bug" and "good first issue" both sit in the high bucket (10
	// each), age 10 days adds the full capped bonus of 10.
	issue := schema.Issue{
		Number:    1,
		Labels:    []string{"bug", "good first issue"},
		State:     "open",
		CreatedAt: now.Add(-10 * 24 * time.Hour),
		UpdatedAt: now,
	}

	score, tier := scorePriority(issue, cfg, now)
	assert.Equal(t, 30, score)
	assert.Equal(t, schema.HighTier, tier)
}

func TestScorePriorityDeterminism(t *testing.T) {
	cfg := testConfig()
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	issue := schema.Issue{
		Number:       7,
		Labels:       []string{"bug", "performance"},
		CommentCount: 4,
		CreatedAt:    now.Add(-100 * 24 * time.Hour),
	}

	firstScore, firstTier := scorePriority(issue, cfg, now)
	for range 5 {
		score, tier := scorePriority(issue, cfg, now)
		assert.Equal(t, firstScore, score)
		assert.Equal(t, firstTier, tier)
	}
}

func TestScorePriorityAgeMonotonicity(t *testing.T) {
	cfg := testConfig()
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	prev := -1
	for days := 0; days <= 20; days++ {
		issue := schema.Issue{
			Number:    1,
			Labels:    []string{"enhancement"},
			CreatedAt: now.Add(-time.Duration(days) * 24 * time.Hour),
		}
		score, _ := scorePriority(issue, cfg, now)
		assert.GreaterOrEqual(t, score, prev, "age %d days", days)
		prev = score
	}

	// Beyond the cap, age adds nothing.
	atCap := schema.Issue{Labels: []string{"enhancement"}, CreatedAt: now.Add(-10 * 24 * time.Hour)}
	farBeyond := schema.Issue{Labels: []string{"enhancement"}, CreatedAt: now.Add(-1000 * 24 * time.Hour)}
	capScore, _ := scorePriority(atCap, cfg, now)
	beyondScore, _ := scorePriority(farBeyond, cfg, now)
	assert.Equal(t, capScore, beyondScore)
}

func TestScorePriorityThresholdBoundary(t *testing.T) {
	cfg := testConfig()
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	// Three high labels score exactly the high threshold of 30.
	exactly := schema.Issue{Labels: []string{"bug", "security", "good first issue"}, CreatedAt: now}
	score, tier := scorePriority(exactly, cfg, now)
	assert.Equal(t, cfg.HighThreshold, score)
	assert.Equal(t, schema.HighTier, tier)

	// One point below lands in medium.
	cfg.HighThreshold = 31
	score, tier = scorePriority(exactly, cfg, now)
	assert.Equal(t, 30, score)
	assert.Equal(t, schema.MediumTier, tier)
}

func TestScorePriorityEngagementCapped(t *testing.T) {
	cfg := testConfig()
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	quiet := schema.Issue{Labels: []string{"question"}, CommentCount: 0, CreatedAt: now}
	busy := schema.Issue{Labels: []string{"question"}, CommentCount: 4, CreatedAt: now}
	flameWar := schema.Issue{Labels: []string{"question"}, CommentCount: 500, CreatedAt: now}

	quietScore, _ := scorePriority(quiet, cfg, now)
	busyScore, _ := scorePriority(busy, cfg, now)
	flameScore, _ := scorePriority(flameWar, cfg, now)

	assert.Equal(t, quietScore+6, busyScore) // 4 * 1.5
	assert.Equal(t, quietScore+15, flameScore)
}

func TestLabelWeightBucketPrecedence(t *testing.T) {
	cfg := testConfig()
	// "bug" appears only in high; a label containing it matches high even
	// when it also carries a medium term.
	assert.InDelta(t, 10, labelWeight("Bug: performance regression", cfg), 1e-9)
	assert.InDelta(t, 5, labelWeight("performance", cfg), 1e-9)
	assert.InDelta(t, 2, labelWeight("question", cfg), 1e-9)
	assert.InDelta(t, 0, labelWeight("wontfix", cfg), 1e-9)
}

func TestScorePriorityUnlabeledFreshIssue(t *testing.T) {
	cfg := testConfig()
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	issue := schema.Issue{Number: 9, CreatedAt: now}

	score, tier := scorePriority(issue, cfg, now)
	assert.Equal(t, 0, score)
	assert.Equal(t, schema.LowTier, tier)
}
