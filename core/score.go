// Package core has core logic for scoring, ranking and recommending issues.
package core

import (
	"math"
	"strings"
	"time"

	"github.com/triagehq/triage/internal/contract"
	"github.com/triagehq/triage/schema"
)

// Engagement bonus parameters. Comment activity signals community interest,
// but a flame war should not dominate the label signal.
const (
	engagementPerComment = 1.5
	engagementCap        = 15.0
)

// scorePriority calculates an issue's priority score and tier from its
// labels, age and comment activity.
//
// Each label contributes the weight of the first bucket (high, then medium,
// then low) whose configured terms match it; unmatched labels contribute
// zero. An age bonus accrues per day since creation, capped so ancient
// issues don't inflate without bound. Tier cutoffs are inclusive: a score
// exactly at a threshold lands in the higher tier.
func scorePriority(issue schema.Issue, cfg *contract.Config, now time.Time) (int, schema.PriorityTier) {
	raw := 0.0

	for _, label := range issue.Labels {
		raw += labelWeight(label, cfg)
	}

	ageBonus := schema.AgeDays(issue, now) * cfg.AgeBonusPerDay
	raw += math.Min(ageBonus, cfg.AgeBonusCap)

	engagement := float64(issue.CommentCount) * engagementPerComment
	raw += math.Min(engagement, engagementCap)

	score := int(math.Round(raw))

	switch {
	case score >= cfg.HighThreshold:
		return score, schema.HighTier
	case score >= cfg.MediumThreshold:
		return score, schema.MediumTier
	default:
		return score, schema.LowTier
	}
}

// labelWeight returns the score contribution of a single issue label.
// Buckets are checked from high to low so an overlapping term counts once,
// at its most important bucket. Matching is case-insensitive substring,
// so a "bug" rule matches "bug: scheduler" style labels.
func labelWeight(label string, cfg *contract.Config) float64 {
	label = strings.ToLower(label)
	for _, tier := range []schema.PriorityTier{schema.HighTier, schema.MediumTier, schema.LowTier} {
		for _, term := range cfg.PriorityLabels[tier] {
			if strings.Contains(label, term) {
				return float64(cfg.LabelWeights[tier])
			}
		}
	}
	return 0
}
