package core

import (
	"strings"

	"github.com/triagehq/triage/schema"
)

// Complexity heuristic parameters.
const (
	bodyLengthCap     = 2000 // characters beyond this saturate
	bodyLengthFactor  = 0.01
	codeBlockWeight   = 2.0
	complexTermWeight = 3.0
	simpleTermWeight  = 2.0
	maxComplexity     = 30.0

	highComplexityCutoff   = 15.0
	mediumComplexityCutoff = 5.0
)

// complexityTerms signal work that goes beyond a local fix.
var complexityTerms = []string{
	"refactor",
	"architecture",
	"breaking change",
	"migration",
	"redesign",
	"backward compat",
}

// simplicityTerms signal a quick, mechanical change.
var simplicityTerms = []string{
	"typo",
	"doc",
	"readme",
	"rename",
}

// estimateComplexity heuristically estimates implementation effort from the
// issue body. Body length saturates past a cap so pasted logs don't dominate,
// fenced code blocks and complexity-signaling terms add, simplicity-signaling
// terms subtract. The raw score is clamped to [0, maxComplexity] and bucketed
// into a level via two cutoffs. Identical body text always yields an
// identical score.
func estimateComplexity(issue schema.Issue) (schema.ComplexityLevel, float64) {
	body := strings.ToLower(issue.Body)

	raw := float64(min(len(body), bodyLengthCap)) * bodyLengthFactor

	// Fenced blocks come in pairs of ``` markers.
	raw += float64(strings.Count(body, "```")/2) * codeBlockWeight

	for _, term := range complexityTerms {
		if strings.Contains(body, term) {
			raw += complexTermWeight
		}
	}
	for _, term := range simplicityTerms {
		if strings.Contains(body, term) {
			raw -= simpleTermWeight
		}
	}

	if raw < 0 {
		raw = 0
	}
	if raw > maxComplexity {
		raw = maxComplexity
	}

	switch {
	case raw > highComplexityCutoff:
		return schema.HighComplexity, raw
	case raw > mediumComplexityCutoff:
		return schema.MediumComplexity, raw
	default:
		return schema.LowComplexity, raw
	}
}
