package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/triagehq/triage/schema"
)

func TestEstimateComplexityLevels(t *testing.T) {
	tests := []struct {
		name string
		body string
		want schema.ComplexityLevel
	}{
		{"empty body", "", schema.LowComplexity},
		{"short question", "How do I install this?", schema.LowComplexity},
		{"medium body", strings.Repeat("a", 800), schema.MediumComplexity},
		{"long body with code", strings.Repeat("a", 1200) + "\n```\npanic\n```", schema.MediumComplexity},
		{"architectural change", strings.Repeat("a", 1000) + " this needs a refactor and a migration plan", schema.HighComplexity},
		{"huge pasted log saturates", strings.Repeat("x", 50000), schema.HighComplexity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, _ := estimateComplexity(schema.Issue{Body: tt.body})
			assert.Equal(t, tt.want, level)
		})
	}
}

func TestEstimateComplexityRawScore(t *testing.T) {
	// 500 chars -> 5.0, one fenced block pair -> +2.0
	body := strings.Repeat("a", 492) + "```x```\n" // 500 chars total
	_, raw := estimateComplexity(schema.Issue{Body: body})
	assert.InDelta(t, 7.0, raw, 1e-9)

	// Simplicity terms subtract and the score floors at zero.
	_, raw = estimateComplexity(schema.Issue{Body: "typo in readme doc"})
	assert.InDelta(t, 0.0, raw, 1e-9)
}

func TestEstimateComplexityClamped(t *testing.T) {
	body := strings.Repeat("z", 10000) +
		" refactor architecture migration redesign breaking change backward compat" +
		strings.Repeat("\n```code```", 20)
	_, raw := estimateComplexity(schema.Issue{Body: body})
	assert.LessOrEqual(t, raw, maxComplexity)
	assert.Equal(t, maxComplexity, raw)
}

func TestEstimateComplexityDeterminism(t *testing.T) {
	issue := schema.Issue{Body: "A refactor touching ```code``` and docs " + strings.Repeat("b", 700)}
	firstLevel, firstRaw := estimateComplexity(issue)
	for range 5 {
		level, raw := estimateComplexity(issue)
		assert.Equal(t, firstLevel, level)
		assert.InDelta(t, firstRaw, raw, 1e-12)
	}
}
