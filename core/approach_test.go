package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/triagehq/triage/schema"
)

func TestSuggestedApproach(t *testing.T) {
	bug := schema.Issue{Title: "Bug: NaN loss during training"}
	feature := schema.Issue{Title: "Add support for flash attention"}
	docs := schema.Issue{Title: "docs: broken link in quicktour"}
	other := schema.Issue{Title: "Investigate memory growth"}

	assert.Contains(t, suggestedApproach(bug, schema.LowComplexity), "Reproduce")
	assert.Contains(t, suggestedApproach(feature, schema.MediumComplexity), "API surface")
	assert.Contains(t, suggestedApproach(docs, schema.LowComplexity), "documentation")
	assert.Contains(t, suggestedApproach(other, schema.LowComplexity), "scope")

	// Complexity shapes the closing advice deterministically.
	assert.Contains(t, suggestedApproach(bug, schema.HighComplexity), "smaller PRs")
	same := suggestedApproach(bug, schema.HighComplexity)
	assert.Equal(t, same, suggestedApproach(bug, schema.HighComplexity))
}
