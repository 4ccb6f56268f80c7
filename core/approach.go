package core

import (
	"strings"

	"github.com/triagehq/triage/schema"
)

// suggestedApproach returns a deterministic advisory sentence for the
// analyze view, keyed off title keywords and the estimated complexity.
func suggestedApproach(issue schema.Issue, level schema.ComplexityLevel) string {
	title := strings.ToLower(issue.Title)

	var base string
	switch {
	case strings.Contains(title, "bug") || strings.Contains(title, "fix") || strings.Contains(title, "error"):
		base = "Reproduce the reported behavior locally, add a failing test, then fix the underlying cause."
	case strings.Contains(title, "feature") || strings.Contains(title, "add") || strings.Contains(title, "support"):
		base = "Sketch the API surface first and confirm direction with maintainers before implementing."
	case strings.Contains(title, "doc"):
		base = "Update the relevant documentation pages and verify examples still run."
	default:
		base = "Read the linked discussion and referenced files to scope the change before starting."
	}

	switch level {
	case schema.HighComplexity:
		return base + " Expect a multi-session effort; consider splitting into smaller PRs."
	case schema.MediumComplexity:
		return base + " A focused session should cover it."
	default:
		return base + " Likely a quick change."
	}
}
