// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/triagehq/triage/internal/contract"
	"github.com/triagehq/triage/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteIssues prints scored issue results using the configured output format.
func (ow *OutWriter) WriteIssues(results []schema.ScoredIssue, cfg *contract.Config, duration time.Duration) error {
	return PrintIssueResults(results, cfg, duration)
}

// WriteRecommendations prints expertise-ranked results using the configured output format.
func (ow *OutWriter) WriteRecommendations(results []schema.ScoredIssue, cfg *contract.Config, duration time.Duration) error {
	return PrintRecommendResults(results, cfg, duration)
}

// WriteStale prints stale issue results using the configured output format.
func (ow *OutWriter) WriteStale(results []schema.ScoredIssue, cfg *contract.Config, duration time.Duration) error {
	return PrintStaleResults(results, cfg, duration)
}

// WriteAnalysis prints the single-issue triage detail using the configured output format.
func (ow *OutWriter) WriteAnalysis(result *schema.ScoredIssue, approach string, cfg *contract.Config) error {
	return PrintAnalyzeResult(result, approach, cfg)
}
