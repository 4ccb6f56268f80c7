package cmd

import (
	"github.com/spf13/cobra"
	"github.com/triagehq/triage/core"
	"github.com/triagehq/triage/internal/contract"
)

// prioritizeCmd ranks issues by priority score.
var prioritizeCmd = &cobra.Command{
	Use:   "prioritize",
	Short: "Rank issues from most to least urgent.",
	Long: `Score every fetched issue and rank the backlog by triage priority.

The priority score combines:
- Label severity (high/medium/low buckets from your config)
- Community engagement (comment count)
- Issue age (older issues accrue a capped bonus)

Issues land in High, Medium or Low tiers based on configurable thresholds,
so the top of the list is always the work that most needs attention.

Examples:
  # Show the 10 most urgent issues
  triage prioritize

  # Widen the view and keep two decimals on numeric columns
  triage prioritize --limit 30 --precision 2

  # Feed the ranking into another tool
  triage prioritize --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePrioritize(rootCtx, cfg, issueSource, storeManager); err != nil {
			contract.LogFatal("Cannot prioritize issues", err)
		}
	},
}
