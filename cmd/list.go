package cmd

import (
	"github.com/spf13/cobra"
	"github.com/triagehq/triage/core"
	"github.com/triagehq/triage/internal/contract"
)

// listCmd shows issues newest first with their scores.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List issues newest first with priority and complexity scores.",
	Long: `Fetch issues from the configured repository and list them newest first.

Every issue is scored on the way through, so the listing doubles as a quick
health check of the backlog: each row carries the priority score, tier,
complexity level, comment count and age.

Examples:
  # List the 10 newest open issues
  triage list

  # List more issues, including closed ones
  triage list --limit 50 --state all

  # Export the listing for a weekly report
  triage list --output csv --output-file backlog.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteList(rootCtx, cfg, issueSource, storeManager); err != nil {
			contract.LogFatal("Cannot list issues", err)
		}
	},
}
