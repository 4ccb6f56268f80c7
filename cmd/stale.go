package cmd

import (
	"github.com/spf13/cobra"
	"github.com/triagehq/triage/core"
	"github.com/triagehq/triage/internal/contract"
)

// staleCmd surfaces open, unassigned issues with no recent activity.
var staleCmd = &cobra.Command{
	Use:   "stale",
	Short: "Find open, unassigned issues that have gone quiet.",
	Long: `Find open, unassigned issues with no activity beyond the staleness window.

Stale issues are ranked by how long they have been inactive, so the most
neglected work floats to the top. Assigned issues are excluded; someone is
already on the hook for those.

The window defaults to 30 days and is configurable via 'stale_days' in the
config file or the TRIAGE_STALE_DAYS environment variable.

Examples:
  # Issues untouched for 30+ days
  triage stale

  # Export the neglect list for a backlog grooming session
  triage stale --output csv --output-file stale.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStale(rootCtx, cfg, issueSource, storeManager); err != nil {
			contract.LogFatal("Cannot detect stale issues", err)
		}
	},
}
