package cmd

import (
	"github.com/spf13/cobra"
	"github.com/triagehq/triage/core"
	"github.com/triagehq/triage/internal/contract"
)

// assignedCmd shows the ranked issues assigned to a user.
var assignedCmd = &cobra.Command{
	Use:   "assigned <user>",
	Short: "Show a user's assigned issues ranked by priority.",
	Long: `List the issues assigned to a GitHub user, ranked by priority score.

Useful for standups and workload reviews: the ranking makes it obvious which
of someone's assignments are urgent and which can wait.

Examples:
  # What is on octocat's plate, most urgent first
  triage assigned octocat

  # Include closed assignments for a retrospective
  triage assigned octocat --state all`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteAssigned(rootCtx, cfg, issueSource, storeManager, args[0]); err != nil {
			contract.LogFatal("Cannot list assigned issues", err)
		}
	},
}
