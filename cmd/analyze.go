package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/triagehq/triage/core"
	"github.com/triagehq/triage/internal/contract"
)

// analyzeCmd produces the full triage detail for one issue.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <issue-number>",
	Short: "Show the full triage breakdown for a single issue.",
	Long: `Produce the complete triage detail for one issue.

Includes:
- Priority score and tier
- Complexity score and level
- Referenced file paths extracted from the issue body
- A suggested approach for tackling the issue

Examples:
  # Deep dive on issue #1234
  triage analyze 1234

  # Machine-readable detail for tooling
  triage analyze 1234 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, args []string) error {
		number, err := strconv.Atoi(args[0])
		if err != nil || number <= 0 {
			return fmt.Errorf("invalid issue number '%s'. expected a positive integer", args[0])
		}
		if err := core.ExecuteAnalyze(rootCtx, cfg, issueSource, storeManager, number); err != nil {
			contract.LogFatal("Cannot analyze issue", err)
		}
		return nil
	},
}
