package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/triagehq/triage/core"
	"github.com/triagehq/triage/internal/contract"
	"github.com/triagehq/triage/internal/profile"
	"github.com/triagehq/triage/schema"
)

// recommendCmd ranks issues by expertise fit.
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend issues that match your expertise profile.",
	Long: `Rank issues by how well they match your expertise keywords.

The match score blends three signals:
- Keyword overlap with the issue title and body
- File references that fall inside your expertise areas
- Labels that match your preferred issue types

Issues with no match at all are dropped, so an empty result usually means
the profile needs more keywords (see 'triage expertise set').

Examples:
  # Recommend issues using the saved profile
  triage recommend

  # One-off recommendation without touching the profile
  triage recommend --keywords "tokenizer,cuda,training"

  # More results, machine readable
  triage recommend --limit 25 --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Keywords from the flag win; otherwise fall back to the saved profile.
		var p schema.ExpertiseProfile
		if kw := viper.GetString("keywords"); kw != "" {
			p.Keywords = schema.NormalizeTerms(strings.Split(kw, ","))
		} else {
			var err error
			p, err = profile.Load(cfg.ProfilePath)
			if err != nil {
				contract.LogFatal("Cannot load expertise profile", err)
			}
		}

		if err := core.ExecuteRecommend(rootCtx, cfg, issueSource, storeManager, p); err != nil {
			contract.LogFatal("Cannot recommend issues", err)
		}
	},
}
