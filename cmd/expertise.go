package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/triagehq/triage/internal/contract"
	"github.com/triagehq/triage/internal/profile"
	"github.com/triagehq/triage/schema"
)

// expertiseSetup loads minimal configuration needed for profile operations.
// Profile commands never touch GitHub or the database, so the full shared
// setup (repository validation, store init) is skipped.
func expertiseSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	profilePath := viper.GetString("profile-path")
	if profilePath == "" {
		profilePath = contract.GetDefaultProfilePath()
	}
	cfg.ProfilePath = profilePath

	return nil
}

// expertiseSetupWrapper wraps expertiseSetup to provide PreRunE for expertise commands.
func expertiseSetupWrapper(_ *cobra.Command, _ []string) error {
	return expertiseSetup()
}

// expertiseCmd focused on expertise profile management.
var expertiseCmd = &cobra.Command{
	Use:   "expertise",
	Short: "Manage the expertise profile used by 'triage recommend'",
	Long: `Manage the saved expertise profile that powers issue recommendations.

The profile is a small YAML file (default: ~/.triage_profile.yaml) holding
the keywords that describe your areas of expertise. Keywords are matched
against issue titles, bodies, referenced file paths and labels.

Subcommands:
  set  - Replace the profile keywords
  show - Print the current profile

Examples:
  # Declare what you know
  triage expertise set tokenizer cuda training

  # Check what is saved
  triage expertise show`,
}

// expertiseSetCmd replaces the saved expertise keywords.
var expertiseSetCmd = &cobra.Command{
	Use:   "set <keywords...>",
	Short: "Replace the saved expertise keywords",
	Long: `Replace the expertise profile with the given keywords.

Keywords are lowercased, trimmed and deduplicated before saving. The whole
profile is replaced on every invocation; there is no append mode.

Examples:
  # Save a fresh set of keywords
  triage expertise set tokenizer cuda "distributed training"

  # Keep the profile somewhere else
  triage expertise set parser lexer --profile-path ./team-profile.yaml`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: expertiseSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		p := schema.ExpertiseProfile{Keywords: schema.NormalizeTerms(args)}
		if err := profile.Save(cfg.ProfilePath, p); err != nil {
			contract.LogFatal("Failed to save expertise profile", err)
		}
		fmt.Printf("Saved %d keywords to %s\n", len(p.Keywords), cfg.ProfilePath)
	},
}

// expertiseShowCmd prints the saved expertise profile.
var expertiseShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved expertise keywords",
	Long: `Print the keywords currently saved in the expertise profile.

Examples:
  # Check what is saved
  triage expertise show`,
	Args:    cobra.NoArgs,
	PreRunE: expertiseSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		p, err := profile.Load(cfg.ProfilePath)
		if err != nil {
			contract.LogFatal("Failed to load expertise profile", err)
		}
		if p.IsEmpty() {
			fmt.Printf("No expertise profile found at %s. Use 'triage expertise set' to create one.\n", cfg.ProfilePath)
			return
		}
		fmt.Printf("Expertise profile (%s):\n", cfg.ProfilePath)
		for _, kw := range p.Keywords {
			fmt.Printf("  - %s\n", kw)
		}
	},
}
