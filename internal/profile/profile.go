// Package profile loads and saves the maintainer's expertise profile.
package profile

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"github.com/triagehq/triage/schema"
)

// Load reads the expertise profile from the given YAML file. A missing file is
// not an error; it yields an empty profile so commands can degrade gracefully.
func Load(path string) (schema.ExpertiseProfile, error) {
	var p schema.ExpertiseProfile

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return p, nil
	}

	// A dedicated viper instance keeps profile keys out of the main config.
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return p, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	if err := v.Unmarshal(&p); err != nil {
		return p, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}

	p.Keywords = schema.NormalizeTerms(p.Keywords)
	return p, nil
}

// Save writes the expertise profile to the given YAML file, creating or
// replacing it.
func Save(path string, p schema.ExpertiseProfile) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.Set("keywords", schema.NormalizeTerms(p.Keywords))

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write profile %s: %w", path, err)
	}
	return nil
}
