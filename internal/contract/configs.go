package contract

import (
	"fmt"
	"maps"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/triagehq/triage/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 10
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
	DefaultStaleDays   = 30
	DefaultTokenEnv    = "GITHUB_TOKEN"
	DefaultIssueState  = "open"
)

// Default priority scoring parameters. Label weights and the age bonus can be
// overridden from the config file; thresholds are required to stay totally
// ordered (high > medium >= 0).
const (
	DefaultHighThreshold   = 30
	DefaultMediumThreshold = 15
	DefaultAgeBonusPerDay  = 1.0
	DefaultAgeBonusCap     = 10.0
)

// DefaultSnapshotTTL is how long a fetched issue snapshot stays fresh.
const DefaultSnapshotTTL = 15 * time.Minute

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds pprof profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(prof *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		prof.Enabled = true
		prof.Prefix = profilePrefix
	}
	return nil
}

// PrioritiesRawInput holds the label buckets from the YAML config file.
type PrioritiesRawInput struct {
	High   []string `mapstructure:"high"`
	Medium []string `mapstructure:"medium"`
	Low    []string `mapstructure:"low"`
}

// LabelWeightsRawInput holds per-bucket label weight overrides.
// Use int pointers so absent fields fall back to defaults.
type LabelWeightsRawInput struct {
	High   *int `mapstructure:"high"`
	Medium *int `mapstructure:"medium"`
	Low    *int `mapstructure:"low"`
}

// ThresholdsRawInput holds priority tier cutoffs from the YAML config file.
type ThresholdsRawInput struct {
	High   *int `mapstructure:"high"`
	Medium *int `mapstructure:"medium"`
}

// AgeBonusRawInput holds age bonus overrides from the YAML config file.
type AgeBonusRawInput struct {
	PerDay *float64 `mapstructure:"per_day"`
	Cap    *float64 `mapstructure:"cap"`
}

// RecommendWeightsRawInput holds match-scoring weight overrides.
type RecommendWeightsRawInput struct {
	Keywords *float64 `mapstructure:"keywords"`
	Paths    *float64 `mapstructure:"paths"`
	Labels   *float64 `mapstructure:"labels"`
}

// PreferencesRawInput holds contribution preferences from the YAML config file.
type PreferencesRawInput struct {
	IssueTypes []string `mapstructure:"issue_types"`
}

// Config holds the runtime configuration for triage.
// This struct remains the "final, validated" config.
type Config struct {
	Repository  string // owner/name
	TokenEnv    string // env var holding the GitHub token
	IssueState  string
	ResultLimit int
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	Refresh     bool
	ProfilePath string

	StaleDays   int
	SnapshotTTL time.Duration

	// PriorityLabels maps a tier to the configured label set for that bucket.
	PriorityLabels map[schema.PriorityTier][]string

	// LabelWeights is the per-bucket score contribution of a label match.
	LabelWeights map[schema.PriorityTier]int

	HighThreshold   int
	MediumThreshold int

	AgeBonusPerDay float64
	AgeBonusCap    float64

	ExpertiseMapping    schema.ExpertiseMapping
	PreferredIssueTypes []string

	// RecommendWeights is a mapping of [Signal] = Weight for match scoring.
	RecommendWeights map[schema.RecommendSignal]float64

	SnapshotBackend   schema.DatabaseBackend
	SnapshotDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Repository        string `mapstructure:"repository"`
	TokenEnv          string `mapstructure:"token-env"`
	State             string `mapstructure:"state"`
	Limit             int    `mapstructure:"limit"`
	Workers           int    `mapstructure:"workers"`
	Precision         int    `mapstructure:"precision"`
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Width             int    `mapstructure:"width"`
	Color             string `mapstructure:"color"`
	Refresh           bool   `mapstructure:"refresh"`
	ProfilePath       string `mapstructure:"profile-path"`
	SnapshotBackend   string `mapstructure:"snapshot-backend"`
	SnapshotDBConnect string `mapstructure:"snapshot-db-connect"`
	HistoryBackend    string `mapstructure:"history-backend"`
	HistoryDBConnect  string `mapstructure:"history-db-connect"`

	// --- Fields from config file only ---
	StaleDays        int                      `mapstructure:"stale_days"`
	SnapshotTTL      string                   `mapstructure:"snapshot_ttl"`
	IssuePriorities  PrioritiesRawInput       `mapstructure:"issue_priorities"`
	LabelWeights     LabelWeightsRawInput     `mapstructure:"label_weights"`
	Thresholds       ThresholdsRawInput       `mapstructure:"priority_thresholds"`
	AgeBonus         AgeBonusRawInput         `mapstructure:"age_bonus"`
	ExpertiseMapping map[string][]string      `mapstructure:"expertise_mapping"`
	Preferences      PreferencesRawInput      `mapstructure:"contribution_preferences"`
	RecommendWeights RecommendWeightsRawInput `mapstructure:"recommend_weights"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.PriorityLabels != nil {
		clone.PriorityLabels = make(map[schema.PriorityTier][]string)
		for tier, labels := range c.PriorityLabels {
			clone.PriorityLabels[tier] = slices.Clone(labels)
		}
	}
	if c.LabelWeights != nil {
		clone.LabelWeights = make(map[schema.PriorityTier]int)
		maps.Copy(clone.LabelWeights, c.LabelWeights)
	}
	if c.ExpertiseMapping != nil {
		clone.ExpertiseMapping = make(schema.ExpertiseMapping)
		for category, globs := range c.ExpertiseMapping {
			clone.ExpertiseMapping[category] = slices.Clone(globs)
		}
	}
	if c.PreferredIssueTypes != nil {
		clone.PreferredIssueTypes = slices.Clone(c.PreferredIssueTypes)
	}
	if c.RecommendWeights != nil {
		clone.RecommendWeights = make(map[schema.RecommendSignal]float64)
		maps.Copy(clone.RecommendWeights, c.RecommendWeights)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. It fails fast on the first invalid
// field so misconfiguration is reported before any fetch or scoring work.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processRepository(cfg, input); err != nil {
		return err
	}
	if err := processScoringRules(cfg, input); err != nil {
		return err
	}
	if err := processRecommendRules(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Refresh = input.Refresh
	cfg.ProfilePath = input.ProfilePath

	cfg.IssueState = strings.ToLower(strings.TrimSpace(input.State))
	if cfg.IssueState == "" {
		cfg.IssueState = DefaultIssueState
	}
	switch cfg.IssueState {
	case "open", "closed", "all":
	default:
		return fmt.Errorf("invalid state '%s'. must be open, closed, all", input.State)
	}

	cfg.TokenEnv = strings.TrimSpace(input.TokenEnv)
	if cfg.TokenEnv == "" {
		cfg.TokenEnv = DefaultTokenEnv
	}

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	// --- 4. Stale days and snapshot TTL ---
	cfg.StaleDays = input.StaleDays
	if cfg.StaleDays == 0 {
		cfg.StaleDays = DefaultStaleDays
	}
	if cfg.StaleDays < 0 {
		return fmt.Errorf("stale_days must be greater than 0 (received %d)", input.StaleDays)
	}

	cfg.SnapshotTTL = DefaultSnapshotTTL
	if input.SnapshotTTL != "" {
		ttl, err := time.ParseDuration(input.SnapshotTTL)
		if err != nil {
			return fmt.Errorf("invalid snapshot_ttl '%s': %w", input.SnapshotTTL, err)
		}
		if ttl <= 0 {
			return fmt.Errorf("snapshot_ttl must be positive (received %s)", input.SnapshotTTL)
		}
		cfg.SnapshotTTL = ttl
	}

	return nil
}

// processRepository validates the owner/name repository coordinate.
func processRepository(cfg *Config, input *ConfigRawInput) error {
	repo := strings.TrimSpace(input.Repository)
	if repo == "" {
		return fmt.Errorf("repository is required. set it in the config file or via --repository")
	}
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("invalid repository '%s'. expected 'owner/name'", repo)
	}
	cfg.Repository = repo
	return nil
}

// processScoringRules builds the priority scoring configuration from raw
// input, layering config overrides on top of defaults.
func processScoringRules(cfg *Config, input *ConfigRawInput) error {
	cfg.PriorityLabels = map[schema.PriorityTier][]string{
		schema.HighTier:   schema.NormalizeTerms(input.IssuePriorities.High),
		schema.MediumTier: schema.NormalizeTerms(input.IssuePriorities.Medium),
		schema.LowTier:    schema.NormalizeTerms(input.IssuePriorities.Low),
	}

	cfg.LabelWeights = schema.GetDefaultLabelWeights()
	weightOverrides := map[schema.PriorityTier]*int{
		schema.HighTier:   input.LabelWeights.High,
		schema.MediumTier: input.LabelWeights.Medium,
		schema.LowTier:    input.LabelWeights.Low,
	}
	for tier, override := range weightOverrides {
		if override == nil {
			continue
		}
		if *override < 0 {
			return fmt.Errorf("label_weights.%s must not be negative (received %d)", tier, *override)
		}
		cfg.LabelWeights[tier] = *override
	}

	cfg.HighThreshold = DefaultHighThreshold
	cfg.MediumThreshold = DefaultMediumThreshold
	if input.Thresholds.High != nil {
		cfg.HighThreshold = *input.Thresholds.High
	}
	if input.Thresholds.Medium != nil {
		cfg.MediumThreshold = *input.Thresholds.Medium
	}
	if cfg.MediumThreshold < 0 {
		return fmt.Errorf("priority_thresholds.medium must not be negative (received %d)", cfg.MediumThreshold)
	}
	if cfg.HighThreshold <= cfg.MediumThreshold {
		return fmt.Errorf("priority_thresholds.high (%d) must be greater than priority_thresholds.medium (%d)",
			cfg.HighThreshold, cfg.MediumThreshold)
	}

	cfg.AgeBonusPerDay = DefaultAgeBonusPerDay
	cfg.AgeBonusCap = DefaultAgeBonusCap
	if input.AgeBonus.PerDay != nil {
		cfg.AgeBonusPerDay = *input.AgeBonus.PerDay
	}
	if input.AgeBonus.Cap != nil {
		cfg.AgeBonusCap = *input.AgeBonus.Cap
	}
	if cfg.AgeBonusPerDay < 0 || cfg.AgeBonusCap < 0 {
		return fmt.Errorf("age_bonus values must not be negative (received per_day=%.2f cap=%.2f)",
			cfg.AgeBonusPerDay, cfg.AgeBonusCap)
	}

	return nil
}

// processRecommendRules builds the expertise mapping, preferences and match
// weights. Weights must be non-negative with a positive sum so the weighted
// average is well defined.
func processRecommendRules(cfg *Config, input *ConfigRawInput) error {
	cfg.ExpertiseMapping = make(schema.ExpertiseMapping, len(input.ExpertiseMapping))
	for category, globs := range input.ExpertiseMapping {
		cleanCategory := strings.ToLower(strings.TrimSpace(category))
		if cleanCategory == "" {
			continue
		}
		var cleaned []string
		for _, g := range globs {
			if g = strings.TrimSpace(g); g != "" {
				cleaned = append(cleaned, g)
			}
		}
		if len(cleaned) == 0 {
			return fmt.Errorf("expertise_mapping.%s must list at least one path pattern", cleanCategory)
		}
		cfg.ExpertiseMapping[cleanCategory] = cleaned
	}

	cfg.PreferredIssueTypes = schema.NormalizeTerms(input.Preferences.IssueTypes)

	cfg.RecommendWeights = schema.GetDefaultRecommendWeights()
	overrides := map[schema.RecommendSignal]*float64{
		schema.SignalKeywords: input.RecommendWeights.Keywords,
		schema.SignalPaths:    input.RecommendWeights.Paths,
		schema.SignalLabels:   input.RecommendWeights.Labels,
	}
	sum := 0.0
	for signal, override := range overrides {
		if override != nil {
			if *override < 0 {
				return fmt.Errorf("recommend_weights.%s must not be negative (received %.3f)", signal, *override)
			}
			cfg.RecommendWeights[signal] = *override
		}
		sum += cfg.RecommendWeights[signal]
	}
	if sum <= 0 {
		return fmt.Errorf("recommend_weights must have a positive sum (received %.3f)", sum)
	}

	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates snapshot and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Snapshot Backend Validation ---
	cfg.SnapshotBackend = schema.DatabaseBackend(strings.ToLower(input.SnapshotBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.SnapshotBackend]; !ok {
		return fmt.Errorf("invalid snapshot backend '%s'. must be sqlite, mysql, postgresql, none", input.SnapshotBackend)
	}
	cfg.SnapshotDBConnect = input.SnapshotDBConnect
	if err := ValidateDatabaseConnectionString(cfg.SnapshotBackend, cfg.SnapshotDBConnect); err != nil {
		return err
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend != "" {
		if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
			return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
		}
		cfg.HistoryDBConnect = input.HistoryDBConnect
		if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
			return err
		}

		// Snapshot and history storage must not collide on the same database
		if cfg.SnapshotBackend == cfg.HistoryBackend && cfg.SnapshotBackend != schema.NoneBackend {
			if cfg.SnapshotBackend == schema.SQLiteBackend {
				snapshotDBPath := cfg.SnapshotDBConnect
				if snapshotDBPath == "" {
					snapshotDBPath = GetSnapshotDBFilePath()
				}
				historyDBPath := cfg.HistoryDBConnect
				if historyDBPath == "" {
					historyDBPath = GetHistoryDBFilePath()
				}
				if snapshotDBPath == historyDBPath {
					return fmt.Errorf("snapshot and history storage must use different SQLite database files. Both resolve to %q", snapshotDBPath)
				}
			}
		}
	}

	return nil
}
