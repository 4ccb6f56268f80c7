package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/triagehq/triage/schema"
)

// Tier label constants.
const (
	HighValue   = "High"   // High tier
	MediumValue = "Medium" // Medium tier
	LowValue    = "Low"    // Low tier
)

// Color variables for console output.
var (
	HighColor   = color.New(color.FgRed, color.Bold) // highColor represents standard danger.
	MediumColor = color.New(color.FgYellow)          // mediumColor represents standard caution, not bold.
	LowColor    = color.New(color.FgCyan)            // lowColor represents informational / low-priority signal.
)

// GetPlainTierLabel returns a plain text label for a priority tier or
// complexity level. This is the core logic used for CSV, JSON, and table
// printing.
func GetPlainTierLabel(tier string) string {
	switch tier {
	case string(schema.HighTier):
		return HighValue
	case string(schema.MediumTier):
		return MediumValue
	default:
		return LowValue
	}
}

// GetColorTierLabel returns a colored text label for console output (table).
// It uses GetPlainTierLabel to determine the string, and then applies the
// appropriate color.
func GetColorTierLabel(tier string) string {
	text := GetPlainTierLabel(tier)

	switch text {
	case HighValue:
		return HighColor.Sprint(text)
	case MediumValue:
		return MediumColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// MatchesAnyGlob returns true if the given path matches any of the patterns.
// It supports simple glob patterns (using filepath.Match) when the pattern
// contains wildcard characters (*, ?, [ ]). Patterns ending with '/' are
// treated as prefixes. Patterns starting with '.' are treated as suffix
// (extension) matches. A user can provide patterns like "src/models/",
// "*.cu", "docs/**".
func MatchesAnyGlob(path string, patterns []string) bool {
	for _, pat := range patterns {
		pat = strings.TrimSpace(pat)
		if pat == "" {
			continue
		}

		// If the pattern contains glob characters, try filepath.Match.
		if strings.ContainsAny(pat, "*?[") {
			// "dir/**" matches the directory and its whole subtree;
			// filepath.Match wildcards stop at separators, so handle it here.
			if prefix, found := strings.CutSuffix(pat, "/**"); found {
				if path == prefix || strings.HasPrefix(path, prefix+"/") {
					return true
				}
				continue
			}
			p := strings.ReplaceAll(pat, "**", "*")
			if ok, err := filepath.Match(p, path); err == nil && ok {
				return true
			}
			// Also try matching against the base filename (e.g. *.py)
			if ok, err := filepath.Match(p, filepath.Base(path)); err == nil && ok {
				return true
			}
			continue
		}

		// Handle prefix, suffix, or substring matches
		switch {
		case strings.HasSuffix(pat, "/"):
			if strings.HasPrefix(path, pat) {
				return true
			}
		case strings.HasPrefix(pat, "."):
			if strings.HasSuffix(path, pat) {
				return true
			}
		case strings.Contains(path, pat):
			return true
		}
	}
	return false
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetSnapshotDBFilePath returns the path to the SQLite DB file for snapshot storage.
func GetSnapshotDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".triage_snapshot.db"
	}
	return filepath.Join(homeDir, ".triage_snapshot.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".triage_history.db"
	}
	return filepath.Join(homeDir, ".triage_history.db")
}

// GetDefaultProfilePath returns the path to the expertise profile file.
func GetDefaultProfilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".triage_profile.yaml"
	}
	return filepath.Join(homeDir, ".triage_profile.yaml")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 to ensure there's space for both the "..." suffix and
// at least one character of content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
