package schema

import (
	"sort"
	"strings"
	"time"
)

// hoursPerDay converts durations to fractional days.
const hoursPerDay = 24.0

// AgeDays returns the age of the issue in fractional days relative to now.
// Clock skew can make CreatedAt land in the future; age never goes negative.
func AgeDays(issue Issue, now time.Time) float64 {
	days := now.Sub(issue.CreatedAt).Hours() / hoursPerDay
	if days < 0 {
		return 0
	}
	return days
}

// InactiveDays returns the days since the issue was last updated relative to now.
func InactiveDays(issue Issue, now time.Time) float64 {
	days := now.Sub(issue.UpdatedAt).Hours() / hoursPerDay
	if days < 0 {
		return 0
	}
	return days
}

// IsOpen reports whether the issue is in the open state.
func (i Issue) IsOpen() bool {
	return strings.EqualFold(i.State, "open")
}

// NormalizeTerms lowercases, trims, dedupes and sorts a term list. Used for
// labels and expertise keywords so matching is case-insensitive everywhere.
func NormalizeTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	var out []string
	for _, t := range terms {
		ct := strings.ToLower(strings.TrimSpace(t))
		if ct == "" {
			continue
		}
		if _, ok := seen[ct]; ok {
			continue
		}
		seen[ct] = struct{}{}
		out = append(out, ct)
	}
	sort.Strings(out)
	return out
}

// FormatLabels formats labels as a single comma-separated cell value.
func FormatLabels(labels []string) string {
	return strings.Join(labels, ", ")
}
