package core

import (
	"sort"
	"strings"

	"github.com/triagehq/triage/internal/contract"
	"github.com/triagehq/triage/schema"
)

// recommend ranks scored issues against the user's expertise profile and
// returns the top matches. Three signals are each normalized to [0,1] and
// combined by weighted average: keyword overlap with title+body+labels,
// path-category overlap via the expertise mapping, and preferred-label
// overlap. Issues with zero combined score are excluded entirely; an empty
// profile yields no recommendations. The profile is never mutated.
func recommend(scored []schema.ScoredIssue, profile schema.ExpertiseProfile, cfg *contract.Config, limit int) []schema.ScoredIssue {
	if profile.IsEmpty() {
		return nil
	}

	keywords := schema.NormalizeTerms(profile.Keywords)
	categories := relevantCategories(keywords, cfg.ExpertiseMapping)

	var matched []schema.ScoredIssue
	for _, si := range scored {
		score := matchScore(si, keywords, categories, cfg)
		if score <= 0 {
			continue
		}
		si.MatchScore = score
		matched = append(matched, si)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].MatchScore != matched[j].MatchScore {
			return matched[i].MatchScore > matched[j].MatchScore
		}
		if matched[i].PriorityScore != matched[j].PriorityScore {
			return matched[i].PriorityScore > matched[j].PriorityScore
		}
		return matched[i].Issue.Number < matched[j].Issue.Number
	})

	if len(matched) > limit {
		return matched[:limit]
	}
	return matched
}

// matchScore combines the three expertise signals by weighted average.
func matchScore(si schema.ScoredIssue, keywords []string, categories map[string][]string, cfg *contract.Config) float64 {
	weights := cfg.RecommendWeights

	total := 0.0
	sum := 0.0
	for signal, weight := range weights {
		var value float64
		switch signal {
		case schema.SignalKeywords:
			value = keywordScore(si.Issue, keywords)
		case schema.SignalPaths:
			value = pathScore(si.ReferencedFiles, categories)
		case schema.SignalLabels:
			value = labelScore(si.Issue.Labels, cfg.PreferredIssueTypes)
		}
		total += weight * value
		sum += weight
	}
	return total / sum
}

// keywordScore is the fraction of profile keywords that appear anywhere in
// the issue's title, body or labels (case-insensitive substring).
func keywordScore(issue schema.Issue, keywords []string) float64 {
	haystack := strings.ToLower(issue.Title + " " + issue.Body + " " + strings.Join(issue.Labels, " "))
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			matched++
		}
	}
	return float64(matched) / float64(len(keywords))
}

// pathScore is the fraction of profile-relevant categories whose path
// patterns match any of the issue's referenced files. A profile with no
// relevant categories contributes nothing on this signal.
func pathScore(files []string, categories map[string][]string) float64 {
	if len(categories) == 0 || len(files) == 0 {
		return 0
	}
	matched := 0
	for _, globs := range categories {
		for _, f := range files {
			if contract.MatchesAnyGlob(f, globs) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(categories))
}

// labelScore is the fraction of the issue's labels found in the preferred
// issue types list.
func labelScore(labels []string, preferred []string) float64 {
	if len(labels) == 0 || len(preferred) == 0 {
		return 0
	}
	matched := 0
	for _, label := range labels {
		cl := strings.ToLower(label)
		for _, pref := range preferred {
			if strings.Contains(cl, pref) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(labels))
}

// relevantCategories selects the expertise mapping categories related to the
// profile: the category name contains a profile keyword or vice versa.
func relevantCategories(keywords []string, mapping schema.ExpertiseMapping) map[string][]string {
	selected := make(map[string][]string)
	for category, globs := range mapping {
		for _, kw := range keywords {
			if strings.Contains(category, kw) || strings.Contains(kw, category) {
				selected[category] = globs
				break
			}
		}
	}
	return selected
}
