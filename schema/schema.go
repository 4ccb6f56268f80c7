// Package schema has shared types for issue triage, scoring and persistence.
package schema

import "time"

// Issue is a normalized GitHub issue snapshot.
type Issue struct {
	Number       int       `json:"number"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	Labels       []string  `json:"labels"` // lowercased label names
	State        string    `json:"state"`
	Assignee     string    `json:"assignee"` // empty when unassigned
	Author       string    `json:"author"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	URL          string    `json:"url"`
}

// ScoredIssue is an issue with every triage dimension computed.
type ScoredIssue struct {
	Issue           Issue           `json:"issue"`
	PriorityScore   int             `json:"priority_score"`
	Tier            PriorityTier    `json:"tier"`
	Complexity      ComplexityLevel `json:"complexity"`
	ComplexityScore float64         `json:"complexity_score"`
	ReferencedFiles []string        `json:"referenced_files"`
	MatchScore      float64         `json:"match_score"` // expertise match, set by recommend
}

// ExpertiseProfile is the maintainer's declared expertise.
type ExpertiseProfile struct {
	Keywords []string `json:"keywords" mapstructure:"keywords"`
}

// IsEmpty reports whether the profile declares no expertise at all.
func (p ExpertiseProfile) IsEmpty() bool {
	return len(p.Keywords) == 0
}

// ExpertiseMapping maps an expertise category to repository path globs.
type ExpertiseMapping map[string][]string
