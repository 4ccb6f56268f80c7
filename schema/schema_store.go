package schema

import "time"

// TriageRunRecord represents a row from the triage_runs table.
type TriageRunRecord struct {
	RunID             int64
	Repository        string
	StartTime         time.Time
	EndTime           *time.Time
	RunDurationMs     *int32
	TotalIssuesScored int32
	ConfigParams      *string
}

// IssueScoreRecord represents a row from the triage_issue_scores table.
type IssueScoreRecord struct {
	RunID           int64
	IssueNumber     int64
	Title           string
	ScoredAt        time.Time
	PriorityScore   int32
	Tier            string
	ComplexityScore float64
	Complexity      string
	CommentCount    int32
	AgeDays         float64
	Stale           bool
}
