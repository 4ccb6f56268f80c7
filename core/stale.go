package core

import (
	"time"

	"github.com/triagehq/triage/schema"
)

// isStale reports whether an issue is open, unassigned, and inactive for
// longer than staleDays. Pure predicate; flagging never closes anything.
func isStale(issue schema.Issue, staleDays int, now time.Time) bool {
	if !issue.IsOpen() || issue.Assignee != "" {
		return false
	}
	return now.Sub(issue.UpdatedAt) > time.Duration(staleDays)*24*time.Hour
}
