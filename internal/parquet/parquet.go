// Package parquet provides data structures and functions for exporting triage
// run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/triagehq/triage/schema"
)

// TriageRun represents a single triage run with metadata.
// This struct maps to the triage_runs database table.
type TriageRun struct {
	// RunID is the unique identifier for this triage run
	RunID int64 `parquet:"run_id,snappy"`

	// Repository is the owner/name slug the run scored
	Repository string `parquet:"repository,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalIssuesScored is the number of issues scored in this run
	TotalIssuesScored int32 `parquet:"total_issues_scored,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// IssueScore represents the scoring result for a single issue in a run.
// This struct maps to the triage_issue_scores database table.
type IssueScore struct {
	// RunID references the parent triage run
	RunID int64 `parquet:"run_id,snappy"`

	// IssueNumber is the issue number within the repository
	IssueNumber int64 `parquet:"issue_number,snappy"`

	// Title is the issue title at scoring time
	Title string `parquet:"title,snappy"`

	// ScoredAt is when this issue was scored (stored as TIMESTAMP with nanosecond precision)
	ScoredAt time.Time `parquet:"scored_at,snappy"`

	// PriorityScore is the rounded priority score
	PriorityScore int32 `parquet:"priority_score,snappy"`

	// Tier is the priority tier (high, medium, low)
	Tier string `parquet:"tier,snappy"`

	// ComplexityScore is the raw complexity estimate
	ComplexityScore float64 `parquet:"complexity_score,snappy"`

	// Complexity is the complexity level (high, medium, low)
	Complexity string `parquet:"complexity,snappy"`

	// CommentCount is the number of comments on the issue
	CommentCount int32 `parquet:"comment_count,snappy"`

	// AgeDays is the issue age in days at scoring time
	AgeDays float64 `parquet:"age_days,snappy"`

	// Stale indicates whether the issue matched the staleness criteria
	Stale bool `parquet:"stale,snappy"`
}

// WriteTriageRunsParquet writes a slice of TriageRun structs to a Parquet file.
func WriteTriageRunsParquet(data []TriageRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the TriageRun struct tags
	writer := parquet.NewGenericWriter[TriageRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteIssueScoresParquet writes a slice of IssueScore structs to a Parquet file.
func WriteIssueScoresParquet(data []IssueScore, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the IssueScore struct tags
	writer := parquet.NewGenericWriter[IssueScore](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertTriageRunRecords converts schema.TriageRunRecord to TriageRun for Parquet export.
func ConvertTriageRunRecords(records []schema.TriageRunRecord) []TriageRun {
	result := make([]TriageRun, len(records))
	for i, record := range records {
		result[i] = TriageRun{
			RunID:             record.RunID,
			Repository:        record.Repository,
			StartTime:         record.StartTime,
			EndTime:           record.EndTime,
			RunDurationMs:     record.RunDurationMs,
			TotalIssuesScored: record.TotalIssuesScored,
			ConfigParams:      record.ConfigParams,
		}
	}
	return result
}

// ConvertIssueScoreRecords converts schema.IssueScoreRecord to IssueScore for Parquet export.
func ConvertIssueScoreRecords(records []schema.IssueScoreRecord) []IssueScore {
	result := make([]IssueScore, len(records))
	for i, record := range records {
		result[i] = IssueScore{
			RunID:           record.RunID,
			IssueNumber:     record.IssueNumber,
			Title:           record.Title,
			ScoredAt:        record.ScoredAt,
			PriorityScore:   record.PriorityScore,
			Tier:            record.Tier,
			ComplexityScore: record.ComplexityScore,
			Complexity:      record.Complexity,
			CommentCount:    record.CommentCount,
			AgeDays:         record.AgeDays,
			Stale:           record.Stale,
		}
	}
	return result
}
