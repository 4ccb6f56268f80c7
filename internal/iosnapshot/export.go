package iosnapshot

import (
	"errors"
	"fmt"

	"github.com/triagehq/triage/internal/parquet"
)

// ExecuteHistoryExport performs the actual export of run history data to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the run history store
	store := Manager.GetRunStore()
	if store == nil {
		return errors.New("run history tracking is not configured")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total triage runs: %d\n", status.TotalRuns)
	fmt.Printf("Total issue score records: %d\n", status.TableSizes[issueScoresTable])

	// Retrieve all triage runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve triage runs: %w", err)
	}

	// Retrieve all issue scores
	issueScores, err := store.GetAllIssueScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve issue scores: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertTriageRunRecords(runs)
	parquetScores := parquet.ConvertIssueScoreRecords(issueScores)

	// Write triage runs to Parquet
	runsFile := outputFile + ".triage_runs.parquet"
	if err := parquet.WriteTriageRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write triage runs: %w", err)
	}
	fmt.Printf("Exported %d triage runs to: %s\n", len(parquetRuns), runsFile)

	// Write issue scores to Parquet
	scoresFile := outputFile + ".issue_scores.parquet"
	if err := parquet.WriteIssueScoresParquet(parquetScores, scoresFile); err != nil {
		return fmt.Errorf("failed to write issue scores: %w", err)
	}
	fmt.Printf("Exported %d issue score records to: %s\n", len(parquetScores), scoresFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
