package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/triagehq/triage/internal/contract"
	"github.com/triagehq/triage/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintIssueResults outputs scored issues, dispatching based on the output format configured.
func PrintIssueResults(results []schema.ScoredIssue, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeIssueJSONResults(results, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeIssueCSVResults(results, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeIssueTable(results, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeIssueJSONResults handles opening the file and calling the JSON writer.
func writeIssueJSONResults(results []schema.ScoredIssue, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForIssues(w, results)
	}, "Wrote JSON")
}

// writeIssueCSVResults handles opening the file and calling the CSV writer.
func writeIssueCSVResults(results []schema.ScoredIssue, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForIssues(csvWriter, results, fmtFloat, intFmt)
	}, "Wrote CSV")
}

// writeIssueTable generates and writes the human-readable table.
func writeIssueTable(results []schema.ScoredIssue, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Issue", "Title", "Score", "Tier", "Cmplx", "Comments", "Age"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	now := time.Now()
	var data [][]string
	for i, si := range results {
		row := []string{
			strconv.Itoa(i + 1),                         // Rank
			fmt.Sprintf("#%d", si.Issue.Number),         // Issue
			contract.TruncateText(si.Issue.Title, getMaxTableTitleWidth(cfg)), // Title
			fmt.Sprintf(intFmt, si.PriorityScore),       // Score
			tierCell(si.Tier, cfg),                      // Tier
			string(si.Complexity),                       // Cmplx
			fmt.Sprintf(intFmt, si.Issue.CommentCount),  // Comments
			fmtFloat(schema.AgeDays(si.Issue, now)),     // Age in days
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute summary stats
	totalComments := 0
	highCount := 0
	for _, si := range results {
		totalComments += si.Issue.CommentCount
		if si.Tier == schema.HighTier {
			highCount++
		}
	}
	if _, err := fmt.Fprintf(writer, "Showing %d issues for %s (high priority: %d, total comments: %d)\n", len(results), cfg.Repository, highCount, totalComments); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Triage completed in %v with %d workers. Snapshot backend: %s\n", duration, cfg.Workers, cfg.SnapshotBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForIssues writes the scored issues in CSV format.
func writeCSVResultsForIssues(w *csv.Writer, results []schema.ScoredIssue, fmtFloat func(float64) string, intFmt string) error {
	// CSV header
	header := []string{
		"rank",
		"number",
		"title",
		"score",
		"tier",
		"complexity_score",
		"complexity",
		"comments",
		"age_days",
		"labels",
		"url",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	now := time.Now()
	for i, si := range results {
		rec := []string{
			strconv.Itoa(i + 1),                        // Rank
			strconv.Itoa(si.Issue.Number),              // Issue Number
			si.Issue.Title,                             // Title
			fmt.Sprintf(intFmt, si.PriorityScore),      // Priority Score
			string(si.Tier),                            // Tier
			fmtFloat(si.ComplexityScore),               // Complexity Score
			string(si.Complexity),                      // Complexity Level
			fmt.Sprintf(intFmt, si.Issue.CommentCount), // Comments
			fmtFloat(schema.AgeDays(si.Issue, now)),    // Age in Days
			schema.FormatLabels(si.Issue.Labels),       // Labels
			si.Issue.URL,                               // URL
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForIssues writes the scored issues in JSON format.
func writeJSONResultsForIssues(w io.Writer, results []schema.ScoredIssue) error {
	// 1. Prepare the data structure for JSON with rank added
	type JSONIssueResult struct {
		Rank int `json:"rank"`
		schema.ScoredIssue
	}

	output := make([]JSONIssueResult, len(results))
	for i, si := range results {
		output[i] = JSONIssueResult{
			Rank:        i + 1,
			ScoredIssue: si,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}
