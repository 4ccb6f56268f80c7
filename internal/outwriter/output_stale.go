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

// PrintStaleResults outputs stale issues, dispatching based on the output format configured.
func PrintStaleResults(results []schema.ScoredIssue, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForStale(w, results, time.Now())
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"rank", "number", "title", "inactive_days", "age_days", "score", "tier", "url"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				return writeCSVRowsForStale(csvWriter, results, fmtFloat, intFmt)
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStaleTable(results, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeStaleTable generates and writes the human-readable table.
func writeStaleTable(results []schema.ScoredIssue, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Issue", "Title", "Inactive", "Age", "Score", "Tier"}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	now := time.Now()
	var data [][]string
	for i, si := range results {
		row := []string{
			strconv.Itoa(i + 1),                 // Rank
			fmt.Sprintf("#%d", si.Issue.Number), // Issue
			contract.TruncateText(si.Issue.Title, getMaxTableTitleWidth(cfg)), // Title
			fmtFloat(schema.InactiveDays(si.Issue, now)), // Inactive in days
			fmtFloat(schema.AgeDays(si.Issue, now)),      // Age in days
			fmt.Sprintf(intFmt, si.PriorityScore),        // Score
			tierCell(si.Tier, cfg),                       // Tier
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d stale issues for %s (inactive > %d days, unassigned)\n", len(results), cfg.Repository, cfg.StaleDays); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Triage completed in %v with %d workers. Snapshot backend: %s\n", duration, cfg.Workers, cfg.SnapshotBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVRowsForStale writes the stale issue rows in CSV format.
func writeCSVRowsForStale(w *csv.Writer, results []schema.ScoredIssue, fmtFloat func(float64) string, intFmt string) error {
	now := time.Now()
	for i, si := range results {
		rec := []string{
			strconv.Itoa(i + 1),                          // Rank
			strconv.Itoa(si.Issue.Number),                // Issue Number
			si.Issue.Title,                               // Title
			fmtFloat(schema.InactiveDays(si.Issue, now)), // Inactive in Days
			fmtFloat(schema.AgeDays(si.Issue, now)),      // Age in Days
			fmt.Sprintf(intFmt, si.PriorityScore),        // Priority Score
			string(si.Tier),                              // Tier
			si.Issue.URL,                                 // URL
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForStale writes the stale issues in JSON format.
func writeJSONResultsForStale(w io.Writer, results []schema.ScoredIssue, now time.Time) error {
	type JSONStaleResult struct {
		Rank         int     `json:"rank"`
		InactiveDays float64 `json:"inactive_days"`
		schema.ScoredIssue
	}

	output := make([]JSONStaleResult, len(results))
	for i, si := range results {
		output[i] = JSONStaleResult{
			Rank:         i + 1,
			InactiveDays: schema.InactiveDays(si.Issue, now),
			ScoredIssue:  si,
		}
	}

	return writeJSON(w, output)
}
