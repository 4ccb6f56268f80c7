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

// PrintRecommendResults outputs expertise-ranked issues, dispatching based on the
// output format configured.
func PrintRecommendResults(results []schema.ScoredIssue, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForRecommend(w, results)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"rank", "number", "title", "match", "score", "tier", "complexity", "labels", "url"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				return writeCSVRowsForRecommend(csvWriter, results, fmtFloat, intFmt)
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecommendTable(results, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeRecommendTable generates and writes the human-readable table.
func writeRecommendTable(results []schema.ScoredIssue, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	if len(results) == 0 {
		if _, err := fmt.Fprintln(writer, "No matching issues found. Populate your expertise profile to get recommendations."); err != nil {
			return err
		}
		return nil
	}

	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Issue", "Title", "Match", "Score", "Tier", "Cmplx"}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, si := range results {
		row := []string{
			strconv.Itoa(i + 1),                 // Rank
			fmt.Sprintf("#%d", si.Issue.Number), // Issue
			contract.TruncateText(si.Issue.Title, getMaxTableTitleWidth(cfg)), // Title
			fmtFloat(si.MatchScore * 100),         // Match as a percentage
			fmt.Sprintf(intFmt, si.PriorityScore), // Score
			tierCell(si.Tier, cfg),                // Tier
			string(si.Complexity),                 // Cmplx
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d recommended issues for %s\n", len(results), cfg.Repository); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Triage completed in %v with %d workers. Snapshot backend: %s\n", duration, cfg.Workers, cfg.SnapshotBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVRowsForRecommend writes the recommendation rows in CSV format.
func writeCSVRowsForRecommend(w *csv.Writer, results []schema.ScoredIssue, fmtFloat func(float64) string, intFmt string) error {
	for i, si := range results {
		rec := []string{
			strconv.Itoa(i + 1),                   // Rank
			strconv.Itoa(si.Issue.Number),         // Issue Number
			si.Issue.Title,                        // Title
			fmtFloat(si.MatchScore),               // Match Score
			fmt.Sprintf(intFmt, si.PriorityScore), // Priority Score
			string(si.Tier),                       // Tier
			string(si.Complexity),                 // Complexity Level
			schema.FormatLabels(si.Issue.Labels),  // Labels
			si.Issue.URL,                          // URL
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForRecommend writes the recommendations in JSON format.
func writeJSONResultsForRecommend(w io.Writer, results []schema.ScoredIssue) error {
	type JSONRecommendResult struct {
		Rank int `json:"rank"`
		schema.ScoredIssue
	}

	output := make([]JSONRecommendResult, len(results))
	for i, si := range results {
		output[i] = JSONRecommendResult{
			Rank:        i + 1,
			ScoredIssue: si,
		}
	}

	return writeJSON(w, output)
}
