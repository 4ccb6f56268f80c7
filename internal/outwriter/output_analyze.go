package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/triagehq/triage/internal/contract"
	"github.com/triagehq/triage/schema"
)

// PrintAnalyzeResult outputs the triage detail for a single issue, dispatching
// based on the output format configured.
func PrintAnalyzeResult(result *schema.ScoredIssue, approach string, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultForAnalyze(w, result, approach)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"number", "title", "score", "tier", "complexity_score", "complexity", "comments", "age_days", "referenced_files", "approach"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				return writeCSVRowForAnalyze(csvWriter, result, approach, fmtFloat, intFmt)
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalyzeDetail(w, result, approach, cfg, fmtFloat, intFmt)
		}, "Wrote analysis")
	}
	return nil
}

// writeAnalyzeDetail generates the human-readable detail view.
func writeAnalyzeDetail(w io.Writer, result *schema.ScoredIssue, approach string, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	issue := result.Issue
	now := time.Now()

	if _, err := fmt.Fprintf(w, "Issue #%d: %s\n", issue.Number, issue.Title); err != nil {
		return err
	}
	if issue.URL != "" {
		if _, err := fmt.Fprintf(w, "URL: %s\n", issue.URL); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "State: %s\n", issue.State); err != nil {
		return err
	}
	if issue.Assignee != "" {
		if _, err := fmt.Fprintf(w, "Assignee: %s\n", issue.Assignee); err != nil {
			return err
		}
	}
	if len(issue.Labels) > 0 {
		if _, err := fmt.Fprintf(w, "Labels: %s\n", schema.FormatLabels(issue.Labels)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Priority Score: "+intFmt+" (%s)\n", result.PriorityScore, tierCell(result.Tier, cfg)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Complexity: %s (%s)\n", fmtFloat(result.ComplexityScore), result.Complexity); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Comments: "+intFmt+"\n", issue.CommentCount); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Age: %s days (inactive %s days)\n", fmtFloat(schema.AgeDays(issue, now)), fmtFloat(schema.InactiveDays(issue, now))); err != nil {
		return err
	}

	if len(result.ReferencedFiles) > 0 {
		if _, err := fmt.Fprintln(w, "\nReferenced Files:"); err != nil {
			return err
		}
		for _, f := range result.ReferencedFiles {
			if _, err := fmt.Fprintf(w, "  - %s\n", f); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(w, "\nSuggested Approach:\n%s\n", approach); err != nil {
		return err
	}
	return nil
}

// writeCSVRowForAnalyze writes the single-issue detail as one CSV row.
func writeCSVRowForAnalyze(w *csv.Writer, result *schema.ScoredIssue, approach string, fmtFloat func(float64) string, intFmt string) error {
	issue := result.Issue
	rec := []string{
		strconv.Itoa(issue.Number),                       // Issue Number
		issue.Title,                                      // Title
		fmt.Sprintf(intFmt, result.PriorityScore),        // Priority Score
		string(result.Tier),                              // Tier
		fmtFloat(result.ComplexityScore),                 // Complexity Score
		string(result.Complexity),                        // Complexity Level
		fmt.Sprintf(intFmt, issue.CommentCount),          // Comments
		fmtFloat(schema.AgeDays(issue, time.Now())),      // Age in Days
		strings.Join(result.ReferencedFiles, "|"),        // Referenced Files
		approach,                                         // Suggested Approach
	}
	return w.Write(rec)
}

// writeJSONResultForAnalyze writes the single-issue detail in JSON format.
func writeJSONResultForAnalyze(w io.Writer, result *schema.ScoredIssue, approach string) error {
	type JSONAnalyzeResult struct {
		schema.ScoredIssue
		SuggestedApproach string `json:"suggested_approach"`
	}

	return writeJSON(w, JSONAnalyzeResult{
		ScoredIssue:       *result,
		SuggestedApproach: approach,
	})
}
