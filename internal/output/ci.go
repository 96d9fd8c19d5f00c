package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/masmgr/timemachine-go/internal/insight"
)

// CILogWriter writes commit timelines as NDJSON (one JSON object per line) for CI pipelines.
type CILogWriter struct{}

// CILogSummary is the first line of log output in CI mode.
type CILogSummary struct {
	Type    string `json:"type"`
	Total   int    `json:"total"`
	Matched int    `json:"matched"`
}

// CICommitEntry represents a single commit in CI output.
type CICommitEntry struct {
	Type      string `json:"type"`
	SHA       string `json:"sha"`
	Timestamp int64  `json:"timestamp"`
	Author    string `json:"author"`
	Title     string `json:"title"`
}

// Write outputs the commit timeline as NDJSON.
func (w *CILogWriter) Write(report *LogReport, options OutputOptions) error {
	commits := limitTop(report.Commits, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	summary := CILogSummary{Type: "summary", Total: report.Total, Matched: len(commits)}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}
	for _, c := range commits {
		entry := CICommitEntry{
			Type:      "commit",
			SHA:       c.OID,
			Timestamp: c.Timestamp,
			Author:    c.Author.Name,
			Title:     c.Title(),
		}
		if err := writeNDJSONLine(out, entry); err != nil {
			return err
		}
	}
	return nil
}

// CIDecisionWriter writes decision reports as NDJSON for CI pipelines.
type CIDecisionWriter struct{}

// CIDecisionSummary is the first line of decision output, containing aggregate statistics.
type CIDecisionSummary struct {
	Type            string `json:"type"`
	TotalCommits    int    `json:"totalCommits"`
	TotalDecisions  int    `json:"totalDecisions"`
	HighCount       int    `json:"highCount"`
	MediumCount     int    `json:"mediumCount"`
	MaxImportance   int    `json:"maxImportance"`
	TopCategory     string `json:"topCategory,omitempty"`
	TopCategoryHits int    `json:"topCategoryHits,omitempty"`
}

// CIDecisionEntry represents a single decision in CI output.
type CIDecisionEntry struct {
	Type       string `json:"type"`
	SHA        string `json:"sha"`
	Category   string `json:"category"`
	Importance int    `json:"importance"`
	Level      string `json:"level"`
	Title      string `json:"title"`
}

// Write outputs the decision report as NDJSON.
func (w *CIDecisionWriter) Write(report *DecisionReport, options OutputOptions) error {
	decisions := limitTop(report.Decisions, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	summary := CIDecisionSummary{
		Type:           "summary",
		TotalCommits:   report.TotalCommits,
		TotalDecisions: len(decisions),
	}
	for _, d := range decisions {
		switch importanceLevel(d.Importance) {
		case "high":
			summary.HighCount++
		case "medium":
			summary.MediumCount++
		}
		summary.MaxImportance = max(summary.MaxImportance, d.Importance)
	}
	counts := insight.CountByCategory(decisions)
	for _, category := range insight.AllCategories() {
		if counts[category] > summary.TopCategoryHits {
			summary.TopCategory = string(category)
			summary.TopCategoryHits = counts[category]
		}
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	for _, d := range decisions {
		entry := CIDecisionEntry{
			Type:       "decision",
			SHA:        d.OID,
			Category:   string(d.Category),
			Importance: d.Importance,
			Level:      importanceLevel(d.Importance),
			Title:      d.Title(),
		}
		if err := writeNDJSONLine(out, entry); err != nil {
			return err
		}
	}
	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
