package output

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"

	"github.com/masmgr/timemachine-go/internal/git"
	"github.com/masmgr/timemachine-go/internal/insight"
)

// JSONLogWriter writes commit timelines as JSON.
type JSONLogWriter struct{}

// JSONLogReport is the JSON output structure for a commit timeline.
type JSONLogReport struct {
	Repo        string       `json:"repo"`
	GeneratedAt string       `json:"generatedAt"`
	Total       int          `json:"total"`
	Commits     []git.Commit `json:"commits"`
}

// Write outputs the commit timeline as JSON.
func (w *JSONLogWriter) Write(report *LogReport, options OutputOptions) error {
	jsonReport := JSONLogReport{
		Repo:        report.Repo,
		GeneratedAt: formatTimestamp(report.GeneratedAt),
		Total:       report.Total,
		Commits:     nonNil(limitTop(report.Commits, options.Top)),
	}
	return writeJSON(jsonReport, options.OutputPath)
}

// JSONCommitWriter writes a single commit as JSON.
type JSONCommitWriter struct{}

// JSONCommitReport is the JSON output structure for a single commit.
type JSONCommitReport struct {
	Repo    string           `json:"repo"`
	Commit  git.Commit       `json:"commit"`
	Changes []git.FileChange `json:"changes"`
}

// Write outputs the commit and its changes as JSON.
func (w *JSONCommitWriter) Write(report *CommitReport, options OutputOptions) error {
	jsonReport := JSONCommitReport{
		Repo:    report.Repo,
		Commit:  report.Commit,
		Changes: nonNil(limitTop(report.Changes, options.Top)),
	}
	return writeJSON(jsonReport, options.OutputPath)
}

// JSONDecisionWriter writes decision reports as JSON.
type JSONDecisionWriter struct{}

// JSONDecisionReport is the JSON output structure for decisions.
type JSONDecisionReport struct {
	Repo           string                   `json:"repo"`
	GeneratedAt    string                   `json:"generatedAt"`
	TotalCommits   int                      `json:"totalCommits"`
	TotalDecisions int                      `json:"totalDecisions"`
	ByCategory     map[insight.Category]int `json:"byCategory"`
	Items          []JSONDecisionItem       `json:"items"`
}

// JSONDecisionItem is the JSON output structure for a single decision.
type JSONDecisionItem struct {
	SHA        string `json:"sha"`
	When       string `json:"when"`
	Author     string `json:"author"`
	Message    string `json:"message"`
	Category   string `json:"category"`
	Importance int    `json:"importance"`
	Level      string `json:"level"`
}

// Write outputs the decision report as JSON.
func (w *JSONDecisionWriter) Write(report *DecisionReport, options OutputOptions) error {
	items := lo.Map(limitTop(report.Decisions, options.Top), func(d insight.Decision, _ int) JSONDecisionItem {
		return JSONDecisionItem{
			SHA:        d.OID,
			When:       formatTimestamp(d.Time()),
			Author:     d.Author.Name,
			Message:    d.Message,
			Category:   string(d.Category),
			Importance: d.Importance,
			Level:      importanceLevel(d.Importance),
		}
	})

	jsonReport := JSONDecisionReport{
		Repo:           report.Repo,
		GeneratedAt:    formatTimestamp(report.GeneratedAt),
		TotalCommits:   report.TotalCommits,
		TotalDecisions: len(report.Decisions),
		ByCategory:     insight.CountByCategory(report.Decisions),
		Items:          items,
	}
	return writeJSON(jsonReport, options.OutputPath)
}

// JSONEvolutionWriter writes evolution reports as JSON.
type JSONEvolutionWriter struct{}

// JSONEvolutionReport is the JSON output structure for evolution metrics.
type JSONEvolutionReport struct {
	Repo            string                    `json:"repo"`
	GeneratedAt     string                    `json:"generatedAt"`
	TotalCommits    int                       `json:"totalCommits"`
	AnalyzedCommits int                       `json:"analyzedCommits"`
	TotalFiles      int                       `json:"totalFiles"`
	Threshold       int                       `json:"threshold"`
	Hotspots        []JSONHotspotItem         `json:"hotspots"`
	Contributors    []insight.ContributorStat `json:"contributors"`
	Couplings       []insight.FileCoupling    `json:"couplings"`
	Frequency       []insight.MonthBucket     `json:"frequency"`
	Patterns        insight.PatternCounts     `json:"patterns"`
}

// JSONHotspotItem is the JSON output structure for a hotspot file.
type JSONHotspotItem struct {
	Path          string   `json:"path"`
	Modifications int      `json:"modifications"`
	Additions     int      `json:"additions"`
	Deletions     int      `json:"deletions"`
	Commits       []string `json:"commits"`
}

// Write outputs the evolution report as JSON.
func (w *JSONEvolutionWriter) Write(report *EvolutionReport, options OutputOptions) error {
	hotspots := lo.Map(limitTop(report.Hotspots, options.Top), func(s insight.FileEvolutionStat, _ int) JSONHotspotItem {
		return JSONHotspotItem{
			Path:          s.Path,
			Modifications: s.Modifications,
			Additions:     s.Additions,
			Deletions:     s.Deletions,
			Commits: lo.Map(s.Commits, func(c git.Commit, _ int) string {
				return c.OID
			}),
		}
	})

	jsonReport := JSONEvolutionReport{
		Repo:            report.Repo,
		GeneratedAt:     formatTimestamp(report.GeneratedAt),
		TotalCommits:    report.TotalCommits,
		AnalyzedCommits: report.AnalyzedCommits,
		TotalFiles:      report.TotalFiles,
		Threshold:       report.Threshold,
		Hotspots:        hotspots,
		Contributors:    nonNil(limitTop(report.Contributors, options.Top)),
		Couplings:       nonNil(limitTop(report.Couplings, options.Top)),
		Frequency:       nonNil(report.Frequency),
		Patterns:        report.Patterns,
	}
	return writeJSON(jsonReport, options.OutputPath)
}

// nonNil keeps empty lists as [] rather than null in JSON.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func writeJSON(data interface{}, outputPath string) error {
	out, file, err := openOutputWriter(outputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
