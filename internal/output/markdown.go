package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/masmgr/timemachine-go/internal/insight"
)

// MarkdownLogWriter writes commit timelines as Markdown.
type MarkdownLogWriter struct{}

// Write outputs the commit timeline as Markdown.
func (w *MarkdownLogWriter) Write(report *LogReport, options OutputOptions) error {
	commits := limitTop(report.Commits, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	fmt.Fprintln(out, "# Commit History")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", report.Repo)
	fmt.Fprintf(out, "**Commits:** %d of %d loaded\n\n", len(commits), report.Total)

	fmt.Fprintln(out, "| SHA | Date | Author | Message |")
	fmt.Fprintln(out, "|-----|------|--------|---------|")
	for _, c := range commits {
		fmt.Fprintf(out, "| `%s` | %s | %s | %s |\n",
			c.ShortOID(), c.Time().Format(reportDateLayout),
			escapeMarkdown(c.Author.Name), escapeMarkdown(truncateMessage(oneLine(c), 60)))
	}
	return nil
}

// MarkdownCommitWriter writes a single commit as Markdown.
type MarkdownCommitWriter struct{}

// Write outputs the commit and its file changes as Markdown.
func (w *MarkdownCommitWriter) Write(report *CommitReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	c := report.Commit
	fmt.Fprintf(out, "# %s\n\n", escapeMarkdown(oneLine(c)))
	fmt.Fprintf(out, "**Commit:** `%s`\n\n", c.OID)
	fmt.Fprintf(out, "**Author:** %s <%s>\n\n", escapeMarkdown(c.Author.Name), c.Author.Email)
	fmt.Fprintf(out, "**Date:** %s\n\n", c.Time().Format(time.RFC3339))
	if body := c.Body(); body != "" {
		fmt.Fprintln(out, body)
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "## Changes (%d)\n\n", len(report.Changes))
	fmt.Fprintln(out, "| Type | Path |")
	fmt.Fprintln(out, "|------|------|")
	for _, change := range limitTop(report.Changes, options.Top) {
		fmt.Fprintf(out, "| %s | `%s` |\n", change.Kind, change.Path)
	}
	return nil
}

// MarkdownDecisionWriter writes decision reports as Markdown.
type MarkdownDecisionWriter struct{}

// Write outputs the decision report as Markdown.
func (w *MarkdownDecisionWriter) Write(report *DecisionReport, options OutputOptions) error {
	decisions := limitTop(report.Decisions, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	fmt.Fprintln(out, "# Architectural Decisions")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", report.Repo)
	fmt.Fprintf(out, "**Decisions:** %d of %d commits\n\n", len(report.Decisions), report.TotalCommits)

	if len(decisions) == 0 {
		fmt.Fprintln(out, "No architectural decisions found.")
		return nil
	}

	fmt.Fprintln(out, "| # | SHA | Date | Category | Importance | Message |")
	fmt.Fprintln(out, "|---|-----|------|----------|------------|---------|")
	for i, d := range decisions {
		level := importanceLevel(d.Importance)
		fmt.Fprintf(out, "| %d | `%s` | %s | %s | %s %d | %s |\n",
			i+1, d.ShortOID(), d.Time().Format(reportDateLayout), d.Category,
			getLevelEmoji(level), d.Importance, escapeMarkdown(truncateMessage(oneLine(d.Commit), 50)))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "## By Category")
	fmt.Fprintln(out)
	counts := insight.CountByCategory(report.Decisions)
	for _, category := range insight.AllCategories() {
		if counts[category] > 0 {
			fmt.Fprintf(out, "- **%s:** %d\n", category, counts[category])
		}
	}
	return nil
}

// MarkdownEvolutionWriter writes evolution reports as Markdown.
type MarkdownEvolutionWriter struct{}

// Write outputs the evolution report as Markdown.
func (w *MarkdownEvolutionWriter) Write(report *EvolutionReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	fmt.Fprintln(out, "# Repository Evolution")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", report.Repo)
	fmt.Fprintf(out, "**Statistics:** %d commits, %d with changes analyzed, %d files touched\n\n",
		report.TotalCommits, report.AnalyzedCommits, report.TotalFiles)

	fmt.Fprintf(out, "## Hotspots (>= %d modifications)\n\n", report.Threshold)
	hotspots := limitTop(report.Hotspots, options.Top)
	if len(hotspots) == 0 {
		fmt.Fprintln(out, "No hotspots found.")
	} else {
		fmt.Fprintln(out, "| # | Path | Modified | Added | Deleted |")
		fmt.Fprintln(out, "|---|------|----------|-------|---------|")
		for i, s := range hotspots {
			fmt.Fprintf(out, "| %d | `%s` | %d | %d | %d |\n", i+1, s.Path, s.Modifications, s.Additions, s.Deletions)
		}
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "## Changed Together")
	fmt.Fprintln(out)
	couplings := limitTop(report.Couplings, options.Top)
	if len(couplings) == 0 {
		fmt.Fprintln(out, "No coupled files found.")
	} else {
		fmt.Fprintln(out, "| # | File A | File B | Together | Jaccard |")
		fmt.Fprintln(out, "|---|--------|--------|----------|---------|")
		for i, c := range couplings {
			fmt.Fprintf(out, "| %d | `%s` | `%s` | %d | %.2f |\n", i+1, c.PathA, c.PathB, c.CoChanges, c.Jaccard)
		}
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "## Contributors")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "| # | Name | Commits | First | Last |")
	fmt.Fprintln(out, "|---|------|---------|-------|------|")
	for i, c := range limitTop(report.Contributors, options.Top) {
		fmt.Fprintf(out, "| %d | %s | %d | %s | %s |\n", i+1, escapeMarkdown(c.Name), c.Commits,
			time.UnixMilli(c.FirstCommit).Format(reportDateLayout),
			time.UnixMilli(c.LastCommit).Format(reportDateLayout))
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "## Commit Frequency")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "| Month | Commits |")
	fmt.Fprintln(out, "|-------|---------|")
	for _, b := range report.Frequency {
		fmt.Fprintf(out, "| %s | %d |\n", b.Month, b.Count)
	}
	fmt.Fprintln(out)

	p := report.Patterns
	fmt.Fprintln(out, "## Message Patterns")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "- **conventional:** %d\n- **imperative:** %d\n- **descriptive:** %d\n- **vague:** %d\n",
		p.Conventional, p.Imperative, p.Descriptive, p.Vague)
	return nil
}

func getLevelEmoji(level string) string {
	switch level {
	case "high":
		return "🔴"
	case "medium":
		return "🟡"
	default:
		return "🟢"
	}
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
