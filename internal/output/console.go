package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/samber/lo"

	"github.com/masmgr/timemachine-go/internal/git"
	"github.com/masmgr/timemachine-go/internal/insight"
)

var (
	titleColor   = color.New(color.FgGreen, color.Bold)
	sectionColor = color.New(color.FgCyan)
)

// ConsoleLogWriter writes commit timelines to the console.
type ConsoleLogWriter struct{}

// Write outputs the commit timeline to the console.
func (w *ConsoleLogWriter) Write(report *LogReport, options OutputOptions) error {
	commits := limitTop(report.Commits, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	titleColor.Fprintln(out, "Commit History")
	fmt.Fprintf(out, "Repository: %s\n", report.Repo)
	fmt.Fprintf(out, "Showing %s of %d loaded\n\n", countLabel("commit", len(commits)), report.Total)

	if len(commits) == 0 {
		fmt.Fprintln(out, "No commits found.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SHA\tWhen\tAuthor\tMessage")
	for _, c := range commits {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			color.YellowString(c.ShortOID()),
			relativeTime(c.Time(), report.GeneratedAt),
			c.Author.Name,
			truncateMessage(oneLine(c), 60),
		)
	}
	return tw.Flush()
}

// ConsoleCommitWriter writes a single commit to the console.
type ConsoleCommitWriter struct{}

// Write outputs the commit details and its file changes.
func (w *ConsoleCommitWriter) Write(report *CommitReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	c := report.Commit
	color.New(color.FgYellow).Fprintf(out, "commit %s\n", c.OID)
	if c.IsMerge() {
		fmt.Fprintf(out, "Merge:  %s\n", joinShort(c.Parents))
	}
	fmt.Fprintf(out, "Author: %s <%s>\n", c.Author.Name, c.Author.Email)
	fmt.Fprintf(out, "Date:   %s\n\n", c.Time().Format(time.RFC1123Z))
	writeIndented(out, c.Message)
	fmt.Fprintln(out)

	changes := limitTop(report.Changes, options.Top)
	fmt.Fprintf(out, "%s changed\n", countLabel("file", len(report.Changes)))
	for _, change := range changes {
		fmt.Fprintf(out, "  %s %s\n", changeKindColor(change.Kind)(changeKindMarker(change.Kind)), change.Path)
	}
	return nil
}

// ConsoleDecisionWriter writes architectural decisions to the console.
type ConsoleDecisionWriter struct{}

// Write outputs the decision report to the console.
func (w *ConsoleDecisionWriter) Write(report *DecisionReport, options OutputOptions) error {
	decisions := limitTop(report.Decisions, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	titleColor.Fprintln(out, "Architectural Decisions")
	fmt.Fprintf(out, "Repository: %s\n", report.Repo)
	fmt.Fprintf(out, "Found %s in %s\n\n",
		countLabel("decision", len(report.Decisions)), countLabel("commit", report.TotalCommits))

	if len(decisions) == 0 {
		fmt.Fprintln(out, "No architectural decisions found.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSHA\tDate\tCategory\tImportance\tMessage")
	for i, d := range decisions {
		level := importanceLevel(d.Importance)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			d.ShortOID(),
			d.Time().Format(reportDateLayout),
			d.Category,
			getLevelColor(level)("%d (%s)", d.Importance, level),
			truncateMessage(oneLine(d.Commit), 50),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	counts := insight.CountByCategory(report.Decisions)
	for _, category := range insight.AllCategories() {
		if counts[category] > 0 {
			fmt.Fprintf(out, "  %-14s %d\n", category, counts[category])
		}
	}
	return nil
}

// ConsoleEvolutionWriter writes evolution reports to the console.
type ConsoleEvolutionWriter struct{}

// Write outputs the evolution report to the console.
func (w *ConsoleEvolutionWriter) Write(report *EvolutionReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	titleColor.Fprintln(out, "Repository Evolution")
	fmt.Fprintf(out, "Repository: %s\n", report.Repo)
	fmt.Fprintf(out, "Commits: %d (changes analyzed for %d), Files touched: %d\n\n",
		report.TotalCommits, report.AnalyzedCommits, report.TotalFiles)

	sectionColor.Fprintf(out, "Hotspots (>= %d modifications)\n", report.Threshold)
	hotspots := limitTop(report.Hotspots, options.Top)
	if len(hotspots) == 0 {
		fmt.Fprintln(out, "No hotspots found.")
	} else {
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tPath\tModified\tAdded\tDeleted")
		for i, s := range hotspots {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\n", i+1, s.Path, s.Modifications, s.Additions, s.Deletions)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	fmt.Fprintln(out)

	sectionColor.Fprintln(out, "Changed Together")
	couplings := limitTop(report.Couplings, options.Top)
	if len(couplings) == 0 {
		fmt.Fprintln(out, "No coupled files found.")
	} else {
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tFile A\tFile B\tTogether\tJaccard")
		for i, c := range couplings {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%.2f\n", i+1, c.PathA, c.PathB, c.CoChanges, c.Jaccard)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	fmt.Fprintln(out)

	sectionColor.Fprintln(out, "Contributors")
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tName\tEmail\tCommits\tFirst\tLast")
	for i, c := range limitTop(report.Contributors, options.Top) {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n", i+1, c.Name, c.Email, c.Commits,
			time.UnixMilli(c.FirstCommit).Format(reportDateLayout),
			time.UnixMilli(c.LastCommit).Format(reportDateLayout))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out)

	sectionColor.Fprintln(out, "Commit Frequency")
	for _, bucket := range report.Frequency {
		fmt.Fprintf(out, "  %s  %4d  %s\n", bucket.Month, bucket.Count, frequencyBar(bucket.Count, report.Frequency))
	}
	fmt.Fprintln(out)

	sectionColor.Fprintln(out, "Message Patterns")
	p := report.Patterns
	fmt.Fprintf(out, "  conventional %d, imperative %d, descriptive %d, vague %d\n",
		p.Conventional, p.Imperative, p.Descriptive, p.Vague)
	return nil
}

// Helper functions

func getLevelColor(level string) func(string, ...interface{}) string {
	switch level {
	case "high":
		return color.RedString
	case "medium":
		return color.YellowString
	default:
		return color.GreenString
	}
}

func changeKindColor(kind git.ChangeKind) func(string, ...interface{}) string {
	switch kind {
	case git.ChangeKindAdded:
		return color.GreenString
	case git.ChangeKindDeleted:
		return color.RedString
	default:
		return color.YellowString
	}
}

func changeKindMarker(kind git.ChangeKind) string {
	switch kind {
	case git.ChangeKindAdded:
		return "A"
	case git.ChangeKindDeleted:
		return "D"
	default:
		return "M"
	}
}

func joinShort(oids []string) string {
	return strings.Join(lo.Map(oids, func(oid string, _ int) string {
		return git.Commit{OID: oid}.ShortOID()
	}), " ")
}

func writeIndented(out io.Writer, message string) {
	for _, line := range strings.Split(strings.TrimRight(message, "\n"), "\n") {
		fmt.Fprintf(out, "    %s\n", line)
	}
}

const maxBarWidth = 40

// frequencyBar scales count against the busiest month.
func frequencyBar(count int, buckets []insight.MonthBucket) string {
	peak := 0
	for _, b := range buckets {
		peak = max(peak, b.Count)
	}
	if peak == 0 {
		return ""
	}
	width := count * maxBarWidth / peak
	if count > 0 && width == 0 {
		width = 1
	}
	return strings.Repeat("#", width)
}
