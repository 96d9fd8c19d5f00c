package output

import (
	"time"

	"github.com/masmgr/timemachine-go/internal/git"
	"github.com/masmgr/timemachine-go/internal/insight"
)

// Compile-time interface conformance checks.
// These ensure that all writer types correctly implement their respective interfaces.
var (
	// LogReportWriter implementations
	_ LogReportWriter = (*ConsoleLogWriter)(nil)
	_ LogReportWriter = (*JSONLogWriter)(nil)
	_ LogReportWriter = (*CSVLogWriter)(nil)
	_ LogReportWriter = (*MarkdownLogWriter)(nil)
	_ LogReportWriter = (*CILogWriter)(nil)

	// CommitReportWriter implementations
	_ CommitReportWriter = (*ConsoleCommitWriter)(nil)
	_ CommitReportWriter = (*JSONCommitWriter)(nil)
	_ CommitReportWriter = (*CSVCommitWriter)(nil)
	_ CommitReportWriter = (*MarkdownCommitWriter)(nil)

	// DecisionReportWriter implementations
	_ DecisionReportWriter = (*ConsoleDecisionWriter)(nil)
	_ DecisionReportWriter = (*JSONDecisionWriter)(nil)
	_ DecisionReportWriter = (*CSVDecisionWriter)(nil)
	_ DecisionReportWriter = (*MarkdownDecisionWriter)(nil)
	_ DecisionReportWriter = (*CIDecisionWriter)(nil)

	// EvolutionReportWriter implementations
	_ EvolutionReportWriter = (*ConsoleEvolutionWriter)(nil)
	_ EvolutionReportWriter = (*JSONEvolutionWriter)(nil)
	_ EvolutionReportWriter = (*CSVEvolutionWriter)(nil)
	_ EvolutionReportWriter = (*MarkdownEvolutionWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Top        int
	OutputPath string
	Style      string // chroma style for highlighted content
}

// LogReport holds a filtered commit timeline.
type LogReport struct {
	Repo        string
	GeneratedAt time.Time
	Total       int // commits loaded before filtering
	Commits     []git.Commit
}

// CommitReport describes a single commit and its file changes.
type CommitReport struct {
	Repo    string
	Commit  git.Commit
	Changes []git.FileChange
}

// DecisionReport holds detected architectural decisions.
type DecisionReport struct {
	Repo         string
	GeneratedAt  time.Time
	TotalCommits int
	Decisions    []insight.Decision
}

// EvolutionReport holds repository evolution metrics.
type EvolutionReport struct {
	Repo            string
	GeneratedAt     time.Time
	TotalCommits    int
	AnalyzedCommits int // commits whose change sets were loaded
	TotalFiles      int
	Threshold       int
	Hotspots        []insight.FileEvolutionStat
	Contributors    []insight.ContributorStat
	Couplings       []insight.FileCoupling
	Frequency       []insight.MonthBucket
	Patterns        insight.PatternCounts
}

// LogReportWriter writes commit timelines.
type LogReportWriter interface {
	Write(report *LogReport, options OutputOptions) error
}

// CommitReportWriter writes single commit reports.
type CommitReportWriter interface {
	Write(report *CommitReport, options OutputOptions) error
}

// DecisionReportWriter writes architectural decision reports.
type DecisionReportWriter interface {
	Write(report *DecisionReport, options OutputOptions) error
}

// EvolutionReportWriter writes evolution reports.
type EvolutionReportWriter interface {
	Write(report *EvolutionReport, options OutputOptions) error
}

// NewLogReportWriter creates a log writer for the specified format.
func NewLogReportWriter(format OutputFormat) LogReportWriter {
	switch format {
	case FormatJSON:
		return &JSONLogWriter{}
	case FormatCSV:
		return &CSVLogWriter{}
	case FormatMarkdown:
		return &MarkdownLogWriter{}
	case FormatCI:
		return &CILogWriter{}
	default:
		return &ConsoleLogWriter{}
	}
}

// NewCommitReportWriter creates a commit report writer for the specified format.
func NewCommitReportWriter(format OutputFormat) CommitReportWriter {
	switch format {
	case FormatJSON:
		return &JSONCommitWriter{}
	case FormatCSV:
		return &CSVCommitWriter{}
	case FormatMarkdown:
		return &MarkdownCommitWriter{}
	default:
		return &ConsoleCommitWriter{}
	}
}

// NewDecisionReportWriter creates a decision report writer for the specified format.
func NewDecisionReportWriter(format OutputFormat) DecisionReportWriter {
	switch format {
	case FormatJSON:
		return &JSONDecisionWriter{}
	case FormatCSV:
		return &CSVDecisionWriter{}
	case FormatMarkdown:
		return &MarkdownDecisionWriter{}
	case FormatCI:
		return &CIDecisionWriter{}
	default:
		return &ConsoleDecisionWriter{}
	}
}

// NewEvolutionReportWriter creates an evolution report writer for the specified format.
func NewEvolutionReportWriter(format OutputFormat) EvolutionReportWriter {
	switch format {
	case FormatJSON:
		return &JSONEvolutionWriter{}
	case FormatCSV:
		return &CSVEvolutionWriter{}
	case FormatMarkdown:
		return &MarkdownEvolutionWriter{}
	default:
		return &ConsoleEvolutionWriter{}
	}
}
