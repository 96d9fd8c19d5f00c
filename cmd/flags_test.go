package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/masmgr/timemachine-go/config"
	"github.com/masmgr/timemachine-go/internal/git"
	"github.com/masmgr/timemachine-go/internal/insight"
	"github.com/masmgr/timemachine-go/internal/output"
)

func TestParseDateFlag(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		got, err := parseDateFlag("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil, got %v", got)
		}
	})

	t.Run("ValidDate", func(t *testing.T) {
		got, err := parseDateFlag("2025-12-31")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("parseDateFlag(valid) = %v, want %v", got, want)
		}
	})

	t.Run("InvalidDate", func(t *testing.T) {
		if _, err := parseDateFlag("31-12-2025"); err == nil {
			t.Fatalf("expected error, got nil")
		}
	})
}

func TestGetOutputFormat(t *testing.T) {
	tests := []struct {
		input string
		want  output.OutputFormat
	}{
		{input: "json", want: output.FormatJSON},
		{input: "csv", want: output.FormatCSV},
		{input: "markdown", want: output.FormatMarkdown},
		{input: "md", want: output.FormatMarkdown},
		{input: "ci", want: output.FormatCI},
		{input: "ndjson", want: output.FormatCI},
		{input: "unknown", want: output.FormatConsole},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := getOutputFormat(tt.input); got != tt.want {
				t.Fatalf("getOutputFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFilterTimeline(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	at := func(oid, msg string, ts time.Time) git.Commit {
		return git.Commit{OID: oid, Message: msg, Author: git.Signature{Name: "Dev"}, Timestamp: ts.UnixMilli()}
	}
	commits := []git.Commit{
		at("c3", "fix: login", now.Add(-2*time.Hour)),
		at("c2", "feat: search", now.Add(-3*24*time.Hour)),
		at("c1", "initial import", time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC)),
	}
	date := func(s string) *time.Time {
		d, err := parseDateFlag(s)
		if err != nil {
			t.Fatal(err)
		}
		return d
	}

	tests := []struct {
		name   string
		search string
		window insight.Window
		since  *time.Time
		until  *time.Time
		want   []string
	}{
		{name: "No filters", window: insight.WindowAll, want: []string{"c3", "c2", "c1"}},
		{name: "Search", search: "SEARCH", window: insight.WindowAll, want: []string{"c2"}},
		{name: "Within day", window: insight.WindowDay, want: []string{"c3"}},
		{name: "Within week", window: insight.WindowWeek, want: []string{"c3", "c2"}},
		{name: "Until covers the whole day", window: insight.WindowAll, until: date("2026-01-10"), want: []string{"c1"}},
		{name: "Since", window: insight.WindowAll, since: date("2026-03-01"), want: []string{"c3", "c2"}},
		{name: "Combined", search: "fix", window: insight.WindowMonth, since: date("2026-03-15"), want: []string{"c3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterTimeline(commits, tt.search, tt.window, tt.since, tt.until, now)
			if len(got) != len(tt.want) {
				t.Fatalf("filterTimeline = %d commits, want %v", len(got), tt.want)
			}
			for i := range got {
				if got[i].OID != tt.want[i] {
					t.Errorf("filterTimeline[%d] = %s, want %s", i, got[i].OID, tt.want[i])
				}
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(config.LogConfig{Level: "info"}, &buf)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	if logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", logger.GetLevel())
	}
	logger.WithField("repo", "demo").Info("loaded")
	if !bytes.Contains(buf.Bytes(), []byte("repo=demo")) {
		t.Errorf("log output = %q", buf.String())
	}

	if _, err := newLogger(config.LogConfig{Level: "chatty"}, &buf); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestBuildEvolutionReport(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	sig := func(name string) git.Signature {
		return git.Signature{Name: name, Email: name + "@example.com"}
	}
	commits := []git.Commit{
		{OID: "c3", Message: "feat: tweak", Author: sig("ann"), Timestamp: now.UnixMilli()},
		{OID: "c2", Message: "Fix handler", Author: sig("bob"), Timestamp: now.Add(-time.Hour).UnixMilli()},
		{OID: "c1", Message: "wip", Author: sig("ann"), Timestamp: now.Add(-2 * time.Hour).UnixMilli()},
	}
	modified := func(oid string) git.ChangeSet {
		return git.ChangeSet{CommitOID: oid, Changes: []git.FileChange{{Path: "main.go", Kind: git.ChangeKindModified}}}
	}
	sets := []git.ChangeSet{modified("c3"), modified("c2"), modified("c1")}

	cfg := config.DefaultConfig().Insight
	cfg.TopContributors = 1
	report := buildEvolutionReport("demo", cfg, commits, sets, now)

	if report.TotalCommits != 3 || report.AnalyzedCommits != 3 || report.TotalFiles != 1 {
		t.Errorf("totals = %d/%d/%d", report.TotalCommits, report.AnalyzedCommits, report.TotalFiles)
	}
	if len(report.Hotspots) != 1 || report.Hotspots[0].Path != "main.go" || report.Hotspots[0].Modifications != 3 {
		t.Errorf("hotspots = %+v", report.Hotspots)
	}
	if len(report.Contributors) != 1 || report.Contributors[0].Name != "ann" {
		t.Errorf("contributors = %+v", report.Contributors)
	}
	if len(report.Couplings) != 0 {
		t.Errorf("couplings = %+v, expected none for single-file commits", report.Couplings)
	}
	if report.Patterns.Conventional != 1 || report.Patterns.Imperative != 1 || report.Patterns.Vague != 1 {
		t.Errorf("patterns = %+v", report.Patterns)
	}
	if len(report.Frequency) != 1 || report.Frequency[0].Count != 3 {
		t.Errorf("frequency = %+v", report.Frequency)
	}
}
