package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/masmgr/timemachine-go/internal/output"
)

type fixtureRepo struct {
	t    *testing.T
	dir  string
	wt   *gogit.Worktree
	oids []string
}

func newFixtureRepo(t *testing.T) *fixtureRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	return &fixtureRepo{t: t, dir: dir, wt: wt}
}

func (r *fixtureRepo) commit(msg string, when time.Time, files map[string]string) string {
	r.t.Helper()
	for rel, content := range files {
		full := filepath.Join(r.dir, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			r.t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			r.t.Fatalf("WriteFile: %v", err)
		}
		if _, err := r.wt.Add(rel); err != nil {
			r.t.Fatalf("Add: %v", err)
		}
	}
	sig := &object.Signature{Name: "Dev", Email: "dev@example.com", When: when}
	h, err := r.wt.Commit(msg, &gogit.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		r.t.Fatalf("Commit: %v", err)
	}
	r.oids = append(r.oids, h.String())
	return h.String()
}

// buildHistory creates three commits, each modifying main.go.
func buildHistory(t *testing.T) *fixtureRepo {
	r := newFixtureRepo(t)
	now := time.Now().Truncate(time.Second)
	r.commit("initial import", now.Add(-3*time.Hour), map[string]string{"main.go": "package main\n", "README.md": "# demo\n"})
	r.commit("refactor: split main into packages", now.Add(-2*time.Hour), map[string]string{"main.go": "package main\n\nfunc main() {}\n"})
	r.commit("Fix crash on start", now.Add(-1*time.Hour), map[string]string{"main.go": "package main\n\nfunc main() { run() }\n"})
	return r
}

// runApp runs the CLI with defaults isolated from any user config and returns the output file.
func runApp(t *testing.T, command string, args ...string) string {
	t.Helper()
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	argv := append([]string{"timemachine", "--config", filepath.Join(dir, "none.json"), command, "--output", out}, args...)
	if err := App().Run(argv); err != nil {
		t.Fatalf("%s failed: %v", command, err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	return string(data)
}

func TestLogCommand(t *testing.T) {
	r := buildHistory(t)

	out := runApp(t, "log", "--repo", r.dir, "--format", "json", "--search", "fix")
	var report output.JSONLogReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if report.Total != 3 {
		t.Errorf("total = %d, want 3", report.Total)
	}
	if len(report.Commits) != 1 || report.Commits[0].OID != r.oids[2] {
		t.Errorf("commits = %+v", report.Commits)
	}
}

func TestShowCommand(t *testing.T) {
	r := buildHistory(t)

	out := runApp(t, "show", "--repo", r.dir, "--format", "csv", r.oids[0][:8])
	if !strings.Contains(out, "README.md,added") || !strings.Contains(out, "main.go,added") {
		t.Errorf("show output = %s", out)
	}
}

func TestCatAndDiffCommands(t *testing.T) {
	r := buildHistory(t)

	cat := runApp(t, "cat", "--repo", r.dir, r.oids[1], "main.go")
	if cat != "package main\n\nfunc main() {}\n" {
		t.Errorf("cat = %q", cat)
	}

	diff := runApp(t, "diff", "--repo", r.dir, "--format", "json", r.oids[2][:10], "main.go")
	var report output.JSONDiffReport
	if err := json.Unmarshal([]byte(diff), &report); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if report.Type != "modified" || report.OldContent != cat || !strings.Contains(report.NewContent, "run()") {
		t.Errorf("diff = %+v", report)
	}
}

func TestDecisionsCommand(t *testing.T) {
	r := buildHistory(t)

	out := runApp(t, "decisions", "--repo", r.dir, "--format", "ci", "--category", "refactoring")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected summary and one decision, got:\n%s", out)
	}
	var entry output.CIDecisionEntry
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("invalid entry: %v", err)
	}
	if entry.SHA != r.oids[1] || entry.Importance != 30 {
		t.Errorf("entry = %+v, want refactor commit with importance 30", entry)
	}
}

func TestEvolutionCommand_WithBoltCache(t *testing.T) {
	r := buildHistory(t)
	cache := filepath.Join(t.TempDir(), "changes.db")

	for i := 0; i < 2; i++ {
		out := runApp(t, "evolution", "--repo", r.dir, "--format", "json", "--threshold", "2", "--cache", cache)
		var report output.JSONEvolutionReport
		if err := json.Unmarshal([]byte(out), &report); err != nil {
			t.Fatalf("run %d: invalid JSON: %v", i, err)
		}
		if report.AnalyzedCommits != 3 || report.TotalFiles != 2 {
			t.Errorf("run %d: totals = %d commits, %d files", i, report.AnalyzedCommits, report.TotalFiles)
		}
		if len(report.Hotspots) != 1 || report.Hotspots[0].Path != "main.go" || report.Hotspots[0].Modifications != 2 {
			t.Errorf("run %d: hotspots = %+v", i, report.Hotspots)
		}
	}
}

func TestCommandErrors(t *testing.T) {
	r := buildHistory(t)
	dir := t.TempDir()
	cfg := filepath.Join(dir, "none.json")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "Unknown commit", args: []string{"show", "--repo", r.dir, "deadbeef"}, want: "not found"},
		{name: "Missing argument", args: []string{"diff", "--repo", r.dir, r.oids[0]}, want: "requires"},
		{name: "Unchanged path", args: []string{"diff", "--repo", r.dir, r.oids[2], "README.md"}, want: "was not changed"},
		{name: "Bad category", args: []string{"decisions", "--repo", r.dir, "--category", "misc"}, want: "unknown category"},
		{name: "Bad window", args: []string{"log", "--repo", r.dir, "--within", "decade"}, want: "invalid window"},
		{name: "Not a repository", args: []string{"log", "--repo", dir}, want: "no git repository"},
		{name: "Bad URL", args: []string{"log", "--url", "https://gitlab.com/a/b"}, want: "invalid GitHub URL"},
		{name: "Bad glob", args: []string{"evolution", "--repo", r.dir, "--include", "[a"}, want: "invalid path filter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			argv := append([]string{"timemachine", "--config", cfg}, tt.args...)
			err := App().Run(argv)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}
