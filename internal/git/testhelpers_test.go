package git

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// testRepo is a scratch on-disk repository built with go-git.
type testRepo struct {
	t    testing.TB
	dir  string
	repo *gogit.Repository
	wt   *gogit.Worktree
}

func newTestRepo(tb testing.TB) *testRepo {
	tb.Helper()

	dir := tb.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		tb.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		tb.Fatalf("Worktree: %v", err)
	}
	return &testRepo{t: tb, dir: dir, repo: repo, wt: wt}
}

func (r *testRepo) write(rel, content string) {
	r.t.Helper()
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

func (r *testRepo) remove(rel string) {
	r.t.Helper()
	if _, err := r.wt.Remove(rel); err != nil {
		r.t.Fatalf("Remove: %v", err)
	}
}

func (r *testRepo) commit(msg string, when time.Time) string {
	r.t.Helper()
	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: when}
	h, err := r.wt.Commit(msg, &gogit.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		r.t.Fatalf("Commit: %v", err)
	}
	return h.String()
}

func (r *testRepo) history() *History {
	r.t.Helper()
	return NewHistory(NewGoGitResolver(r.repo, ""), WithLogger(quietLogger()))
}

// memCommit stores a commit over files with the given parents.
func memCommit(m *MemoryResolver, msg string, when time.Time, files map[string]string, parents ...string) string {
	sig := Signature{Name: "Test", Email: "test@example.com", When: when}
	return m.AddCommit(CommitObject{
		Message:   msg,
		Author:    sig,
		Committer: sig,
		Parents:   parents,
		Tree:      m.AddFiles(files),
	})
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func capturingLogger() (*logrus.Logger, *test.Hook) {
	l, hook := test.NewNullLogger()
	return l, hook
}
