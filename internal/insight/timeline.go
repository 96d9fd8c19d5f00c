package insight

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/masmgr/timemachine-go/internal/git"
)

// Window is a trailing time range used to narrow the commit timeline.
type Window string

const (
	WindowAll   Window = "all"
	WindowDay   Window = "day"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowYear  Window = "year"
)

const day = 24 * time.Hour

var windowDurations = map[Window]time.Duration{
	WindowDay:   day,
	WindowWeek:  7 * day,
	WindowMonth: 30 * day,
	WindowYear:  365 * day,
}

// ParseWindow validates a window name. An empty name means WindowAll.
func ParseWindow(name string) (Window, error) {
	w := Window(strings.ToLower(strings.TrimSpace(name)))
	if w == "" || w == WindowAll {
		return WindowAll, nil
	}
	if _, ok := windowDurations[w]; !ok {
		return "", fmt.Errorf("invalid window %q (must be all, day, week, month, or year)", name)
	}
	return w, nil
}

// Duration returns the window length; zero for WindowAll.
func (w Window) Duration() time.Duration {
	return windowDurations[w]
}

// SearchCommits keeps commits whose message or author name contains query, ignoring case.
// An empty query keeps every commit.
func SearchCommits(commits []git.Commit, query string) []git.Commit {
	if query == "" {
		return commits
	}
	q := strings.ToLower(query)
	return lo.Filter(commits, func(c git.Commit, _ int) bool {
		return strings.Contains(strings.ToLower(c.Message), q) ||
			strings.Contains(strings.ToLower(c.Author.Name), q)
	})
}

// CommitsInRange keeps commits with start <= time <= end. A zero bound is open.
func CommitsInRange(commits []git.Commit, start, end time.Time) []git.Commit {
	return lo.Filter(commits, func(c git.Commit, _ int) bool {
		t := c.Time()
		return (start.IsZero() || !t.Before(start)) && (end.IsZero() || !t.After(end))
	})
}

// CommitsWithin keeps commits strictly newer than now minus the window.
func CommitsWithin(commits []git.Commit, w Window, now time.Time) []git.Commit {
	d := w.Duration()
	if d == 0 {
		return commits
	}
	cutoff := now.UnixMilli() - d.Milliseconds()
	return lo.Filter(commits, func(c git.Commit, _ int) bool {
		return c.Timestamp > cutoff
	})
}

// FindCommit looks up a commit by full identifier, or by unique prefix of at least 4 characters.
func FindCommit(commits []git.Commit, oid string) (git.Commit, bool) {
	if c, ok := lo.Find(commits, func(c git.Commit) bool { return c.OID == oid }); ok {
		return c, true
	}
	if len(oid) < 4 {
		return git.Commit{}, false
	}
	matches := lo.Filter(commits, func(c git.Commit, _ int) bool {
		return strings.HasPrefix(c.OID, oid)
	})
	if len(matches) != 1 {
		return git.Commit{}, false
	}
	return matches[0], true
}
