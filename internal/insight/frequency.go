package insight

import (
	"sort"
	"time"

	"github.com/masmgr/timemachine-go/internal/git"
)

// MonthBucket counts commits in one calendar month.
type MonthBucket struct {
	Month string `json:"month"` // YYYY-MM
	Count int    `json:"count"`
}

const monthLayout = "2006-01"

// AnalyzeCommitFrequency buckets commits by local calendar month, ascending.
func AnalyzeCommitFrequency(commits []git.Commit) []MonthBucket {
	return AnalyzeCommitFrequencyIn(commits, time.Local)
}

// AnalyzeCommitFrequencyIn buckets commits by calendar month in loc, ascending.
func AnalyzeCommitFrequencyIn(commits []git.Commit, loc *time.Location) []MonthBucket {
	if loc == nil {
		loc = time.Local
	}

	counts := make(map[string]int)
	for _, c := range commits {
		counts[c.Time().In(loc).Format(monthLayout)]++
	}

	buckets := make([]MonthBucket, 0, len(counts))
	for month, count := range counts {
		buckets = append(buckets, MonthBucket{Month: month, Count: count})
	}
	// Keys are zero-padded, so lexical order is chronological.
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Month < buckets[j].Month
	})
	return buckets
}

// LastMonths returns the final n buckets. A non-positive n keeps all.
func LastMonths(buckets []MonthBucket, n int) []MonthBucket {
	if n <= 0 || len(buckets) <= n {
		return buckets
	}
	return buckets[len(buckets)-n:]
}
