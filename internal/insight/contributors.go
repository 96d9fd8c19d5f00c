package insight

import (
	"sort"

	"github.com/masmgr/timemachine-go/internal/git"
)

// ContributorStat summarizes one author's commits.
type ContributorStat struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Commits     int    `json:"commits"`
	FirstCommit int64  `json:"firstCommit"` // epoch ms
	LastCommit  int64  `json:"lastCommit"`  // epoch ms
}

// GetContributorStats groups commits by exact author email.
// The name comes from the first commit seen for that email.
// The result is sorted by Commits descending; ties keep first-seen order.
func GetContributorStats(commits []git.Commit) []ContributorStat {
	index := make(map[string]int)
	var stats []ContributorStat

	for _, c := range commits {
		i, ok := index[c.Author.Email]
		if !ok {
			i = len(stats)
			index[c.Author.Email] = i
			stats = append(stats, ContributorStat{
				Name:        c.Author.Name,
				Email:       c.Author.Email,
				FirstCommit: c.Timestamp,
				LastCommit:  c.Timestamp,
			})
		}

		s := &stats[i]
		s.Commits++
		s.FirstCommit = min(s.FirstCommit, c.Timestamp)
		s.LastCommit = max(s.LastCommit, c.Timestamp)
	}

	if stats == nil {
		return []ContributorStat{}
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Commits > stats[j].Commits
	})
	return stats
}
