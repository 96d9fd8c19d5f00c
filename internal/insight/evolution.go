package insight

import (
	"sort"

	"github.com/samber/lo"

	"github.com/masmgr/timemachine-go/internal/git"
)

// FileEvolutionStat holds per-path change counts across the analyzed commits.
type FileEvolutionStat struct {
	Path          string       `json:"path"`
	Modifications int          `json:"modifications"`
	Additions     int          `json:"additions"`
	Deletions     int          `json:"deletions"`
	Commits       []git.Commit `json:"commits"`
}

// Total returns the number of change records for the path.
func (s *FileEvolutionStat) Total() int {
	return s.Modifications + s.Additions + s.Deletions
}

// addChange counts a change and attributes it to commit when known.
func (s *FileEvolutionStat) addChange(change git.FileChange, commit *git.Commit) {
	switch change.Kind {
	case git.ChangeKindModified:
		s.Modifications++
	case git.ChangeKindAdded:
		s.Additions++
	case git.ChangeKindDeleted:
		s.Deletions++
	}
	if commit != nil {
		s.Commits = append(s.Commits, *commit)
	}
}

// evolutionAggregator accumulates stats keyed by path, remembering first-seen order.
type evolutionAggregator struct {
	stats map[string]*FileEvolutionStat
	order []string
}

func newEvolutionAggregator() *evolutionAggregator {
	return &evolutionAggregator{stats: make(map[string]*FileEvolutionStat)}
}

func (a *evolutionAggregator) process(cs git.ChangeSet, commit *git.Commit) {
	for _, change := range cs.Changes {
		stat, exists := a.stats[change.Path]
		if !exists {
			stat = &FileEvolutionStat{Path: change.Path, Commits: []git.Commit{}}
			a.stats[change.Path] = stat
			a.order = append(a.order, change.Path)
		}
		stat.addChange(change, commit)
	}
}

// AnalyzeFileEvolution accumulates per-path counts over every change set.
// Change sets whose commit is not in commits still count but add no commit attribution.
// The result is sorted by Modifications descending; ties keep first-seen order.
func AnalyzeFileEvolution(commits []git.Commit, changeSets []git.ChangeSet) []FileEvolutionStat {
	byOID := lo.KeyBy(commits, func(c git.Commit) string {
		return c.OID
	})

	agg := newEvolutionAggregator()
	for _, cs := range changeSets {
		var commit *git.Commit
		if c, ok := byOID[cs.CommitOID]; ok {
			commit = &c
		}
		agg.process(cs, commit)
	}

	result := make([]FileEvolutionStat, 0, len(agg.order))
	for _, path := range agg.order {
		result = append(result, *agg.stats[path])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Modifications > result[j].Modifications
	})
	return result
}

// IdentifyHotspots keeps files with at least threshold modifications, preserving order.
func IdentifyHotspots(stats []FileEvolutionStat, threshold int) []FileEvolutionStat {
	return lo.Filter(stats, func(s FileEvolutionStat, _ int) bool {
		return s.Modifications >= threshold
	})
}

// TopHotspots filters by threshold and then keeps the first n. A non-positive n keeps all.
func TopHotspots(stats []FileEvolutionStat, threshold, n int) []FileEvolutionStat {
	return limit(IdentifyHotspots(stats, threshold), n)
}

func limit[T any](items []T, n int) []T {
	if n <= 0 || len(items) <= n {
		return items
	}
	return items[:n]
}
