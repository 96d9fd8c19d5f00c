package insight

import (
	"sort"

	"github.com/samber/lo"

	"github.com/masmgr/timemachine-go/internal/git"
)

// CouplingOptions bounds co-change analysis.
type CouplingOptions struct {
	MinCoChanges      int // Pairs changed together fewer times are dropped
	MaxFilesPerCommit int // Larger commits are ignored for pairing; 0 means no cap
	Top               int // Non-positive keeps all pairs
}

// FileCoupling describes two paths that tend to change in the same commit.
type FileCoupling struct {
	PathA     string  `json:"pathA"`
	PathB     string  `json:"pathB"`
	CoChanges int     `json:"coChanges"`
	ChangesA  int     `json:"changesA"`
	ChangesB  int     `json:"changesB"`
	Jaccard   float64 `json:"jaccard"` // CoChanges / (ChangesA + ChangesB - CoChanges)
}

type pathPair struct {
	a, b string
}

func newPathPair(a, b string) pathPair {
	if a > b {
		a, b = b, a
	}
	return pathPair{a: a, b: b}
}

// AnalyzeCoupling counts how often each pair of paths appears in the same change set.
// Deleted paths are ignored. The result is sorted by Jaccard descending, then by
// co-change count descending, then by path.
func AnalyzeCoupling(changeSets []git.ChangeSet, opts CouplingOptions) []FileCoupling {
	changes := make(map[string]int)
	pairs := make(map[pathPair]int)

	for _, cs := range changeSets {
		paths := lo.Uniq(lo.FilterMap(cs.Changes, func(fc git.FileChange, _ int) (string, bool) {
			return fc.Path, fc.Kind != git.ChangeKindDeleted
		}))
		for _, p := range paths {
			changes[p]++
		}

		if len(paths) < 2 || (opts.MaxFilesPerCommit > 0 && len(paths) > opts.MaxFilesPerCommit) {
			continue
		}
		for i := 0; i < len(paths)-1; i++ {
			for j := i + 1; j < len(paths); j++ {
				pairs[newPathPair(paths[i], paths[j])]++
			}
		}
	}

	var result []FileCoupling
	for pair, co := range pairs {
		if co < opts.MinCoChanges {
			continue
		}
		a, b := changes[pair.a], changes[pair.b]
		result = append(result, FileCoupling{
			PathA:     pair.a,
			PathB:     pair.b,
			CoChanges: co,
			ChangesA:  a,
			ChangesB:  b,
			Jaccard:   float64(co) / float64(a+b-co),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Jaccard != result[j].Jaccard {
			return result[i].Jaccard > result[j].Jaccard
		}
		if result[i].CoChanges != result[j].CoChanges {
			return result[i].CoChanges > result[j].CoChanges
		}
		if result[i].PathA != result[j].PathA {
			return result[i].PathA < result[j].PathA
		}
		return result[i].PathB < result[j].PathB
	})
	return limit(result, opts.Top)
}
