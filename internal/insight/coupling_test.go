package insight

import (
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/masmgr/timemachine-go/internal/git"
)

func changeSetOf(oid string, paths ...string) git.ChangeSet {
	changes := make([]git.FileChange, len(paths))
	for i, p := range paths {
		changes[i] = change(p, git.ChangeKindModified)
	}
	return git.ChangeSet{CommitOID: oid, Changes: changes}
}

func TestAnalyzeCoupling(t *testing.T) {
	sets := []git.ChangeSet{
		changeSetOf("c1", "api.go", "api_test.go"),
		changeSetOf("c2", "api_test.go", "api.go", "README.md"),
		changeSetOf("c3", "api.go"),
		changeSetOf("c4", "README.md"),
	}

	got := AnalyzeCoupling(sets, CouplingOptions{MinCoChanges: 1})
	if len(got) != 3 {
		t.Fatalf("couplings = %+v, expected 3 pairs", got)
	}

	top := got[0]
	if top.PathA != "api.go" || top.PathB != "api_test.go" {
		t.Errorf("top pair = %s/%s", top.PathA, top.PathB)
	}
	if top.CoChanges != 2 || top.ChangesA != 3 || top.ChangesB != 2 {
		t.Errorf("top counts = %+v", top)
	}
	if math.Abs(top.Jaccard-2.0/3.0) > 1e-9 {
		t.Errorf("top jaccard = %f, expected 0.667", top.Jaccard)
	}
}

func TestAnalyzeCoupling_Options(t *testing.T) {
	sets := []git.ChangeSet{
		changeSetOf("c1", "a.go", "b.go"),
		changeSetOf("c2", "a.go", "b.go"),
		changeSetOf("c3", "a.go", "c.go", "d.go"),
	}

	tests := []struct {
		name string
		opts CouplingOptions
		want int
	}{
		{name: "All pairs", opts: CouplingOptions{}, want: 4},
		{name: "Minimum co-changes", opts: CouplingOptions{MinCoChanges: 2}, want: 1},
		{name: "Large commits skipped", opts: CouplingOptions{MaxFilesPerCommit: 2}, want: 1},
		{name: "Top", opts: CouplingOptions{Top: 2}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AnalyzeCoupling(sets, tt.opts); len(got) != tt.want {
				t.Errorf("AnalyzeCoupling = %d pairs, expected %d", len(got), tt.want)
			}
		})
	}
}

func TestAnalyzeCoupling_IgnoresDeletions(t *testing.T) {
	sets := []git.ChangeSet{{CommitOID: "c1", Changes: []git.FileChange{
		change("a.go", git.ChangeKindModified),
		change("old.go", git.ChangeKindDeleted),
	}}}
	if got := AnalyzeCoupling(sets, CouplingOptions{}); len(got) != 0 {
		t.Errorf("AnalyzeCoupling = %+v, expected no pairs", got)
	}
}

func TestRapidAnalyzeCoupling(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sets := rapid.SliceOfN(genChangeSet(nil), 0, 20).Draw(t, "sets")
		top := rapid.IntRange(0, 5).Draw(t, "top")

		got := AnalyzeCoupling(sets, CouplingOptions{Top: top})
		if top > 0 && len(got) > top {
			t.Fatalf("len = %d exceeds top %d", len(got), top)
		}
		for i, c := range got {
			if c.PathA >= c.PathB {
				t.Fatalf("pair %d not ordered: %s/%s", i, c.PathA, c.PathB)
			}
			if c.Jaccard <= 0 || c.Jaccard > 1 {
				t.Fatalf("pair %d jaccard %f out of range", i, c.Jaccard)
			}
			if c.CoChanges > c.ChangesA || c.CoChanges > c.ChangesB {
				t.Fatalf("pair %d co-changes exceed file changes: %+v", i, c)
			}
			if i > 0 && c.Jaccard > got[i-1].Jaccard {
				t.Fatalf("not sorted at %d", i)
			}
		}
	})
}
