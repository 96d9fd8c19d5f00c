package git

import (
	"context"
	"testing"

	"pgregory.net/rapid"
)

// --- Generators ---

func genPath() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		dir := rapid.SampledFrom([]string{"", "src/", "docs/", "src/lib/"}).Draw(t, "dir")
		file := rapid.SampledFrom([]string{"a.go", "b.go", "c.md", "d.txt"}).Draw(t, "file")
		return dir + file
	})
}

func genFiles() *rapid.Generator[map[string]string] {
	return rapid.MapOfN(genPath(), rapid.SampledFrom([]string{"x", "y", "z"}), 0, 12)
}

// --- Property Tests ---

func TestRapidComputeChanges_MatchesSetDifference(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		oldFiles := genFiles().Draw(t, "old")
		newFiles := genFiles().Draw(t, "new")

		m := NewMemoryResolver()
		parent := memCommit(m, "parent", baseTime, oldFiles)
		child := memCommit(m, "child", baseTime.Add(1), newFiles, parent)

		changes, err := computeChanges(context.Background(), m, child)
		if err != nil {
			t.Fatalf("computeChanges: %v", err)
		}

		seen := map[string]bool{}
		for _, c := range changes {
			if seen[c.Path] {
				t.Fatalf("path %s reported twice", c.Path)
			}
			seen[c.Path] = true

			oldContent, inOld := oldFiles[c.Path]
			newContent, inNew := newFiles[c.Path]
			switch c.Kind {
			case ChangeKindAdded:
				if inOld || !inNew || c.OID == "" {
					t.Fatalf("bad addition %+v", c)
				}
			case ChangeKindDeleted:
				if !inOld || inNew || c.OID != "" || c.OldOID != "" {
					t.Fatalf("bad deletion %+v", c)
				}
			case ChangeKindModified:
				if !inOld || !inNew || oldContent == newContent || c.OldOID == "" {
					t.Fatalf("bad modification %+v", c)
				}
			}
		}

		expected := 0
		for p, content := range newFiles {
			if prev, ok := oldFiles[p]; !ok || prev != content {
				expected++
			}
		}
		for p := range oldFiles {
			if _, ok := newFiles[p]; !ok {
				expected++
			}
		}
		if len(changes) != expected {
			t.Fatalf("changes = %d, expected %d", len(changes), expected)
		}
	})
}

func TestRapidComputeChanges_RootAllAdded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		files := genFiles().Draw(t, "files")

		m := NewMemoryResolver()
		root := memCommit(m, "root", baseTime, files)

		changes, err := computeChanges(context.Background(), m, root)
		if err != nil {
			t.Fatalf("computeChanges: %v", err)
		}
		if len(changes) != len(files) {
			t.Fatalf("changes = %d, files = %d", len(changes), len(files))
		}
		for _, c := range changes {
			if c.Kind != ChangeKindAdded {
				t.Fatalf("root change %+v is not an addition", c)
			}
			if _, ok := files[c.Path]; !ok {
				t.Fatalf("unexpected path %s", c.Path)
			}
		}
	})
}
