package git

import (
	"context"
	"fmt"
)

type walkItem struct {
	path string
	oid  string
	kind EntryKind
}

// walkTree flattens a tree into its blob entries. Directories are traversed, not reported.
// It uses an explicit stack instead of recursion. Children are pushed in reverse so
// entries come out in the same depth-first tree order a recursive walk produces.
func walkTree(ctx context.Context, resolver ObjectResolver, treeOID string) ([]TreeEntry, error) {
	var files []TreeEntry
	stack := []walkItem{{oid: treeOID, kind: EntryKindTree}}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if item.kind == EntryKindBlob {
			files = append(files, TreeEntry{Path: item.path, OID: item.oid, Kind: EntryKindBlob})
			continue
		}

		nodes, err := resolver.ResolveTree(ctx, item.oid)
		if err != nil {
			return nil, fmt.Errorf("walk tree %q: %w", item.path, err)
		}
		for i := len(nodes) - 1; i >= 0; i-- {
			n := nodes[i]
			stack = append(stack, walkItem{path: joinPath(item.path, n.Name), oid: n.OID, kind: n.Kind})
		}
	}

	return files, nil
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// diffTrees compares two flattened trees by content identifier.
// Added and modified entries come first in new-tree order, then deletions in old-tree order.
func diffTrees(oldFiles, newFiles []TreeEntry) []FileChange {
	oldByPath := make(map[string]TreeEntry, len(oldFiles))
	for _, f := range oldFiles {
		oldByPath[f.Path] = f
	}
	newByPath := make(map[string]TreeEntry, len(newFiles))
	for _, f := range newFiles {
		newByPath[f.Path] = f
	}

	var changes []FileChange
	for _, f := range newFiles {
		prev, ok := oldByPath[f.Path]
		switch {
		case !ok:
			changes = append(changes, FileChange{Path: f.Path, Kind: ChangeKindAdded, OID: f.OID})
		case prev.OID != f.OID:
			changes = append(changes, FileChange{Path: f.Path, Kind: ChangeKindModified, OID: f.OID, OldOID: prev.OID})
		}
	}
	for _, f := range oldFiles {
		if _, ok := newByPath[f.Path]; !ok {
			changes = append(changes, FileChange{Path: f.Path, Kind: ChangeKindDeleted})
		}
	}
	return changes
}

// computeChanges diffs a commit against its first parent.
func computeChanges(ctx context.Context, resolver ObjectResolver, oid string) ([]FileChange, error) {
	commit, err := resolver.ResolveCommit(ctx, oid)
	if err != nil {
		return nil, err
	}

	files, err := walkTree(ctx, resolver, commit.Tree)
	if err != nil {
		return nil, err
	}

	if len(commit.Parents) == 0 {
		changes := make([]FileChange, 0, len(files))
		for _, f := range files {
			changes = append(changes, FileChange{Path: f.Path, Kind: ChangeKindAdded, OID: f.OID})
		}
		return changes, nil
	}

	parent, err := resolver.ResolveCommit(ctx, commit.Parents[0])
	if err != nil {
		return nil, fmt.Errorf("first parent of %s: %w", oid, err)
	}
	parentFiles, err := walkTree(ctx, resolver, parent.Tree)
	if err != nil {
		return nil, err
	}

	return diffTrees(parentFiles, files), nil
}
