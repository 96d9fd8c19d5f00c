package git

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5/plumbing"
)

// MemoryResolver is an in-memory object graph.
// It allows tests and fixtures to build exact tree shapes without a real repository.
type MemoryResolver struct {
	mu      sync.RWMutex
	blobs   map[string][]byte
	trees   map[string][]TreeNode
	commits map[string]*CommitObject
	failing map[string]error
	head    string
}

// NewMemoryResolver creates an empty object graph.
func NewMemoryResolver() *MemoryResolver {
	return &MemoryResolver{
		blobs:   make(map[string][]byte),
		trees:   make(map[string][]TreeNode),
		commits: make(map[string]*CommitObject),
		failing: make(map[string]error),
	}
}

// AddBlob stores content and returns its identifier.
func (m *MemoryResolver) AddBlob(content string) string {
	data := []byte(content)
	oid := plumbing.ComputeHash(plumbing.BlobObject, data).String()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[oid] = data
	return oid
}

// AddTree stores a tree with the given children (kept in the given order) and returns its identifier.
func (m *MemoryResolver) AddTree(nodes ...TreeNode) string {
	var buf strings.Builder
	for _, n := range nodes {
		fmt.Fprintf(&buf, "%s %s %s\n", n.Kind, n.Name, n.OID)
	}
	oid := plumbing.ComputeHash(plumbing.TreeObject, []byte(buf.String())).String()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.trees[oid] = append([]TreeNode(nil), nodes...)
	return oid
}

// AddFiles builds nested trees from slash-separated paths and returns the root tree identifier.
// Children are sorted the way git sorts tree entries.
func (m *MemoryResolver) AddFiles(files map[string]string) string {
	type dir struct {
		files map[string]string
		dirs  map[string]map[string]string
	}
	d := dir{files: map[string]string{}, dirs: map[string]map[string]string{}}
	for path, content := range files {
		head, rest, nested := strings.Cut(path, "/")
		if !nested {
			d.files[head] = content
			continue
		}
		if d.dirs[head] == nil {
			d.dirs[head] = map[string]string{}
		}
		d.dirs[head][rest] = content
	}

	nodes := make([]TreeNode, 0, len(d.files)+len(d.dirs))
	for name, content := range d.files {
		nodes = append(nodes, TreeNode{Name: name, OID: m.AddBlob(content), Kind: EntryKindBlob})
	}
	for name, sub := range d.dirs {
		nodes = append(nodes, TreeNode{Name: name, OID: m.AddFiles(sub), Kind: EntryKindTree})
	}
	sort.Slice(nodes, func(i, j int) bool {
		return sortName(nodes[i]) < sortName(nodes[j])
	})
	return m.AddTree(nodes...)
}

func sortName(n TreeNode) string {
	if n.Kind == EntryKindTree {
		return n.Name + "/"
	}
	return n.Name
}

// AddCommit stores a commit, computing its identifier when OID is empty, and moves the head to it.
func (m *MemoryResolver) AddCommit(c CommitObject) string {
	if c.OID == "" {
		var buf strings.Builder
		fmt.Fprintf(&buf, "tree %s\n", c.Tree)
		for _, p := range c.Parents {
			fmt.Fprintf(&buf, "parent %s\n", p)
		}
		fmt.Fprintf(&buf, "author %s <%s> %d\n", c.Author.Name, c.Author.Email, c.Author.When.Unix())
		fmt.Fprintf(&buf, "committer %s <%s> %d\n\n%s", c.Committer.Name, c.Committer.Email, c.Committer.When.Unix(), c.Message)
		c.OID = plumbing.ComputeHash(plumbing.CommitObject, []byte(buf.String())).String()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	stored := c
	stored.Parents = append([]string(nil), c.Parents...)
	m.commits[c.OID] = &stored
	m.head = c.OID
	return c.OID
}

// SetHead moves the branch tip used by Log.
func (m *MemoryResolver) SetHead(oid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.head = oid
}

// Fail makes every resolution of oid return err.
func (m *MemoryResolver) Fail(oid string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failing[oid] = err
}

func (m *MemoryResolver) check(ctx context.Context, oid string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err, ok := m.failing[oid]; ok {
		return err
	}
	return nil
}

// ResolveCommit returns a copy of the stored commit.
func (m *MemoryResolver) ResolveCommit(ctx context.Context, oid string) (*CommitObject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.check(ctx, oid); err != nil {
		return nil, err
	}
	c, ok := m.commits[oid]
	if !ok {
		return nil, fmt.Errorf("%w: commit %s", ErrObjectNotFound, oid)
	}
	cp := *c
	cp.Parents = append([]string(nil), c.Parents...)
	return &cp, nil
}

// ResolveTree returns the stored tree children.
func (m *MemoryResolver) ResolveTree(ctx context.Context, oid string) ([]TreeNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.check(ctx, oid); err != nil {
		return nil, err
	}
	nodes, ok := m.trees[oid]
	if !ok {
		return nil, fmt.Errorf("%w: tree %s", ErrObjectNotFound, oid)
	}
	return append([]TreeNode(nil), nodes...), nil
}

// ResolveBlob returns the stored blob bytes.
func (m *MemoryResolver) ResolveBlob(ctx context.Context, oid string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.check(ctx, oid); err != nil {
		return nil, err
	}
	data, ok := m.blobs[oid]
	if !ok {
		return nil, fmt.Errorf("%w: blob %s", ErrObjectNotFound, oid)
	}
	return append([]byte(nil), data...), nil
}

// Log walks every ancestor of the head and orders them newest committer time first.
func (m *MemoryResolver) Log(ctx context.Context, limit int) ([]*CommitObject, error) {
	m.mu.RLock()
	head := m.head
	m.mu.RUnlock()
	if head == "" {
		return nil, fmt.Errorf("%w: no head commit", ErrObjectNotFound)
	}

	seen := map[string]bool{}
	var all []*CommitObject
	stack := []string{head}
	for len(stack) > 0 {
		oid := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[oid] {
			continue
		}
		seen[oid] = true

		c, err := m.ResolveCommit(ctx, oid)
		if err != nil {
			return nil, err
		}
		all = append(all, c)
		for i := len(c.Parents) - 1; i >= 0; i-- {
			stack = append(stack, c.Parents[i])
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Committer.When.After(all[j].Committer.When)
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
