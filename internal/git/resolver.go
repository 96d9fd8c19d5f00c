package git

import (
	"context"
	"errors"
	"fmt"
	"io"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

var (
	// ErrObjectNotFound is returned when an identifier does not resolve to an object of the requested kind.
	ErrObjectNotFound = errors.New("object not found")
	// ErrInvalidOID is returned for identifiers that are not well-formed hashes.
	ErrInvalidOID = errors.New("invalid object id")
	// ErrNotABlob is returned when content is requested for a path that names a directory.
	ErrNotABlob = errors.New("not a blob")
)

// CommitObject is the resolved form of a commit identifier.
type CommitObject struct {
	OID       string
	Message   string
	Author    Signature
	Committer Signature
	Parents   []string
	Tree      string
}

// TreeNode is a single named child of a tree object.
type TreeNode struct {
	Name string
	OID  string
	Kind EntryKind
}

// ObjectResolver resolves identifiers in a content-addressed commit graph.
// The history layer is defined entirely in terms of these operations.
type ObjectResolver interface {
	// ResolveCommit reads a commit object.
	ResolveCommit(ctx context.Context, oid string) (*CommitObject, error)
	// ResolveTree lists a tree's children in tree order.
	ResolveTree(ctx context.Context, oid string) ([]TreeNode, error)
	// ResolveBlob reads a blob's raw bytes.
	ResolveBlob(ctx context.Context, oid string) ([]byte, error)
	// Log returns up to limit commits from the branch tip, newest first.
	Log(ctx context.Context, limit int) ([]*CommitObject, error)
}

// Compile-time interface conformance checks.
var (
	_ ObjectResolver = (*GoGitResolver)(nil)
	_ ObjectResolver = (*MemoryResolver)(nil)
)

// GoGitResolver resolves objects from a go-git repository.
type GoGitResolver struct {
	repo   *gogit.Repository
	branch string
}

// NewGoGitResolver creates a resolver for repo. An empty branch walks from HEAD.
func NewGoGitResolver(repo *gogit.Repository, branch string) *GoGitResolver {
	return &GoGitResolver{repo: repo, branch: branch}
}

// Repository returns the underlying go-git repository.
func (r *GoGitResolver) Repository() *gogit.Repository {
	return r.repo
}

func parseHash(oid string) (plumbing.Hash, error) {
	if !plumbing.IsHash(oid) {
		return plumbing.ZeroHash, fmt.Errorf("%w: %q", ErrInvalidOID, oid)
	}
	return plumbing.NewHash(oid), nil
}

func wrapNotFound(err error, kind, oid string) error {
	if errors.Is(err, plumbing.ErrObjectNotFound) {
		return fmt.Errorf("%w: %s %s", ErrObjectNotFound, kind, oid)
	}
	return fmt.Errorf("read %s %s: %w", kind, oid, err)
}

// ResolveCommit reads a commit object.
func (r *GoGitResolver) ResolveCommit(ctx context.Context, oid string) (*CommitObject, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h, err := parseHash(oid)
	if err != nil {
		return nil, err
	}
	c, err := r.repo.CommitObject(h)
	if err != nil {
		return nil, wrapNotFound(err, "commit", oid)
	}
	return commitObjectFrom(c), nil
}

// ResolveTree lists a tree's children. Submodule entries are skipped.
func (r *GoGitResolver) ResolveTree(ctx context.Context, oid string) ([]TreeNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h, err := parseHash(oid)
	if err != nil {
		return nil, err
	}
	tree, err := r.repo.TreeObject(h)
	if err != nil {
		return nil, wrapNotFound(err, "tree", oid)
	}

	nodes := make([]TreeNode, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		switch e.Mode {
		case filemode.Dir:
			nodes = append(nodes, TreeNode{Name: e.Name, OID: e.Hash.String(), Kind: EntryKindTree})
		case filemode.Submodule:
			continue
		default:
			nodes = append(nodes, TreeNode{Name: e.Name, OID: e.Hash.String(), Kind: EntryKindBlob})
		}
	}
	return nodes, nil
}

// ResolveBlob reads a blob's raw bytes.
func (r *GoGitResolver) ResolveBlob(ctx context.Context, oid string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h, err := parseHash(oid)
	if err != nil {
		return nil, err
	}
	blob, err := r.repo.BlobObject(h)
	if err != nil {
		return nil, wrapNotFound(err, "blob", oid)
	}
	rd, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("open blob %s: %w", oid, err)
	}
	defer rd.Close()

	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", oid, err)
	}
	return data, nil
}

// Log walks from the branch tip in committer-time order.
func (r *GoGitResolver) Log(ctx context.Context, limit int) ([]*CommitObject, error) {
	tip, err := r.tip()
	if err != nil {
		return nil, err
	}

	cIter, err := r.repo.Log(&gogit.LogOptions{From: tip, Order: gogit.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("log from %s: %w", tip, err)
	}
	defer cIter.Close()

	var results []*CommitObject
	err = cIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if limit > 0 && len(results) >= limit {
			return storer.ErrStop
		}
		results = append(results, commitObjectFrom(c))
		return nil
	})
	// Shallow clones stop at commits whose parents were never fetched.
	if err != nil && !(errors.Is(err, plumbing.ErrObjectNotFound) && len(results) > 0) {
		return nil, err
	}
	return results, nil
}

// tip resolves the configured branch, or HEAD when none is set.
func (r *GoGitResolver) tip() (plumbing.Hash, error) {
	if r.branch == "" || r.branch == "HEAD" {
		ref, err := r.repo.Head()
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("resolve HEAD: %w", err)
		}
		return ref.Hash(), nil
	}
	h, err := r.repo.ResolveRevision(plumbing.Revision(r.branch))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolve branch %q: %w", r.branch, err)
	}
	return *h, nil
}

func commitObjectFrom(c *object.Commit) *CommitObject {
	parents := make([]string, 0, len(c.ParentHashes))
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}
	return &CommitObject{
		OID:       c.Hash.String(),
		Message:   c.Message,
		Author:    Signature{Name: c.Author.Name, Email: c.Author.Email, When: c.Author.When},
		Committer: Signature{Name: c.Committer.Name, Email: c.Committer.Email, When: c.Committer.When},
		Parents:   parents,
		Tree:      c.TreeHash.String(),
	}
}
