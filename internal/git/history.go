package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// History is a handle on one loaded repository.
// Its operations never return errors: resolution failures are logged and
// degrade to empty results, so callers must treat empty as "no data".
// A handle is not safe for concurrent re-loading; callers own its lifetime
// and call Close when replacing it.
type History struct {
	resolver ObjectResolver
	cache    ChangeCache
	logger   logrus.FieldLogger
	name     string
	commits  []Commit
}

// Option configures a History.
type Option func(*History)

// WithLogger sets the logger used for degraded failures.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(h *History) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithCache replaces the default in-memory change cache.
func WithCache(cache ChangeCache) Option {
	return func(h *History) {
		if cache != nil {
			h.cache = cache
		}
	}
}

// WithName labels the repository in log entries.
func WithName(name string) Option {
	return func(h *History) {
		h.name = name
	}
}

// NewHistory creates a handle over resolver.
func NewHistory(resolver ObjectResolver, opts ...Option) *History {
	h := &History{
		resolver: resolver,
		cache:    NewMemoryCache(),
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.WithField("repo", h.name)
	return h
}

// Name returns the repository label.
func (h *History) Name() string {
	return h.name
}

// Commits returns up to limit commits from the branch tip, newest first.
// The list is kept as the session commit list returned by Cached.
func (h *History) Commits(ctx context.Context, limit int) []Commit {
	objs, err := h.resolver.Log(ctx, limit)
	if err != nil {
		h.logger.WithError(err).WithField("op", "commits").Warn("Failed to read commit log")
		return []Commit{}
	}

	commits := make([]Commit, 0, len(objs))
	for _, o := range objs {
		commits = append(commits, Commit{
			OID:       o.OID,
			Message:   o.Message,
			Author:    o.Author,
			Committer: o.Committer,
			Parents:   o.Parents,
			Timestamp: o.Author.Millis(),
		})
	}
	h.commits = commits
	return commits
}

// Cached returns the commit list from the last Commits call.
func (h *History) Cached() []Commit {
	return h.commits
}

// CommitChanges returns the file-level changes of oid against its first parent.
// Results are memoized; failures are logged and yield an empty, uncached result.
func (h *History) CommitChanges(ctx context.Context, oid string) []FileChange {
	if changes, ok := h.cache.Get(oid); ok {
		return changes
	}

	changes, err := computeChanges(ctx, h.resolver, oid)
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{"op": "changes", "oid": oid}).Warn("Failed to compute commit changes")
		return []FileChange{}
	}
	if changes == nil {
		changes = []FileChange{}
	}

	h.cache.Put(oid, changes)
	return changes
}

// ChangeSets computes change sets for commits in order.
func (h *History) ChangeSets(ctx context.Context, commits []Commit) []ChangeSet {
	sets := make([]ChangeSet, 0, len(commits))
	for _, c := range commits {
		if ctx.Err() != nil {
			break
		}
		sets = append(sets, ChangeSet{CommitOID: c.OID, Changes: h.CommitChanges(ctx, c.OID)})
	}
	return sets
}

// FileAtCommit decodes the text content at path.
// oid may name the blob itself, or a commit or tree in which path is looked up.
// It returns false when nothing could be resolved.
func (h *History) FileAtCommit(ctx context.Context, path, oid string) (string, bool) {
	data, err := h.readBlob(ctx, path, oid)
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{"op": "file", "oid": oid, "path": path}).Warn("Failed to read file")
		return "", false
	}
	return decodeText(data), true
}

// Diff returns both sides of path. An empty identifier yields an empty side.
func (h *History) Diff(ctx context.Context, path, oldOID, newOID string) FileDiff {
	var d FileDiff
	if oldOID != "" {
		d.OldContent, _ = h.FileAtCommit(ctx, path, oldOID)
	}
	if newOID != "" {
		d.NewContent, _ = h.FileAtCommit(ctx, path, newOID)
	}
	return d
}

// ChangeDiff returns both sides of a change recorded for commit.
// Sides are located through the commit and its first parent, so deletions
// (which carry no blob identifier) still show their previous content.
func (h *History) ChangeDiff(ctx context.Context, commit Commit, change FileChange) FileDiff {
	var oldRef, newRef string
	if change.Kind != ChangeKindAdded && len(commit.Parents) > 0 {
		oldRef = commit.Parents[0]
		if change.OldOID != "" {
			oldRef = change.OldOID
		}
	}
	if change.Kind != ChangeKindDeleted {
		newRef = change.OID
		if newRef == "" {
			newRef = commit.OID
		}
	}
	return h.Diff(ctx, change.Path, oldRef, newRef)
}

// Close invalidates the change cache and the session commit list.
func (h *History) Close() {
	h.cache.Clear()
	h.commits = nil
}

// readBlob resolves oid to blob bytes, peeling commits and trees through path.
func (h *History) readBlob(ctx context.Context, path, oid string) ([]byte, error) {
	data, blobErr := h.resolver.ResolveBlob(ctx, oid)
	if blobErr == nil {
		return data, nil
	}

	treeOID := oid
	if commit, err := h.resolver.ResolveCommit(ctx, oid); err == nil {
		treeOID = commit.Tree
	}

	blobOID, err := h.lookupPath(ctx, treeOID, path)
	if err != nil {
		return nil, errors.Join(blobErr, err)
	}
	return h.resolver.ResolveBlob(ctx, blobOID)
}

// lookupPath follows path segment by segment from treeOID.
func (h *History) lookupPath(ctx context.Context, treeOID, path string) (string, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrNotABlob)
	}

	segments := strings.Split(path, "/")
	current := treeOID
	for i, seg := range segments {
		nodes, err := h.resolver.ResolveTree(ctx, current)
		if err != nil {
			return "", err
		}

		found := false
		for _, n := range nodes {
			if n.Name != seg {
				continue
			}
			last := i == len(segments)-1
			if last && n.Kind != EntryKindBlob {
				return "", fmt.Errorf("%w: %s", ErrNotABlob, path)
			}
			if !last && n.Kind != EntryKindTree {
				return "", fmt.Errorf("%w: %s", ErrObjectNotFound, path)
			}
			current = n.OID
			found = true
			break
		}
		if !found {
			return "", fmt.Errorf("%w: %s", ErrObjectNotFound, path)
		}
	}
	return current, nil
}

// decodeText interprets blob bytes as UTF-8, replacing invalid sequences.
func decodeText(data []byte) string {
	return strings.ToValidUTF8(string(data), "\uFFFD")
}
