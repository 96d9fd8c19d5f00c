package git

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PathFilter selects paths by doublestar glob patterns.
type PathFilter struct {
	Include []string // Glob patterns to include
	Exclude []string // Glob patterns to exclude
}

// IsEmpty reports whether the filter accepts everything.
func (f PathFilter) IsEmpty() bool {
	return len(f.Include) == 0 && len(f.Exclude) == 0
}

// Validate checks that every pattern is well formed.
func (f PathFilter) Validate() error {
	for _, p := range append(append([]string{}, f.Include...), f.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return doublestar.ErrBadPattern
		}
	}
	return nil
}

// Matches checks if a path matches the include/exclude filters.
func (f PathFilter) Matches(path string) bool {
	// Normalize path separators
	path = strings.ReplaceAll(path, "\\", "/")

	// Check exclude patterns first
	for _, pattern := range f.Exclude {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return false
		}
	}

	// If no include patterns, accept all
	if len(f.Include) == 0 {
		return true
	}

	for _, pattern := range f.Include {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}

	return false
}

// FilterChanges returns the changes whose path matches the filter.
func (f PathFilter) FilterChanges(changes []FileChange) []FileChange {
	if f.IsEmpty() {
		return changes
	}
	kept := make([]FileChange, 0, len(changes))
	for _, c := range changes {
		if f.Matches(c.Path) {
			kept = append(kept, c)
		}
	}
	return kept
}

// FilterChangeSets applies FilterChanges to every change set, keeping empty sets.
func (f PathFilter) FilterChangeSets(sets []ChangeSet) []ChangeSet {
	if f.IsEmpty() {
		return sets
	}
	out := make([]ChangeSet, len(sets))
	for i, cs := range sets {
		out[i] = ChangeSet{CommitOID: cs.CommitOID, Changes: f.FilterChanges(cs.Changes)}
	}
	return out
}
