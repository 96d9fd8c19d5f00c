package git

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Commit is a materialized commit from the history walk.
type Commit struct {
	OID       string    `json:"oid"`
	Message   string    `json:"message"`
	Author    Signature `json:"author"`
	Committer Signature `json:"committer"`
	Parents   []string  `json:"parents"`
	// Timestamp is the author time in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// Title returns the first line of the commit message.
func (c Commit) Title() string {
	if idx := strings.IndexByte(c.Message, '\n'); idx != -1 {
		return c.Message[:idx]
	}
	return c.Message
}

// Body returns everything after the first line, trimmed.
func (c Commit) Body() string {
	idx := strings.IndexByte(c.Message, '\n')
	if idx == -1 {
		return ""
	}
	return strings.TrimSpace(c.Message[idx+1:])
}

// ShortOID returns the abbreviated 7 character identifier.
func (c Commit) ShortOID() string {
	if len(c.OID) <= 7 {
		return c.OID
	}
	return c.OID[:7]
}

// Time returns Timestamp as a time.Time.
func (c Commit) Time() time.Time {
	return time.UnixMilli(c.Timestamp)
}

// IsMerge reports whether the commit has more than one parent.
func (c Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// Signature represents commit author or committer information.
type Signature struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	When  time.Time `json:"when"`
}

// Millis returns the signature time in epoch milliseconds.
func (s Signature) Millis() int64 {
	return s.When.UnixMilli()
}

// FileChange represents a file change within a commit relative to its first parent.
type FileChange struct {
	Path   string     `json:"path"`
	Kind   ChangeKind `json:"type"`
	OID    string     `json:"oid,omitempty"`    // Empty for deletions
	OldOID string     `json:"oldOid,omitempty"` // Only for modifications
}

// ChangeKind represents the type of change.
type ChangeKind int

const (
	ChangeKindAdded ChangeKind = iota
	ChangeKindModified
	ChangeKindDeleted
)

// String returns a string representation of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeKindAdded:
		return "added"
	case ChangeKindModified:
		return "modified"
	case ChangeKindDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k ChangeKind) MarshalText() ([]byte, error) {
	s := k.String()
	if s == "unknown" {
		return nil, fmt.Errorf("invalid change kind %d", int(k))
	}
	return []byte(s), nil
}

// UnmarshalText decodes a kind name.
func (k *ChangeKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "added":
		*k = ChangeKindAdded
	case "modified":
		*k = ChangeKindModified
	case "deleted":
		*k = ChangeKindDeleted
	default:
		return fmt.Errorf("invalid change kind %q", string(text))
	}
	return nil
}

// EntryKind distinguishes blobs from subtrees in a tree listing.
type EntryKind int

const (
	EntryKindBlob EntryKind = iota
	EntryKindTree
)

func (k EntryKind) String() string {
	if k == EntryKindTree {
		return "tree"
	}
	return "blob"
}

// TreeEntry is a flattened blob entry produced by walking a tree.
type TreeEntry struct {
	Path string
	OID  string
	Kind EntryKind
}

// ChangeSet bundles a commit identifier with its file changes.
type ChangeSet struct {
	CommitOID string       `json:"commit"`
	Changes   []FileChange `json:"changes"`
}

// FileDiff holds both sides of a file across a change.
type FileDiff struct {
	OldContent string `json:"oldContent"`
	NewContent string `json:"newContent"`
}

// encodeChanges and decodeChanges are the persisted cache representation.
func encodeChanges(changes []FileChange) ([]byte, error) {
	return json.Marshal(changes)
}

func decodeChanges(data []byte) ([]FileChange, error) {
	var changes []FileChange
	if err := json.Unmarshal(data, &changes); err != nil {
		return nil, err
	}
	return changes, nil
}
