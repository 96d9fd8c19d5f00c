package insight

import (
	"testing"
	"time"

	"github.com/masmgr/timemachine-go/internal/git"
)

func TestParseWindow(t *testing.T) {
	tests := []struct {
		input    string
		expected Window
		wantErr  bool
	}{
		{input: "", expected: WindowAll},
		{input: "all", expected: WindowAll},
		{input: "Week", expected: WindowWeek},
		{input: " year ", expected: WindowYear},
		{input: "decade", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWindow(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseWindow(%q) expected error", tt.input)
				}
				return
			}
			if err != nil || got != tt.expected {
				t.Errorf("ParseWindow(%q) = %q, %v, expected %q", tt.input, got, err, tt.expected)
			}
		})
	}
}

func TestSearchCommits(t *testing.T) {
	commits := []git.Commit{
		{OID: "1", Message: "Fix Login redirect", Author: git.Signature{Name: "Ann"}},
		{OID: "2", Message: "docs", Author: git.Signature{Name: "Loginov"}},
		{OID: "3", Message: "chore", Author: git.Signature{Name: "Bob"}},
	}

	if got := SearchCommits(commits, "LOGIN"); len(got) != 2 || got[0].OID != "1" || got[1].OID != "2" {
		t.Errorf("SearchCommits(LOGIN) = %+v", got)
	}
	if got := SearchCommits(commits, ""); len(got) != 3 {
		t.Errorf("SearchCommits(\"\") = %d, expected all", len(got))
	}
	if got := SearchCommits(commits, "zzz"); len(got) != 0 {
		t.Errorf("SearchCommits(zzz) = %+v", got)
	}
}

func TestCommitsInRange(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	commits := []git.Commit{
		{OID: "before", Timestamp: base.Add(-time.Millisecond).UnixMilli()},
		{OID: "start", Timestamp: base.UnixMilli()},
		{OID: "end", Timestamp: base.Add(24 * time.Hour).UnixMilli()},
		{OID: "after", Timestamp: base.Add(24*time.Hour + time.Millisecond).UnixMilli()},
	}

	got := CommitsInRange(commits, base, base.Add(24*time.Hour))
	if len(got) != 2 || got[0].OID != "start" || got[1].OID != "end" {
		t.Errorf("CommitsInRange() = %+v, expected inclusive bounds", got)
	}
	if got := CommitsInRange(commits, base, time.Time{}); len(got) != 3 {
		t.Errorf("open end = %d, expected 3", len(got))
	}
	if got := CommitsInRange(commits, time.Time{}, time.Time{}); len(got) != 4 {
		t.Errorf("open range = %d, expected 4", len(got))
	}
}

func TestCommitsWithin(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	commits := []git.Commit{
		{OID: "hour", Timestamp: now.Add(-time.Hour).UnixMilli()},
		{OID: "exact-day", Timestamp: now.Add(-24 * time.Hour).UnixMilli()},
		{OID: "week", Timestamp: now.Add(-6 * 24 * time.Hour).UnixMilli()},
		{OID: "old", Timestamp: now.Add(-400 * 24 * time.Hour).UnixMilli()},
	}

	tests := []struct {
		window   Window
		expected int
	}{
		{window: WindowAll, expected: 4},
		{window: WindowDay, expected: 1},
		{window: WindowWeek, expected: 3},
		{window: WindowYear, expected: 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.window), func(t *testing.T) {
			if got := CommitsWithin(commits, tt.window, now); len(got) != tt.expected {
				t.Errorf("CommitsWithin(%s) = %d, expected %d", tt.window, len(got), tt.expected)
			}
		})
	}
}

func TestFindCommit(t *testing.T) {
	commits := []git.Commit{
		{OID: "abcdef0123"},
		{OID: "abcd999999"},
		{OID: "1234567890"},
	}

	tests := []struct {
		oid     string
		wantOID string
		wantOK  bool
	}{
		{oid: "1234567890", wantOID: "1234567890", wantOK: true},
		{oid: "12345", wantOID: "1234567890", wantOK: true},
		{oid: "abcde", wantOID: "abcdef0123", wantOK: true},
		{oid: "abcd", wantOK: false},
		{oid: "123", wantOK: false},
		{oid: "ffff", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.oid, func(t *testing.T) {
			got, ok := FindCommit(commits, tt.oid)
			if ok != tt.wantOK || got.OID != tt.wantOID {
				t.Errorf("FindCommit(%q) = %q, %v, expected %q, %v", tt.oid, got.OID, ok, tt.wantOID, tt.wantOK)
			}
		})
	}
}
