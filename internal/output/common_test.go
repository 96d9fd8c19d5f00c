package output

import (
	"testing"
	"time"
)

func TestLimitTop(t *testing.T) {
	items := []int{1, 2, 3}

	tests := []struct {
		name string
		top  int
		want []int
	}{
		{name: "NoLimitWhenZero", top: 0, want: []int{1, 2, 3}},
		{name: "NoLimitWhenNegative", top: -1, want: []int{1, 2, 3}},
		{name: "Limited", top: 2, want: []int{1, 2}},
		{name: "NoLimitWhenTopExceedsLength", top: 5, want: []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := limitTop(items, tt.top)
			if len(got) != len(tt.want) {
				t.Fatalf("len(limitTop(..., %d)) = %d, want %d", tt.top, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("limitTop(..., %d)[%d] = %d, want %d", tt.top, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestImportanceLevel(t *testing.T) {
	tests := []struct {
		importance int
		want       string
	}{
		{importance: 100, want: "high"},
		{importance: 60, want: "high"},
		{importance: 59, want: "medium"},
		{importance: 30, want: "medium"},
		{importance: 29, want: "low"},
		{importance: 0, want: "low"},
	}

	for _, tt := range tests {
		if got := importanceLevel(tt.importance); got != tt.want {
			t.Errorf("importanceLevel(%d) = %q, want %q", tt.importance, got, tt.want)
		}
	}
}

func TestCountLabel(t *testing.T) {
	tests := []struct {
		word  string
		count int
		want  string
	}{
		{word: "commit", count: 0, want: "0 commits"},
		{word: "commit", count: 1, want: "1 commit"},
		{word: "file", count: 3, want: "3 files"},
		{word: "commit", count: 1234, want: "1,234 commits"},
	}

	for _, tt := range tests {
		if got := countLabel(tt.word, tt.count); got != tt.want {
			t.Errorf("countLabel(%q, %d) = %q, want %q", tt.word, tt.count, got, tt.want)
		}
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	if got := relativeTime(now.Add(-3*time.Hour), now); got != "3 hours ago" {
		t.Errorf("relativeTime = %q, want %q", got, "3 hours ago")
	}
}
