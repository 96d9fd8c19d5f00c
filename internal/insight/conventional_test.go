package insight

import "testing"

func TestParseConventionalCommit(t *testing.T) {
	tests := []struct {
		message  string
		expected ConventionalCommit
	}{
		{
			message:  "feat(api): add search",
			expected: ConventionalCommit{Type: "feat", Scope: "api", Description: "add search", IsConventional: true},
		},
		{
			message:  "fix:handle nil",
			expected: ConventionalCommit{Type: "fix", Description: "handle nil", IsConventional: true},
		},
		{
			message:  "release: 1.0",
			expected: ConventionalCommit{Type: "release", Description: "1.0", IsConventional: true},
		},
		{
			message:  "no colon here",
			expected: ConventionalCommit{Description: "no colon here"},
		},
		{
			message:  "Just a message",
			expected: ConventionalCommit{Description: "Just a message"},
		},
		{
			message:  "feat: ",
			expected: ConventionalCommit{Type: "feat", Description: " ", IsConventional: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := ParseConventionalCommit(tt.message); got != tt.expected {
				t.Errorf("ParseConventionalCommit(%q) = %+v, expected %+v", tt.message, got, tt.expected)
			}
		})
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		value, total, expected int
	}{
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{1, 8, 13},
		{5, 0, 0},
		{0, 7, 0},
		{7, 7, 100},
	}

	for _, tt := range tests {
		if got := Percentage(tt.value, tt.total); got != tt.expected {
			t.Errorf("Percentage(%d, %d) = %d, expected %d", tt.value, tt.total, got, tt.expected)
		}
	}
}
