package insight

import (
	"math"
	"regexp"
)

// ConventionalCommit is the parsed form of a "type(scope): description" message.
type ConventionalCommit struct {
	Type           string `json:"type,omitempty"`
	Scope          string `json:"scope,omitempty"`
	Description    string `json:"description"`
	IsConventional bool   `json:"isConventional"`
}

var conventionalHeader = regexp.MustCompile(`^(\w+)(\(.+\))?:\s*(.+)`)

// ParseConventionalCommit splits a conventional commit header.
// Messages that do not match are returned whole as the description.
func ParseConventionalCommit(message string) ConventionalCommit {
	m := conventionalHeader.FindStringSubmatch(message)
	if m == nil {
		return ConventionalCommit{Description: message}
	}

	scope := m[2]
	if len(scope) >= 2 {
		scope = scope[1 : len(scope)-1]
	}
	return ConventionalCommit{
		Type:           m[1],
		Scope:          scope,
		Description:    m[3],
		IsConventional: true,
	}
}

// Percentage returns value as a rounded percentage of total, or 0 when total is 0.
func Percentage(value, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(value) / float64(total) * 100))
}
