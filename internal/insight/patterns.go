package insight

import (
	"regexp"
	"unicode/utf8"

	"github.com/masmgr/timemachine-go/internal/git"
)

// Pattern is the style of a commit message's first line.
type Pattern string

const (
	PatternConventional Pattern = "conventional"
	PatternImperative   Pattern = "imperative"
	PatternDescriptive  Pattern = "descriptive"
	PatternVague        Pattern = "vague"
)

// PatternCounts tallies commit message styles.
type PatternCounts struct {
	Conventional int `json:"conventional"`
	Imperative   int `json:"imperative"`
	Descriptive  int `json:"descriptive"`
	Vague        int `json:"vague"`
}

// Total returns the number of classified commits.
func (p PatternCounts) Total() int {
	return p.Conventional + p.Imperative + p.Descriptive + p.Vague
}

func (p *PatternCounts) add(pattern Pattern) {
	switch pattern {
	case PatternConventional:
		p.Conventional++
	case PatternImperative:
		p.Imperative++
	case PatternDescriptive:
		p.Descriptive++
	default:
		p.Vague++
	}
}

var (
	conventionalPattern = regexp.MustCompile(`^(feat|fix|docs|style|refactor|test|chore)(\(.+\))?:`)
	imperativePattern   = regexp.MustCompile(`^(Add|Fix|Update|Remove|Implement|Create|Delete|Refactor)\s`)
	vagueWordsPattern   = regexp.MustCompile(`(?i)(WIP|wip|update|changes)`)
)

const descriptiveMinLength = 20

type patternRule struct {
	matches func(title string) bool
	pattern Pattern
}

// patternRules are evaluated in order over the first line; unmatched titles are vague.
var patternRules = []patternRule{
	{matches: conventionalPattern.MatchString, pattern: PatternConventional},
	{matches: imperativePattern.MatchString, pattern: PatternImperative},
	{
		matches: func(title string) bool {
			return utf8.RuneCountInString(title) > descriptiveMinLength && !vagueWordsPattern.MatchString(title)
		},
		pattern: PatternDescriptive,
	},
}

// ClassifyMessage returns the style of the first line of message.
func ClassifyMessage(message string) Pattern {
	title := git.Commit{Message: message}.Title()
	for _, rule := range patternRules {
		if rule.matches(title) {
			return rule.pattern
		}
	}
	return PatternVague
}

// DetectCommitPatterns counts message styles. The counts sum to len(commits).
func DetectCommitPatterns(commits []git.Commit) PatternCounts {
	var counts PatternCounts
	for _, c := range commits {
		counts.add(ClassifyMessage(c.Message))
	}
	return counts
}
