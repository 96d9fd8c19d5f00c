package insight

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/masmgr/timemachine-go/internal/git"
)

// Category classifies an architectural decision.
type Category string

const (
	CategoryRefactoring  Category = "refactoring"
	CategoryMigration    Category = "migration"
	CategoryFeature      Category = "feature"
	CategoryRemoval      Category = "removal"
	CategoryOptimization Category = "optimization"
	CategorySecurity     Category = "security"
	CategoryAPIChange    Category = "api-change"
	CategoryData         Category = "data"
	CategoryOther        Category = "other"
)

// Decision is a commit flagged as an architectural decision.
type Decision struct {
	git.Commit
	Category   Category `json:"category"`
	Importance int      `json:"importance"`
}

// architectureKeywords are matched as lower-case substrings of the message.
var architectureKeywords = []string{
	"refactor", "architecture", "redesign", "migrate", "upgrade",
	"breaking change", "major", "restructure", "framework", "pattern",
	"implement", "add", "remove", "replace", "dependency", "library",
	"performance", "optimize", "scale", "security", "api", "database",
}

var versionPattern = regexp.MustCompile(`(?i)v?\d+\.\d+\.\d+|version \d+`)

// detailedMessageLength is the rune count above which a message alone marks a decision.
const detailedMessageLength = 100

type categoryRule struct {
	keywords []string
	category Category
}

// categoryRules are evaluated in order; the first rule with a matching keyword wins.
var categoryRules = []categoryRule{
	{keywords: []string{"refactor", "restructure"}, category: CategoryRefactoring},
	{keywords: []string{"migrate", "upgrade"}, category: CategoryMigration},
	{keywords: []string{"add", "implement"}, category: CategoryFeature},
	{keywords: []string{"remove", "delete"}, category: CategoryRemoval},
	{keywords: []string{"performance", "optimize"}, category: CategoryOptimization},
	{keywords: []string{"security", "fix"}, category: CategorySecurity},
	{keywords: []string{"api", "interface"}, category: CategoryAPIChange},
	{keywords: []string{"database", "schema"}, category: CategoryData},
}

type lengthTier struct {
	minLength int // exclusive
	score     int
}

// lengthTiers are checked from the longest tier down.
var lengthTiers = []lengthTier{
	{minLength: 200, score: 30},
	{minLength: 100, score: 20},
	{minLength: -1, score: 10},
}

type importanceBonus struct {
	keywords []string
	score    int
}

// importanceBonuses are independent; every matching bonus is added.
var importanceBonuses = []importanceBonus{
	{keywords: []string{"breaking", "major"}, score: 40},
	{keywords: []string{"migrate", "refactor"}, score: 20},
	{keywords: []string{"security", "performance"}, score: 15},
}

const maxImportance = 100

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func messageLength(c git.Commit) int {
	return utf8.RuneCountInString(c.Message)
}

// IsArchitecturalDecision reports whether a commit looks like an architectural decision.
// The keyword set is broad, so this favours recall over precision.
func IsArchitecturalDecision(c git.Commit) bool {
	message := strings.ToLower(c.Message)
	return containsAny(message, architectureKeywords) ||
		versionPattern.MatchString(c.Message) ||
		messageLength(c) > detailedMessageLength
}

// CategorizeDecision returns the category of the first matching rule, or CategoryOther.
func CategorizeDecision(c git.Commit) Category {
	message := strings.ToLower(c.Message)
	for _, rule := range categoryRules {
		if containsAny(message, rule.keywords) {
			return rule.category
		}
	}
	return CategoryOther
}

// AllCategories lists every category in rule priority order, ending with CategoryOther.
func AllCategories() []Category {
	categories := lo.Map(categoryRules, func(r categoryRule, _ int) Category {
		return r.category
	})
	return append(categories, CategoryOther)
}

// ParseCategory looks up a category by name.
func ParseCategory(name string) (Category, bool) {
	return lo.Find(AllCategories(), func(c Category) bool {
		return string(c) == strings.ToLower(strings.TrimSpace(name))
	})
}

// CalculateImportance scores a commit from 0 to 100.
func CalculateImportance(c git.Commit) int {
	message := strings.ToLower(c.Message)
	length := messageLength(c)

	score := 0
	for _, tier := range lengthTiers {
		if length > tier.minLength {
			score += tier.score
			break
		}
	}
	for _, bonus := range importanceBonuses {
		if containsAny(message, bonus.keywords) {
			score += bonus.score
		}
	}

	return min(max(score, 0), maxImportance)
}

// AnalyzeCommits keeps the architectural decisions in commits, preserving order.
func AnalyzeCommits(commits []git.Commit) []Decision {
	return lo.FilterMap(commits, func(c git.Commit, _ int) (Decision, bool) {
		if !IsArchitecturalDecision(c) {
			return Decision{}, false
		}
		return Decision{
			Commit:     c,
			Category:   CategorizeDecision(c),
			Importance: CalculateImportance(c),
		}, true
	})
}

// FilterDecisions narrows decisions to a category (empty matches all) and a minimum importance.
func FilterDecisions(decisions []Decision, category Category, minImportance int) []Decision {
	return lo.Filter(decisions, func(d Decision, _ int) bool {
		return (category == "" || d.Category == category) && d.Importance >= minImportance
	})
}

// CountByCategory tallies decisions per category.
func CountByCategory(decisions []Decision) map[Category]int {
	return lo.MapValues(lo.GroupBy(decisions, func(d Decision) Category {
		return d.Category
	}), func(group []Decision, _ Category) int {
		return len(group)
	})
}
