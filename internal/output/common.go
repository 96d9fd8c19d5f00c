package output

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/aquilax/truncate"
	"github.com/dustin/go-humanize"
	"github.com/gertd/go-pluralize"

	"github.com/masmgr/timemachine-go/internal/git"
)

const (
	reportDateLayout     = "2006-01-02"
	reportDateTimeLayout = "2006-01-02T15:04:05"
)

// Importance level thresholds for decisions.
const (
	highImportance   = 60
	mediumImportance = 30
)

var plural = pluralize.NewClient()

func limitTop[T any](items []T, top int) []T {
	if top <= 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

// truncateMessage shortens msg to maxLen runes, ending with "...".
func truncateMessage(msg string, maxLen int) string {
	return truncate.Truncate(msg, maxLen, "...", truncate.PositionEnd)
}

// importanceLevel maps a 0-100 importance score to high, medium or low.
func importanceLevel(importance int) string {
	switch {
	case importance >= highImportance:
		return "high"
	case importance >= mediumImportance:
		return "medium"
	default:
		return "low"
	}
}

// countLabel renders "1 commit" or "3 commits".
func countLabel(word string, count int) string {
	if count >= 1000 {
		return humanize.Comma(int64(count)) + " " + plural.Pluralize(word, count, false)
	}
	return plural.Pluralize(word, count, true)
}

func relativeTime(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

func commitDate(c git.Commit) string {
	return c.Time().Format(reportDateTimeLayout)
}

// oneLine collapses a commit message to its title.
func oneLine(c git.Commit) string {
	return strings.TrimSpace(c.Title())
}

func formatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}
