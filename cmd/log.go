package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/timemachine-go/internal/git"
	"github.com/masmgr/timemachine-go/internal/insight"
	"github.com/masmgr/timemachine-go/internal/output"
)

// LogCmd returns the log command.
func LogCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:    "search",
			Aliases: []string{"s"},
			Usage:   "Keep commits whose message or author contains this text (case-insensitive)",
		},
		&cli.StringFlag{
			Name:    "within",
			Aliases: []string{"w"},
			Usage:   "Keep commits from the last day, week, month or year",
		},
		&cli.StringFlag{
			Name:  "since",
			Usage: "Keep commits on or after this date (YYYY-MM-DD)",
		},
		&cli.StringFlag{
			Name:  "until",
			Usage: "Keep commits on or before this date (YYYY-MM-DD)",
		},
	)

	return &cli.Command{
		Name:    "log",
		Aliases: []string{"l"},
		Usage:   "List commits, newest first",
		Flags:   flags,
		Action:  logAction,
	}
}

func logAction(c *cli.Context) error {
	window, err := insight.ParseWindow(c.String("within"))
	if err != nil {
		return err
	}
	since, err := parseDateFlag(c.String("since"))
	if err != nil {
		return fmt.Errorf("invalid since date: %w", err)
	}
	until, err := parseDateFlag(c.String("until"))
	if err != nil {
		return fmt.Errorf("invalid until date: %w", err)
	}

	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		now := time.Now()
		commits := ctx.Commits(c)

		filtered := filterTimeline(commits, c.String("search"), window, since, until, now)

		report := &output.LogReport{
			Repo:        ctx.Repo,
			GeneratedAt: now,
			Total:       len(commits),
			Commits:     filtered,
		}
		return writeLogReport(c, report)
	})
}

// filterTimeline applies the search, relative window and date range in turn.
// The until date is inclusive of the whole day.
func filterTimeline(commits []git.Commit, search string, window insight.Window, since, until *time.Time, now time.Time) []git.Commit {
	filtered := insight.SearchCommits(commits, search)
	filtered = insight.CommitsWithin(filtered, window, now)

	var start, end time.Time
	if since != nil {
		start = *since
	}
	if until != nil {
		end = until.Add(24*time.Hour - time.Nanosecond)
	}
	return insight.CommitsInRange(filtered, start, end)
}
