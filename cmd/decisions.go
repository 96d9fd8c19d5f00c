package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/timemachine-go/internal/insight"
	"github.com/masmgr/timemachine-go/internal/output"
)

// DecisionsCmd returns the decisions command.
func DecisionsCmd() *cli.Command {
	categories := lo.Map(insight.AllCategories(), func(c insight.Category, _ int) string {
		return string(c)
	})

	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:  "category",
			Usage: "Only show decisions in this category (" + strings.Join(categories, ", ") + ")",
		},
		&cli.IntFlag{
			Name:  "min-importance",
			Usage: "Only show decisions with at least this importance (0-100)",
		},
	)

	return &cli.Command{
		Name:    "decisions",
		Aliases: []string{"d"},
		Usage:   "Detect architectural decisions in commit messages",
		Flags:   flags,
		Action:  decisionsAction,
	}
}

func decisionsAction(c *cli.Context) error {
	var category insight.Category
	if name := c.String("category"); name != "" {
		parsed, ok := insight.ParseCategory(name)
		if !ok {
			return fmt.Errorf("unknown category %q", name)
		}
		category = parsed
	}
	minImportance := c.Int("min-importance")
	if minImportance < 0 || minImportance > 100 {
		return fmt.Errorf("--min-importance must be between 0 and 100, got %d", minImportance)
	}

	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		commits := ctx.Commits(c)
		decisions := insight.FilterDecisions(insight.AnalyzeCommits(commits), category, minImportance)

		return writeDecisionReport(c, &output.DecisionReport{
			Repo:         ctx.Repo,
			GeneratedAt:  time.Now(),
			TotalCommits: len(commits),
			Decisions:    decisions,
		})
	})
}
