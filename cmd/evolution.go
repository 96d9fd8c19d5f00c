package cmd

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/timemachine-go/config"
	"github.com/masmgr/timemachine-go/internal/git"
	"github.com/masmgr/timemachine-go/internal/insight"
	"github.com/masmgr/timemachine-go/internal/output"
)

// EvolutionCmd returns the evolution command.
func EvolutionCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.IntFlag{
			Name:  "changes",
			Usage: "Number of most recent commits whose file changes are loaded (default: from config)",
		},
		&cli.IntFlag{
			Name:  "threshold",
			Usage: "Minimum modifications for a file to count as a hotspot (default: from config)",
		},
	)

	return &cli.Command{
		Name:    "evolution",
		Aliases: []string{"e"},
		Usage:   "Summarize hotspots, co-changed files, contributors, commit frequency and message patterns",
		Flags:   flags,
		Action:  evolutionAction,
	}
}

func evolutionAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		if n := c.Int("changes"); n > 0 {
			ctx.Config.History.PreloadChanges = n
		}
		if threshold := c.Int("threshold"); threshold > 0 {
			ctx.Config.Insight.HotspotThreshold = threshold
		}

		commits := ctx.Commits(c)
		preload := commits
		if n := ctx.Config.History.PreloadChanges; n > 0 && n < len(preload) {
			preload = preload[:n]
		}
		changeSets := ctx.Filter.FilterChangeSets(ctx.History.ChangeSets(c.Context, preload))

		ctx.Logger.WithFields(logrus.Fields{
			"commits":    len(commits),
			"changeSets": len(changeSets),
		}).Debug("analyzing evolution")

		return writeEvolutionReport(c, buildEvolutionReport(ctx.Repo, ctx.Config.Insight, commits, changeSets, time.Now()))
	})
}

// buildEvolutionReport runs every evolution analysis over the loaded history.
func buildEvolutionReport(repo string, cfg config.InsightConfig, commits []git.Commit, changeSets []git.ChangeSet, now time.Time) *output.EvolutionReport {
	stats := insight.AnalyzeFileEvolution(commits, changeSets)
	contributors := insight.GetContributorStats(commits)
	if cfg.TopContributors > 0 && len(contributors) > cfg.TopContributors {
		contributors = contributors[:cfg.TopContributors]
	}

	return &output.EvolutionReport{
		Repo:            repo,
		GeneratedAt:     now,
		TotalCommits:    len(commits),
		AnalyzedCommits: len(changeSets),
		TotalFiles:      len(stats),
		Threshold:       cfg.HotspotThreshold,
		Hotspots:        insight.TopHotspots(stats, cfg.HotspotThreshold, cfg.TopHotspots),
		Contributors:    contributors,
		Couplings: insight.AnalyzeCoupling(changeSets, insight.CouplingOptions{
			MinCoChanges:      cfg.MinCoChanges,
			MaxFilesPerCommit: cfg.MaxFilesPerCommit,
			Top:               cfg.TopCouplings,
		}),
		Frequency:       insight.LastMonths(insight.AnalyzeCommitFrequency(commits), cfg.FrequencyMonths),
		Patterns:        insight.DetectCommitPatterns(commits),
	}
}
