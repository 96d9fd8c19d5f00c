package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/timemachine-go/config"
	"github.com/masmgr/timemachine-go/internal/git"
	"github.com/masmgr/timemachine-go/internal/output"
)

// CommandContext holds common state for command execution.
// It encapsulates repository acquisition, logging and caching shared by all commands.
type CommandContext struct {
	Config  *config.Config
	Logger  *logrus.Logger
	Repo    string
	History *git.History
	Filter  git.PathFilter

	cache *git.BoltCache
}

// NewCommandContext creates a context from CLI flags.
// It loads configuration, opens or clones the repository and builds the History handle.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.Log, os.Stderr)
	if err != nil {
		return nil, err
	}

	filter := git.PathFilter{Include: cfg.Filters.Include, Exclude: cfg.Filters.Exclude}
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("invalid path filter: %w", err)
	}

	resolver, repoName, err := acquire(c, cfg, logger)
	if err != nil {
		return nil, err
	}

	ctx := &CommandContext{
		Config: cfg,
		Logger: logger,
		Repo:   repoName,
		Filter: filter,
	}

	opts := []git.Option{git.WithLogger(logger), git.WithName(repoName)}
	if cfg.Cache.Path != "" {
		cache, err := git.OpenBoltCache(cfg.Cache.Path, repoName, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		ctx.cache = cache
		opts = append(opts, git.WithCache(cache))
	}
	ctx.History = git.NewHistory(resolver, opts...)

	return ctx, nil
}

// Close releases the History handle. A persistent cache is closed without
// clearing so later runs reuse its entries.
func (ctx *CommandContext) Close() error {
	if ctx.cache != nil {
		return ctx.cache.Close()
	}
	ctx.History.Close()
	return nil
}

// Commits loads the configured number of commits.
func (ctx *CommandContext) Commits(c *cli.Context) []git.Commit {
	return ctx.History.Commits(c.Context, ctx.Config.History.Limit)
}

// executeWithContext builds a CommandContext, runs fn and releases it.
func executeWithContext(c *cli.Context, fn func(ctx *CommandContext, c *cli.Context) error) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	defer ctx.Close()
	return fn(ctx, c)
}

// OutputOptions creates OutputOptions from CLI flags.
func OutputOptions(c *cli.Context) output.OutputOptions {
	return output.OutputOptions{
		Format:     getOutputFormat(c.String("format")),
		Top:        c.Int("top"),
		OutputPath: c.String("output"),
		Style:      c.String("style"),
	}
}

func newLogger(cfg config.LogConfig, out io.Writer) (*logrus.Logger, error) {
	level, err := cfg.ParseLevel()
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(level)
	return logger, nil
}

// acquire opens the local repository or clones the GitHub URL, returning the
// resolver and a stable name used for logging and cache keys.
func acquire(c *cli.Context, cfg *config.Config, logger *logrus.Logger) (git.ObjectResolver, string, error) {
	if url := c.String("url"); url != "" {
		owner, name, err := git.ParseGitHubURL(url)
		if err != nil {
			return nil, "", err
		}
		repoName := fmt.Sprintf("github.com/%s/%s", owner, name)

		opts := git.CloneOptions{
			Depth:        cfg.Clone.Depth,
			SingleBranch: cfg.Clone.SingleBranch,
			Branch:       cfg.History.Branch,
		}
		if logger.IsLevelEnabled(logrus.InfoLevel) {
			opts.Progress = os.Stderr
		}
		status(c, "Cloning %s (depth %d)...", repoName, cfg.Clone.Depth)
		resolver, err := git.CloneGitHub(c.Context, url, opts)
		if err != nil {
			return nil, "", err
		}
		logger.WithField("repo", repoName).Info("cloned repository into memory")
		return resolver, repoName, nil
	}

	repoPath := c.String("repo")
	resolver, err := git.OpenLocal(repoPath, cfg.History.Branch)
	if err != nil {
		return nil, "", err
	}
	repoName := repoPath
	if abs, err := filepath.Abs(repoPath); err == nil {
		repoName = abs
	}
	return resolver, repoName, nil
}

// status prints a progress line on stderr for console output only.
func status(c *cli.Context, format string, args ...interface{}) {
	if getOutputFormat(c.String("format")) != output.FormatConsole {
		return
	}
	color.New(color.FgGreen).Fprintf(os.Stderr, format+"\n", args...)
}
