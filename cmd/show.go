package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/timemachine-go/internal/git"
	"github.com/masmgr/timemachine-go/internal/insight"
	"github.com/masmgr/timemachine-go/internal/output"
)

func styleFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "style",
		Usage: "Syntax highlighting style for console output (\"none\" disables it)",
		Value: output.DefaultStyle,
	}
}

// ShowCmd returns the show command.
func ShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a commit and the files it changed",
		ArgsUsage: "<commit>",
		Flags:     commonFlags(),
		Action:    showAction,
	}
}

// CatCmd returns the cat command.
func CatCmd() *cli.Command {
	return &cli.Command{
		Name:      "cat",
		Usage:     "Print a file as it was at a commit, or a blob by its identifier",
		ArgsUsage: "<commit|blob> [path]",
		Flags:     append(commonFlags(), styleFlag()),
		Action:    catAction,
	}
}

// DiffCmd returns the diff command.
func DiffCmd() *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "Print the old and new content of a file changed by a commit",
		ArgsUsage: "<commit> <path>",
		Flags:     append(commonFlags(), styleFlag()),
		Action:    diffAction,
	}
}

func showAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("show requires a commit identifier")
	}

	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		commit, err := ctx.findCommit(c, c.Args().Get(0))
		if err != nil {
			return err
		}

		changes := ctx.Filter.FilterChanges(ctx.History.CommitChanges(c.Context, commit.OID))
		return writeCommitReport(c, &output.CommitReport{
			Repo:    ctx.Repo,
			Commit:  commit,
			Changes: changes,
		})
	})
}

func catAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("cat requires a commit or blob identifier")
	}

	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		oid := c.Args().Get(0)
		path := c.Args().Get(1)

		// Expand abbreviated commit identifiers; anything else is passed through as a blob or tree.
		if commit, ok := insight.FindCommit(ctx.Commits(c), oid); ok {
			oid = commit.OID
		}

		content, found := ctx.History.FileAtCommit(c.Context, path, oid)
		return output.WriteContent(&output.ContentReport{
			Repo:    ctx.Repo,
			Path:    path,
			OID:     oid,
			Content: content,
			Found:   found,
		}, OutputOptions(c))
	})
}

func diffAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("diff requires a commit identifier and a path")
	}

	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		commit, err := ctx.findCommit(c, c.Args().Get(0))
		if err != nil {
			return err
		}

		path := c.Args().Get(1)
		change, ok := lo.Find(ctx.History.CommitChanges(c.Context, commit.OID), func(fc git.FileChange) bool {
			return fc.Path == path
		})
		if !ok {
			return fmt.Errorf("%s was not changed by commit %s", path, commit.ShortOID())
		}

		return output.WriteDiff(&output.DiffReport{
			Repo:   ctx.Repo,
			Path:   path,
			Commit: commit.OID,
			Change: change.Kind,
			Diff:   ctx.History.ChangeDiff(c.Context, commit, change),
		}, OutputOptions(c))
	})
}

// findCommit resolves a full or abbreviated identifier among the loaded commits.
func (ctx *CommandContext) findCommit(c *cli.Context, oid string) (git.Commit, error) {
	commits := ctx.Commits(c)
	commit, ok := insight.FindCommit(commits, oid)
	if !ok {
		return git.Commit{}, fmt.Errorf("commit %s not found in the last %d commits (raise --limit or use a longer identifier)", oid, len(commits))
	}
	return commit, nil
}
