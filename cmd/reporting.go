package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/timemachine-go/internal/output"
)

func writeLogReport(c *cli.Context, report *output.LogReport) error {
	opts := OutputOptions(c)
	writer := output.NewLogReportWriter(opts.Format)
	return writer.Write(report, opts)
}

func writeCommitReport(c *cli.Context, report *output.CommitReport) error {
	opts := OutputOptions(c)
	writer := output.NewCommitReportWriter(opts.Format)
	return writer.Write(report, opts)
}

func writeDecisionReport(c *cli.Context, report *output.DecisionReport) error {
	opts := OutputOptions(c)
	writer := output.NewDecisionReportWriter(opts.Format)
	return writer.Write(report, opts)
}

func writeEvolutionReport(c *cli.Context, report *output.EvolutionReport) error {
	opts := OutputOptions(c)
	writer := output.NewEvolutionReportWriter(opts.Format)
	return writer.Write(report, opts)
}
