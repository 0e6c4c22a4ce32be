package cmd

import (
	"github.com/urfave/cli/v2"
)

// StatsCmd returns the stats command.
func StatsCmd() *cli.Command {
	return &cli.Command{
		Name:   "stats",
		Usage:  "Show dataset statistics and per-file line counts",
		Flags:  append(commonFlags(), outputFlags()...),
		Action: statsAction,
	}
}

func statsAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		report := ctx.ViewReport(ctx.Engine.Initial(), "stats")
		return writeViewReport(c, report)
	})
}
