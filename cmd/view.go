package cmd

import (
	"github.com/urfave/cli/v2"
)

// ViewCmd returns the view command.
func ViewCmd() *cli.Command {
	return &cli.Command{
		Name:    "view",
		Aliases: []string{"v"},
		Usage:   "Show the commits up to the time cursor and the brushed selection",
		Flags:   concatFlags(commonFlags(), viewFlags(), outputFlags()),
		Action:  viewAction,
	}
}

func viewAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		state, err := ctx.StateFromFlags(c)
		if err != nil {
			return err
		}
		return writeViewReport(c, ctx.ViewReport(state, "view"))
	})
}
