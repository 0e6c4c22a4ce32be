package cmd

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/folio/internal/output"
)

// NarrativeCmd returns the narrative command.
func NarrativeCmd() *cli.Command {
	return &cli.Command{
		Name:  "narrative",
		Usage: "Show the commit story visible at a scroll offset",
		Flags: concatFlags(commonFlags(), []cli.Flag{
			&cli.Float64Flag{
				Name:  "scroll",
				Usage: "Scroll offset in pixels",
			},
		}, outputFlags()),
		Action: narrativeAction,
	}
}

func narrativeAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		commits := ctx.Engine.Commits()
		n := ctx.Engine.Narrative()
		window := n.Window(commits, c.Float64("scroll"))

		return writeNarrativeReport(c, &output.NarrativeReport{
			Source:      ctx.Source,
			GeneratedAt: time.Now(),
			Total:       len(commits),
			Window:      window,
			Items:       n.Items(window),
		})
	})
}
