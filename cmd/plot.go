package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/folio/internal/output"
	"github.com/masmgr/folio/internal/projects"
	"github.com/masmgr/folio/internal/theme"
)

// PlotCmd returns the plot command.
func PlotCmd() *cli.Command {
	return &cli.Command{
		Name:  "plot",
		Usage: "Render the commit scatterplot and breakdown as an HTML page",
		Flags: concatFlags(commonFlags(), viewFlags(), []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output HTML file path",
				Value:   "folio.html",
			},
			&cli.BoolFlag{
				Name:  "with-projects",
				Usage: "Add the projects-per-year pie to the page",
			},
			&cli.StringFlag{
				Name:  "scheme",
				Usage: "Color scheme (light, dark, \"light dark\"); default: stored preference",
			},
		}),
		Action: plotAction,
	}
}

func plotAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		state, err := ctx.StateFromFlags(c)
		if err != nil {
			return err
		}
		report := ctx.ViewReport(state, "plot")

		if c.Bool("with-projects") {
			list, err := projects.Load(c.Context, ctx.httpClient(), ctx.Config.Data.ProjectsPath)
			if err != nil {
				ctx.Logger.WithError(err).Warn("Projects unavailable, omitting pie")
			} else {
				report.Pie = projects.PieData(list)
			}
		}

		scheme, err := ctx.resolveScheme(c.String("scheme"))
		if err != nil {
			return err
		}

		opts := output.OutputOptions{
			Format:     output.FormatHTML,
			OutputPath: c.String("output"),
			Scheme:     string(scheme),
		}
		if err := output.NewViewReportWriter(output.FormatHTML).Write(report, opts); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "Wrote %s\n", opts.OutputPath)
		return nil
	})
}

// resolveScheme returns the flag value when given, otherwise the stored preference.
// A store that cannot be opened is logged and the default scheme used.
func (ctx *CommandContext) resolveScheme(flag string) (theme.Scheme, error) {
	if flag != "" {
		return theme.Parse(flag)
	}
	return loadScheme(ctx.Config.Prefs.Path, ctx.Logger), nil
}
