package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/folio/internal/output"
)

func writeViewReport(c *cli.Context, report *output.ViewReport) error {
	opts, err := OutputOptions(c)
	if err != nil {
		return err
	}
	writer := output.NewViewReportWriter(opts.Format)
	return writer.Write(report, opts)
}

func writeNarrativeReport(c *cli.Context, report *output.NarrativeReport) error {
	opts, err := OutputOptions(c)
	if err != nil {
		return err
	}
	writer := output.NewNarrativeReportWriter(opts.Format)
	return writer.Write(report, opts)
}

// writeProjectsReport resolves the color scheme only for HTML output.
func writeProjectsReport(c *cli.Context, report *output.ProjectsReport, scheme func() string) error {
	opts, err := OutputOptions(c)
	if err != nil {
		return err
	}
	if opts.Format == output.FormatHTML {
		opts.Scheme = scheme()
	}
	writer := output.NewProjectsReportWriter(opts.Format)
	return writer.Write(report, opts)
}

func writeProfileReport(c *cli.Context, report *output.ProfileReport) error {
	opts, err := OutputOptions(c)
	if err != nil {
		return err
	}
	writer := output.NewProfileReportWriter(opts.Format)
	return writer.Write(report, opts)
}
