package cmd

import (
	"net/http"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/folio/config"
	"github.com/masmgr/folio/internal/output"
	"github.com/masmgr/folio/internal/projects"
)

// ProjectsCmd returns the projects command.
func ProjectsCmd() *cli.Command {
	return &cli.Command{
		Name:    "projects",
		Aliases: []string{"p"},
		Usage:   "List projects, filtered by a search query and a year wedge",
		Flags: concatFlags([]cli.Flag{
			&cli.StringFlag{
				Name:  "source",
				Usage: "Projects JSON file or http(s) URL (default: from config, lib/projects.json)",
			},
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "Case-insensitive search across all project fields",
			},
			&cli.StringFlag{
				Name:    "year",
				Aliases: []string{"y"},
				Usage:   "Only show projects from this year",
			},
			&cli.BoolFlag{
				Name:  "latest",
				Usage: "Show only the latest projects, as on the home page",
			},
		}, outputFlags()),
		Action: projectsAction,
	}
}

func projectsAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger, err := newLogger(c)
	if err != nil {
		return err
	}

	source := cfg.Data.ProjectsPath
	if s := c.String("source"); s != "" {
		source = s
	}

	list, err := projects.Load(c.Context, newHTTPClient(cfg), source)
	if err != nil {
		logger.WithError(err).WithField("source", source).Warn("Failed to load projects")
		list = []projects.Project{}
	}

	report := &output.ProjectsReport{
		Source:      source,
		GeneratedAt: time.Now(),
		Total:       len(list),
		Query:       c.String("query"),
		Heading:     "Projects",
	}
	if c.Bool("latest") {
		report.Heading = "Latest Projects"
		list = projects.Latest(list, cfg.Projects.LatestCount)
	}
	report.Result = projects.View{Query: report.Query, Year: c.String("year")}.Apply(list)

	return writeProjectsReport(c, report, func() string {
		return string(loadScheme(cfg.Prefs.Path, logger))
	})
}

func newHTTPClient(cfg *config.Config) *http.Client {
	return &http.Client{Timeout: time.Duration(cfg.Profile.Timeout)}
}

func (ctx *CommandContext) httpClient() *http.Client {
	return newHTTPClient(ctx.Config)
}
