package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/folio/config"
	"github.com/masmgr/folio/internal/logging"
	"github.com/masmgr/folio/internal/output"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "folio",
		Usage:   "Explore a commit history and the data behind a portfolio site",
		Version: "1.0.0",
		Commands: []*cli.Command{
			StatsCmd(),
			ViewCmd(),
			NarrativeCmd(),
			SessionCmd(),
			PlotCmd(),
			ProjectsCmd(),
			ProfileCmd(),
			ThemeCmd(),
			ExportCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file (.json, .yaml)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Diagnostic log level (debug, info, warn, error)",
				Value: logging.DefaultLevel,
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Write diagnostic logs as JSON",
			},
		},
	}
}

// Common flags shared by the commands that read loc.csv
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "data",
			Aliases: []string{"d"},
			Usage:   "Path to loc.csv (default: from config, meta/loc.csv)",
		},
		&cli.StringFlag{
			Name:  "url-base",
			Usage: "Commit URL prefix, e.g. https://github.com/<owner>/<repo>/commit",
		},
	}
}

// Flags that drive the view state: cursor, brush and narrative scroll
func viewFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:    "progress",
			Aliases: []string{"p"},
			Usage:   "Time cursor position in percent (0-100)",
			Value:   100,
		},
		&cli.StringFlag{
			Name:    "brush",
			Aliases: []string{"b"},
			Usage:   "Brush rectangle in chart pixels: x0,y0,x1,y1",
		},
		&cli.Float64Flag{
			Name:  "scroll",
			Usage: "Narrative scroll offset in pixels (drives the chart when set)",
			Value: -1,
		},
	}
}

// Output flags shared by every reporting command
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ndjson, html)",
			Value:   "console",
		},
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"n"},
			Usage:   "Maximum number of rows to show (0 for all)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
		&cli.BoolFlag{
			Name:  "detail",
			Usage: "Include per-commit and per-file listings",
		},
	}
}

func concatFlags(groups ...[]cli.Flag) []cli.Flag {
	var flags []cli.Flag
	for _, g := range groups {
		flags = append(flags, g...)
	}
	return flags
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) (output.OutputFormat, error) {
	return output.ParseFormat(s)
}

// loadConfig loads configuration from file or defaults and applies flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if data := c.String("data"); data != "" {
		cfg.Data.LocPath = data
	}
	if base := c.String("url-base"); base != "" {
		cfg.Commits.URLBase = base
	}
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the diagnostic logger from the global flags.
func newLogger(c *cli.Context) (*logrus.Logger, error) {
	return logging.New(c.App.ErrWriter, c.String("log-level"), c.Bool("log-json"))
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
