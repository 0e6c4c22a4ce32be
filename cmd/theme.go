package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/folio/internal/store"
	"github.com/masmgr/folio/internal/theme"
)

// ThemeCmd returns the theme command.
func ThemeCmd() *cli.Command {
	return &cli.Command{
		Name:  "theme",
		Usage: "Show or change the stored color-scheme preference",
		Subcommands: []*cli.Command{
			{
				Name:   "get",
				Usage:  "Print the stored color scheme",
				Action: themeGetAction,
			},
			{
				Name:      "set",
				Usage:     "Store a color scheme",
				ArgsUsage: "<light|dark|automatic>",
				Action:    themeSetAction,
			},
			{
				Name:   "list",
				Usage:  "List the available color schemes",
				Action: themeListAction,
			},
		},
		Action: themeGetAction,
	}
}

func openPrefs(c *cli.Context) (*store.Store, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	s, err := store.Open(cfg.Prefs.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences: %w", err)
	}
	return s, nil
}

func themeGetAction(c *cli.Context) error {
	prefs, err := openPrefs(c)
	if err != nil {
		return err
	}
	defer prefs.Close()

	scheme, err := theme.Load(prefs)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s (%s)\n", scheme.Label(), scheme)
	return nil
}

func themeSetAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one color scheme")
	}
	scheme, err := theme.Parse(c.Args().First())
	if err != nil {
		return err
	}

	prefs, err := openPrefs(c)
	if err != nil {
		return err
	}
	defer prefs.Close()

	if err := theme.Save(prefs, scheme); err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(c.App.Writer, "Color scheme set to %s\n", scheme.Label())
	return nil
}

func themeListAction(c *cli.Context) error {
	for _, s := range theme.Schemes {
		fmt.Fprintf(c.App.Writer, "%-10s %q\n", s.Label(), string(s))
	}
	return nil
}

// loadScheme reads the stored scheme. Failures are logged and yield the default.
func loadScheme(path string, logger *logrus.Logger) theme.Scheme {
	prefs, err := store.Open(path)
	if err != nil {
		logger.WithError(err).Debug("Preferences unavailable, using default color scheme")
		return theme.Default
	}
	defer prefs.Close()

	scheme, err := theme.Load(prefs)
	if err != nil {
		logger.WithError(err).Warn("Failed to read color scheme")
	}
	return scheme
}
