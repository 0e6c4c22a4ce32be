package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/folio/internal/output"
	"github.com/masmgr/folio/internal/profile"
	"github.com/masmgr/folio/internal/store"
)

// ProfileCmd returns the profile command.
func ProfileCmd() *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Show public GitHub statistics for a user",
		Flags: concatFlags([]cli.Flag{
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "GitHub username (default: from config)",
			},
			&cli.StringFlag{
				Name:   "api-url",
				Usage:  "GitHub API base URL",
				Hidden: true,
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Bypass the local stats cache",
			},
		}, outputFlags()),
		Action: profileAction,
	}
}

func profileAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger, err := newLogger(c)
	if err != nil {
		return err
	}

	username := cfg.Profile.Username
	if u := c.String("username"); u != "" {
		username = u
	}
	if username == "" {
		return fmt.Errorf("no username: pass --username or set profile.username in the config")
	}

	opts := []profile.Option{
		profile.WithHTTPClient(newHTTPClient(cfg)),
		profile.WithLogger(logger),
	}
	if api := c.String("api-url"); api != "" {
		opts = append(opts, profile.WithBaseURL(api))
	}
	if ttl := time.Duration(cfg.Profile.CacheTTL); ttl > 0 && !c.Bool("no-cache") {
		cache, err := store.Open(cfg.Prefs.Path)
		if err != nil {
			logger.WithError(err).Warn("Stats cache unavailable")
		} else {
			defer cache.Close()
			opts = append(opts, profile.WithCache(cache, ttl))
		}
	}

	client, err := profile.NewClient(profile.LoadToken(cfg.Profile.TokenEnv), opts...)
	if err != nil {
		return err
	}

	stats, err := client.Fetch(c.Context, username)
	if err != nil {
		logger.WithError(err).WithField("username", username).Warn("Failed to fetch GitHub stats")
		return nil
	}

	return writeProfileReport(c, &output.ProfileReport{
		Username:    username,
		GeneratedAt: time.Now(),
		Stats:       *stats,
	})
}
