package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/folio/internal/git"
	"github.com/masmgr/folio/internal/loc"
)

// ExportCmd returns the export command.
func ExportCmd() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Aliases:   []string{"e"},
		Usage:     "Write loc.csv from a Git repository, one row per line of code",
		ArgsUsage: "[repository path]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "repo",
				Aliases: []string{"r"},
				Usage:   "Path to Git repository",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:    "branch",
				Aliases: []string{"b"},
				Usage:   "Branch or revision to export (default: HEAD)",
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "Glob patterns to include (can be specified multiple times)",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Glob patterns to exclude (can be specified multiple times)",
			},
			&cli.StringFlag{
				Name:  "type-mode",
				Usage: "How to fill the type column (extension, language)",
			},
			&cli.IntFlag{
				Name:  "indent-width",
				Usage: "Spaces per depth level",
			},
			&cli.BoolFlag{
				Name:  "include-vendor",
				Usage: "Export vendored and generated files too",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output CSV path, - for stdout (default: from config, meta/loc.csv)",
			},
		},
		Action: exportAction,
	}
}

func exportAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger, err := newLogger(c)
	if err != nil {
		return err
	}

	repoPath := c.String("repo")
	if c.NArg() > 0 {
		repoPath = c.Args().Get(0)
	}

	typeModeName := cfg.Export.TypeMode
	if c.IsSet("type-mode") {
		typeModeName = c.String("type-mode")
	}
	typeMode, ok := git.ParseTypeMode(typeModeName)
	if !ok {
		return fmt.Errorf("invalid type mode %q (expected extension or language)", typeModeName)
	}
	indentWidth := cfg.Export.IndentWidth
	if c.IsSet("indent-width") {
		indentWidth = c.Int("indent-width")
	}

	reader, err := git.NewBlameReader(git.ReadOptions{
		RepoPath:    repoPath,
		Branch:      c.String("branch"),
		Include:     cfg.Filters.Include,
		Exclude:     cfg.Filters.Exclude,
		TypeMode:    typeMode,
		IndentWidth: indentWidth,
		SkipVendor:  cfg.Export.SkipVendor && !c.Bool("include-vendor"),
	})
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	dest := cfg.Data.LocPath
	if o := c.String("output"); o != "" {
		dest = o
	}
	count, err := exportLines(c.Context, reader, c.App.Writer, dest)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"repo":    repoPath,
		"records": count,
		"output":  dest,
	}).Info("Exported line records")
	if dest != "-" {
		fmt.Fprintf(c.App.Writer, "Wrote %s lines to %s\n", humanize.Comma(int64(count)), dest)
	}
	return nil
}

// exportLines reads every line record from reader and writes them to dest.
func exportLines(ctx context.Context, reader git.LineReader, stdout io.Writer, dest string) (int, error) {
	records, err := reader.ReadLines(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read repository: %w", err)
	}
	if err := writeLocFile(stdout, dest, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// writeLocFile writes records to path, or to stdout when path is "-".
func writeLocFile(stdout io.Writer, path string, records []loc.LineRecord) error {
	out := stdout
	if path != "-" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	w := loc.NewWriter(out)
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Flush()
}
