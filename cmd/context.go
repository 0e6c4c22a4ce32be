package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/folio/config"
	"github.com/masmgr/folio/internal/aggregation"
	"github.com/masmgr/folio/internal/loc"
	"github.com/masmgr/folio/internal/output"
	"github.com/masmgr/folio/internal/selection"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across the commands that read loc.csv.
type CommandContext struct {
	Config  *config.Config
	Logger  *logrus.Logger
	Source  string
	Records []loc.LineRecord
	Commits []*aggregation.Commit
	Stats   aggregation.Stats
	Engine  *selection.Engine
}

// NewCommandContext creates a context from CLI flags.
// It performs configuration loading, loc.csv parsing, and commit aggregation.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(c)
	if err != nil {
		return nil, err
	}

	source := cfg.Data.LocPath
	records, err := loc.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", source, err)
	}

	commits := aggregation.NewAggregator(cfg.Commits.URLBase).Aggregate(records)
	logger.WithFields(logrus.Fields{
		"source":  source,
		"records": len(records),
		"commits": len(commits),
	}).Debug("Loaded line records")

	engine := selection.NewEngine(commits, chartFromConfig(cfg.Chart), selection.Narrative{
		ItemHeight:   cfg.Narrative.ItemHeight,
		VisibleCount: cfg.Narrative.VisibleCount,
	})

	return &CommandContext{
		Config:  cfg,
		Logger:  logger,
		Source:  source,
		Records: records,
		Commits: commits,
		Stats:   aggregation.Summarize(records, commits),
		Engine:  engine,
	}, nil
}

func chartFromConfig(cc config.ChartConfig) selection.Chart {
	return selection.Chart{
		Width:  cc.Width,
		Height: cc.Height,
		Margin: selection.Margin{
			Top:    cc.Margin.Top,
			Right:  cc.Margin.Right,
			Bottom: cc.Margin.Bottom,
			Left:   cc.Margin.Left,
		},
	}
}

// HasCommits returns true if the data contains any commit.
func (ctx *CommandContext) HasCommits() bool {
	return len(ctx.Commits) > 0
}

// StateFromFlags applies the cursor, scroll and brush flags to the initial state,
// in that order.
func (ctx *CommandContext) StateFromFlags(c *cli.Context) (selection.State, error) {
	state := ctx.Engine.Initial()
	if c.IsSet("progress") {
		state = ctx.Engine.Apply(state, selection.Progress{Percent: c.Float64("progress")})
	}
	if scroll := c.Float64("scroll"); scroll >= 0 {
		state = ctx.Engine.Apply(state, selection.Scroll{Offset: scroll})
	}
	if brush := c.String("brush"); brush != "" {
		rect, err := selection.ParseRect(brush)
		if err != nil {
			return state, err
		}
		state = ctx.Engine.Apply(state, selection.Brush{Rect: rect})
	}
	return state, nil
}

// ViewReport builds the report for a view state.
func (ctx *CommandContext) ViewReport(state selection.State, event string) *output.ViewReport {
	return &output.ViewReport{
		Source:      ctx.Source,
		GeneratedAt: time.Now(),
		Event:       event,
		Stats:       ctx.Stats,
		Domain:      ctx.Engine.Domain(),
		State:       state,
		Projection:  ctx.Engine.Projection(state.Display),
		Chart:       ctx.Engine.Chart(),
		Files:       aggregation.GroupFiles(state.Display),
	}
}

// OutputOptions creates OutputOptions from CLI flags.
func OutputOptions(c *cli.Context) (output.OutputOptions, error) {
	format, err := getOutputFormat(c.String("format"))
	if err != nil {
		return output.OutputOptions{}, err
	}
	opts := output.OutputOptions{
		Format:     format,
		Top:        c.Int("top"),
		OutputPath: c.String("output"),
		Detail:     c.Bool("detail"),
	}
	if opts.OutputPath == "" {
		opts.Writer = c.App.Writer
	}
	return opts, nil
}

// executeWithContext loads the shared context and runs fn with it.
func executeWithContext(c *cli.Context, fn func(ctx *CommandContext, c *cli.Context) error) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	return fn(ctx, c)
}
