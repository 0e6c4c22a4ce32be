package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/folio/internal/output"
	"github.com/masmgr/folio/internal/selection"
)

// SessionCmd returns the session command.
func SessionCmd() *cli.Command {
	return &cli.Command{
		Name:  "session",
		Usage: "Read view events as NDJSON on stdin and write one view state per event",
		Description: `Each input line is one event:
  {"type":"progress","value":50}
  {"type":"brush","rect":{"x0":100,"y0":50,"x1":600,"y1":400}}
  {"type":"clear"}
  {"type":"scroll","offset":250}
The initial state is written first. Malformed lines produce an error line and are skipped.`,
		Flags: concatFlags(commonFlags(), []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
			&cli.BoolFlag{
				Name:  "detail",
				Usage: "Include the displayed commit ids in each state",
			},
		}),
		Action: sessionAction,
	}
}

// sessionEvent is one line of the input stream.
type sessionEvent struct {
	Type   string          `json:"type"`
	Value  *float64        `json:"value,omitempty"`
	Offset *float64        `json:"offset,omitempty"`
	Rect   *selection.Rect `json:"rect,omitempty"`
}

func parseSessionEvent(line string) (selection.Event, string, error) {
	var ev sessionEvent
	if err := json.Unmarshal([]byte(line), &ev); err != nil {
		return nil, "", fmt.Errorf("invalid event: %w", err)
	}

	kind := strings.ToLower(ev.Type)
	switch kind {
	case "progress":
		if ev.Value == nil {
			return nil, kind, fmt.Errorf("progress event requires a value")
		}
		return selection.Progress{Percent: *ev.Value}, kind, nil
	case "brush":
		if ev.Rect == nil {
			return nil, kind, fmt.Errorf("brush event requires a rect")
		}
		return selection.Brush{Rect: ev.Rect.Normalize()}, kind, nil
	case "clear":
		return selection.ClearBrush{}, kind, nil
	case "scroll":
		if ev.Offset == nil {
			return nil, kind, fmt.Errorf("scroll event requires an offset")
		}
		return selection.Scroll{Offset: *ev.Offset}, kind, nil
	}
	return nil, kind, fmt.Errorf("unknown event type %q", ev.Type)
}

func sessionAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		opts := output.OutputOptions{Format: output.FormatNDJSON, Detail: c.Bool("detail"), Writer: c.App.Writer}
		if path := c.String("output"); path != "" {
			file, err := os.Create(path)
			if err != nil {
				return err
			}
			defer file.Close()
			opts.Writer = file
		}

		writer := &output.NDJSONViewWriter{}
		state := ctx.Engine.Initial()
		if err := writer.Write(ctx.ViewReport(state, "init"), opts); err != nil {
			return err
		}

		scanner := bufio.NewScanner(c.App.Reader)
		lineNo := 0
		for scanner.Scan() {
			lineNo++
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			ev, kind, err := parseSessionEvent(line)
			if err != nil {
				ctx.Logger.WithError(err).WithField("line", lineNo).Warn("Skipping session event")
				if err := output.WriteNDJSONError(opts, lineNo, err); err != nil {
					return err
				}
				continue
			}

			state = ctx.Engine.Apply(state, ev)
			if err := writer.Write(ctx.ViewReport(state, kind), opts); err != nil {
				return err
			}
		}
		return scanner.Err()
	})
}
