package output

import (
	"time"

	"github.com/masmgr/folio/internal/selection"
)

// NDJSONViewWriter writes one JSON object per line for streaming sessions.
// Each Write emits a single "state" line.
type NDJSONViewWriter struct{}

// NDJSONState is one line of a session stream.
type NDJSONState struct {
	Type           string              `json:"type"`
	Event          string              `json:"event,omitempty"`
	Progress       float64             `json:"progress"`
	Cutoff         string              `json:"cutoff,omitempty"`
	Filtered       int                 `json:"filteredCommits"`
	Displayed      int                 `json:"displayedCommits"`
	Window         *selection.Window   `json:"window,omitempty"`
	Selection      *selection.Rect     `json:"selection"`
	SelectionLabel string              `json:"selectionLabel"`
	Selected       []string            `json:"selected"`
	Breakdown      selection.Breakdown `json:"breakdown"`
	Display        []string            `json:"display,omitempty"`
}

// NDJSONError reports an event that could not be applied.
type NDJSONError struct {
	Type    string `json:"type"`
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// Write outputs the view state as one NDJSON line.
func (w *NDJSONViewWriter) Write(report *ViewReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	state := NDJSONState{
		Type:           "state",
		Event:          report.Event,
		Progress:       report.State.Progress,
		Filtered:       len(report.State.Filtered),
		Displayed:      len(report.State.Display),
		Window:         report.State.Window,
		Selection:      report.State.Selection,
		SelectionLabel: report.SelectionLabel(),
		Selected:       commitIDs(report.State.Selected),
		Breakdown:      report.State.Breakdown,
	}
	if !report.State.Cutoff.IsZero() {
		state.Cutoff = report.State.Cutoff.Format(time.RFC3339)
	}
	if options.Detail {
		state.Display = commitIDs(report.State.Display)
	}
	return writeNDJSONLine(out, state)
}

// WriteNDJSONError writes an error line to the stream.
func WriteNDJSONError(options OutputOptions, line int, err error) error {
	out, file, openErr := openOutputWriter(options)
	if openErr != nil {
		return openErr
	}
	if file != nil {
		defer file.Close()
	}
	return writeNDJSONLine(out, NDJSONError{Type: "error", Line: line, Message: err.Error()})
}
