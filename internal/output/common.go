package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/masmgr/folio/internal/aggregation"
)

const (
	reportDateTimeLayout = "2006-01-02T15:04:05"
	longDateTimeLayout   = "January 2, 2006 at 3:04 PM"
	noProjectsMessage    = "No projects available."
)

func limitTop[T any](items []T, top int) []T {
	if top <= 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

func selectionLabel(n int) string {
	switch n {
	case 0:
		return "No commits selected"
	case 1:
		return "1 commit selected"
	default:
		return fmt.Sprintf("%d commits selected", n)
	}
}

func formatLongDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(longDateTimeLayout)
}

func summaries(commits []*aggregation.Commit) []aggregation.Summary {
	out := make([]aggregation.Summary, len(commits))
	for i, c := range commits {
		out[i] = c.Summary
	}
	return out
}

func commitIDs(commits []*aggregation.Commit) []string {
	out := make([]string, len(commits))
	for i, c := range commits {
		out[i] = c.ID
	}
	return out
}

func openOutputWriter(options OutputOptions) (io.Writer, *os.File, error) {
	if options.Writer != nil {
		return options.Writer, nil, nil
	}
	if options.OutputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(options.OutputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

func createCSVWriter(options OutputOptions) (*csv.Writer, *os.File, error) {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return nil, nil, err
	}
	return csv.NewWriter(out), file, nil
}

func writeJSON(options OutputOptions, v interface{}) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

func truncateMessage(msg string, maxLen int) string {
	if len(msg) <= maxLen {
		return msg
	}
	return msg[:maxLen-3] + "..."
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
