package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/masmgr/folio/internal/aggregation"
	"github.com/masmgr/folio/internal/profile"
	"github.com/masmgr/folio/internal/projects"
	"github.com/masmgr/folio/internal/selection"
)

// Compile-time interface conformance checks.
// These ensure that all writer types correctly implement their respective interfaces.
var (
	// ViewReportWriter implementations
	_ ViewReportWriter = (*ConsoleViewWriter)(nil)
	_ ViewReportWriter = (*JSONViewWriter)(nil)
	_ ViewReportWriter = (*CSVViewWriter)(nil)
	_ ViewReportWriter = (*MarkdownViewWriter)(nil)
	_ ViewReportWriter = (*NDJSONViewWriter)(nil)
	_ ViewReportWriter = (*HTMLViewWriter)(nil)

	// NarrativeReportWriter implementations
	_ NarrativeReportWriter = (*ConsoleNarrativeWriter)(nil)
	_ NarrativeReportWriter = (*JSONNarrativeWriter)(nil)
	_ NarrativeReportWriter = (*CSVNarrativeWriter)(nil)
	_ NarrativeReportWriter = (*MarkdownNarrativeWriter)(nil)

	// ProjectsReportWriter implementations
	_ ProjectsReportWriter = (*ConsoleProjectsWriter)(nil)
	_ ProjectsReportWriter = (*JSONProjectsWriter)(nil)
	_ ProjectsReportWriter = (*CSVProjectsWriter)(nil)
	_ ProjectsReportWriter = (*MarkdownProjectsWriter)(nil)
	_ ProjectsReportWriter = (*HTMLProjectsWriter)(nil)

	// ProfileReportWriter implementations
	_ ProfileReportWriter = (*ConsoleProfileWriter)(nil)
	_ ProfileReportWriter = (*JSONProfileWriter)(nil)
	_ ProfileReportWriter = (*MarkdownProfileWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatNDJSON   OutputFormat = "ndjson"
	FormatHTML     OutputFormat = "html"
)

// ParseFormat validates a --format value. Empty means console.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case "":
		return FormatConsole, nil
	case FormatConsole, FormatJSON, FormatCSV, FormatMarkdown, FormatNDJSON, FormatHTML:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown format %q (want console, json, csv, markdown, ndjson, or html)", s)
}

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Top        int
	OutputPath string
	Writer     io.Writer // overrides OutputPath and stdout when set
	Detail     bool      // include per-commit and per-file listings
	Scheme     string    // color scheme for HTML charts; "dark" switches the theme
}

// ViewReport is the scatterplot view after the time cursor and brush are applied.
type ViewReport struct {
	Source      string
	GeneratedAt time.Time
	Event       string // event that produced the state, for streams
	Stats       aggregation.Stats
	Domain      selection.TimeDomain
	State       selection.State
	Projection  selection.Projection
	Chart       selection.Chart
	Files       []aggregation.FileUnits
	Pie         []projects.Slice // optional projects-per-year pie for the HTML page
}

// SelectionLabel is the selection count line, e.g. "No commits selected".
func (r *ViewReport) SelectionLabel() string {
	return selectionLabel(len(r.State.Selected))
}

// NarrativeReport is the window of the commit story at a scroll position.
type NarrativeReport struct {
	Source      string
	GeneratedAt time.Time
	Total       int
	Window      selection.Window
	Items       []selection.NarrativeItem
}

// ProjectsReport is the projects page for a query and wedge selection.
type ProjectsReport struct {
	Source      string
	GeneratedAt time.Time
	Total       int
	Query       string
	Result      projects.Result
	Heading     string // card heading, e.g. "Latest Projects"
}

// ProfileReport is the GitHub stats panel.
type ProfileReport struct {
	Username    string
	GeneratedAt time.Time
	Stats       profile.Stats
}

// ViewReportWriter writes view reports.
type ViewReportWriter interface {
	Write(report *ViewReport, options OutputOptions) error
}

// NarrativeReportWriter writes narrative reports.
type NarrativeReportWriter interface {
	Write(report *NarrativeReport, options OutputOptions) error
}

// ProjectsReportWriter writes projects reports.
type ProjectsReportWriter interface {
	Write(report *ProjectsReport, options OutputOptions) error
}

// ProfileReportWriter writes profile reports.
type ProfileReportWriter interface {
	Write(report *ProfileReport, options OutputOptions) error
}

// NewViewReportWriter creates a view report writer for the specified format.
func NewViewReportWriter(format OutputFormat) ViewReportWriter {
	switch format {
	case FormatJSON:
		return &JSONViewWriter{}
	case FormatCSV:
		return &CSVViewWriter{}
	case FormatMarkdown:
		return &MarkdownViewWriter{}
	case FormatNDJSON:
		return &NDJSONViewWriter{}
	case FormatHTML:
		return &HTMLViewWriter{}
	default:
		return &ConsoleViewWriter{}
	}
}

// NewNarrativeReportWriter creates a narrative report writer for the specified format.
func NewNarrativeReportWriter(format OutputFormat) NarrativeReportWriter {
	switch format {
	case FormatJSON, FormatNDJSON:
		return &JSONNarrativeWriter{}
	case FormatCSV:
		return &CSVNarrativeWriter{}
	case FormatMarkdown:
		return &MarkdownNarrativeWriter{}
	default:
		return &ConsoleNarrativeWriter{}
	}
}

// NewProjectsReportWriter creates a projects report writer for the specified format.
func NewProjectsReportWriter(format OutputFormat) ProjectsReportWriter {
	switch format {
	case FormatJSON, FormatNDJSON:
		return &JSONProjectsWriter{}
	case FormatCSV:
		return &CSVProjectsWriter{}
	case FormatMarkdown:
		return &MarkdownProjectsWriter{}
	case FormatHTML:
		return &HTMLProjectsWriter{}
	default:
		return &ConsoleProjectsWriter{}
	}
}

// NewProfileReportWriter creates a profile report writer for the specified format.
func NewProfileReportWriter(format OutputFormat) ProfileReportWriter {
	switch format {
	case FormatJSON, FormatNDJSON:
		return &JSONProfileWriter{}
	case FormatMarkdown:
		return &MarkdownProfileWriter{}
	default:
		return &ConsoleProfileWriter{}
	}
}
