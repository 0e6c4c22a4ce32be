package output

import (
	"time"

	"github.com/masmgr/folio/internal/aggregation"
	"github.com/masmgr/folio/internal/profile"
	"github.com/masmgr/folio/internal/projects"
	"github.com/masmgr/folio/internal/selection"
)

// JSONViewWriter writes view reports as JSON.
type JSONViewWriter struct{}

// JSONViewReport is the JSON output structure for a view.
type JSONViewReport struct {
	Source         string                  `json:"source"`
	GeneratedAt    string                  `json:"generatedAt"`
	Stats          aggregation.Stats       `json:"stats"`
	Domain         *JSONDomain             `json:"domain,omitempty"`
	Progress       float64                 `json:"progress"`
	Cutoff         string                  `json:"cutoff,omitempty"`
	Filtered       int                     `json:"filteredCommits"`
	Displayed      int                     `json:"displayedCommits"`
	Window         *selection.Window       `json:"window,omitempty"`
	Selection      *selection.Rect         `json:"selection"`
	SelectionLabel string                  `json:"selectionLabel"`
	Selected       []aggregation.Summary   `json:"selected"`
	Breakdown      selection.Breakdown     `json:"breakdown"`
	Commits        []aggregation.Summary   `json:"commits,omitempty"`
	Files          []aggregation.FileUnits `json:"files,omitempty"`
}

// JSONDomain is the time extent of the commit pool.
type JSONDomain struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

func newJSONViewReport(report *ViewReport, options OutputOptions) JSONViewReport {
	out := JSONViewReport{
		Source:         report.Source,
		GeneratedAt:    report.GeneratedAt.Format(time.RFC3339),
		Stats:          report.Stats,
		Progress:       report.State.Progress,
		Filtered:       len(report.State.Filtered),
		Displayed:      len(report.State.Display),
		Window:         report.State.Window,
		Selection:      report.State.Selection,
		SelectionLabel: report.SelectionLabel(),
		Selected:       summaries(report.State.Selected),
		Breakdown:      report.State.Breakdown,
	}
	if !report.Domain.Min.IsZero() {
		out.Domain = &JSONDomain{
			Min: report.Domain.Min.Format(time.RFC3339),
			Max: report.Domain.Max.Format(time.RFC3339),
		}
	}
	if !report.State.Cutoff.IsZero() {
		out.Cutoff = report.State.Cutoff.Format(time.RFC3339)
	}
	if options.Detail {
		out.Commits = summaries(limitTop(report.State.Display, options.Top))
		out.Files = limitTop(report.Files, options.Top)
	}
	return out
}

// Write outputs the view report as JSON.
func (w *JSONViewWriter) Write(report *ViewReport, options OutputOptions) error {
	return writeJSON(options, newJSONViewReport(report, options))
}

// JSONNarrativeWriter writes narrative reports as JSON.
type JSONNarrativeWriter struct{}

// JSONNarrativeReport is the JSON output structure for a narrative window.
type JSONNarrativeReport struct {
	Source      string                    `json:"source"`
	GeneratedAt string                    `json:"generatedAt"`
	Total       int                       `json:"totalCommits"`
	Window      selection.Window          `json:"window"`
	Items       []selection.NarrativeItem `json:"items"`
}

// Write outputs the narrative report as JSON.
func (w *JSONNarrativeWriter) Write(report *NarrativeReport, options OutputOptions) error {
	items := report.Items
	if items == nil {
		items = []selection.NarrativeItem{}
	}
	return writeJSON(options, JSONNarrativeReport{
		Source:      report.Source,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		Total:       report.Total,
		Window:      report.Window,
		Items:       items,
	})
}

// JSONProjectsWriter writes projects reports as JSON.
type JSONProjectsWriter struct{}

// JSONProjectsReport is the JSON output structure for the projects page.
type JSONProjectsReport struct {
	Source      string             `json:"source"`
	GeneratedAt string             `json:"generatedAt"`
	Total       int                `json:"total"`
	Query       string             `json:"query,omitempty"`
	Year        string             `json:"year,omitempty"`
	Projects    []projects.Project `json:"projects"`
	Pie         []projects.Slice   `json:"pie"`
}

// Write outputs the projects report as JSON.
func (w *JSONProjectsWriter) Write(report *ProjectsReport, options OutputOptions) error {
	list := limitTop(report.Result.Projects, options.Top)
	if list == nil {
		list = []projects.Project{}
	}
	pie := report.Result.Pie
	if pie == nil {
		pie = []projects.Slice{}
	}
	return writeJSON(options, JSONProjectsReport{
		Source:      report.Source,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		Total:       report.Total,
		Query:       report.Query,
		Year:        report.Result.Selected,
		Projects:    list,
		Pie:         pie,
	})
}

// JSONProfileWriter writes profile reports as JSON.
type JSONProfileWriter struct{}

// JSONProfileReport is the JSON output structure for the stats panel.
type JSONProfileReport struct {
	Username    string        `json:"username"`
	GeneratedAt string        `json:"generatedAt"`
	Stats       profile.Stats `json:"stats"`
}

// Write outputs the profile report as JSON.
func (w *JSONProfileWriter) Write(report *ProfileReport, options OutputOptions) error {
	return writeJSON(options, JSONProfileReport{
		Username:    report.Username,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		Stats:       report.Stats,
	})
}
