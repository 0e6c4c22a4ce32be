package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/masmgr/folio/internal/aggregation"
	"github.com/masmgr/folio/internal/loc"
	"github.com/masmgr/folio/internal/projects"
	"github.com/masmgr/folio/internal/selection"
)

func init() {
	color.NoColor = true
}

var testBase = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

// newTestView builds a view over three commits. When brush is true the
// whole chart is selected.
func newTestView(t *testing.T, brush bool) *ViewReport {
	t.Helper()

	records := []loc.LineRecord{
		loc.NewRecord("aaaaaaaaaa1", "src/app.js", "js", 1, 0, 20, "Angel", testBase.Add(9*time.Hour)),
		loc.NewRecord("aaaaaaaaaa1", "src/app.js", "js", 2, 1, 18, "Angel", testBase.Add(9*time.Hour)),
		loc.NewRecord("bbbbbbbbbb2", "src/app.css", "css", 1, 0, 12, "Angel", testBase.AddDate(0, 0, 3).Add(14*time.Hour)),
		loc.NewRecord("cccccccccc3", "index.html", "html", 1, 0, 30, "Bo", testBase.AddDate(0, 0, 7).Add(22*time.Hour)),
	}
	commits := aggregation.NewAggregator("https://github.com/angel/site/commit").Aggregate(records)
	engine := selection.NewEngine(commits, selection.DefaultChart(), selection.DefaultNarrative())

	state := engine.Initial()
	if brush {
		state = engine.Apply(state, selection.Brush{Rect: engine.Chart().Bounds()})
	}

	return &ViewReport{
		Source:      "meta/loc.csv",
		GeneratedAt: testBase,
		Stats:       aggregation.Summarize(records, commits),
		Domain:      engine.Domain(),
		State:       state,
		Projection:  engine.Projection(state.Display),
		Chart:       engine.Chart(),
		Files:       aggregation.GroupFiles(commits),
	}
}

func newTestNarrative(t *testing.T) *NarrativeReport {
	t.Helper()
	view := newTestView(t, false)
	n := selection.DefaultNarrative()
	w := n.Window(view.State.Filtered, 0)
	return &NarrativeReport{
		Source:      view.Source,
		GeneratedAt: testBase,
		Total:       len(view.State.Filtered),
		Window:      w,
		Items:       n.Items(w),
	}
}

func newTestProjects(year string) *ProjectsReport {
	list := []projects.Project{
		{Title: "Folio", Description: "Portfolio site", Year: "2023"},
		{Title: "Scrolly", Description: "Scrollytelling demo", Year: "2024"},
		{Title: "Charts", Description: "Chart experiments", Year: "2023"},
	}
	return &ProjectsReport{
		Source:      "lib/projects.json",
		GeneratedAt: testBase,
		Total:       len(list),
		Result:      projects.View{Year: year}.Apply(list),
		Heading:     "Projects",
	}
}

func tempOutput(t *testing.T, name string) OutputOptions {
	t.Helper()
	return OutputOptions{OutputPath: filepath.Join(t.TempDir(), name)}
}

func readOutput(t *testing.T, options OutputOptions) string {
	t.Helper()
	data, err := os.ReadFile(options.OutputPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return string(data)
}

func bufferOutput() (OutputOptions, *bytes.Buffer) {
	var buf bytes.Buffer
	return OutputOptions{Writer: &buf}, &buf
}
