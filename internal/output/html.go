package output

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/masmgr/folio/internal/aggregation"
	"github.com/masmgr/folio/internal/projects"
	"github.com/masmgr/folio/internal/selection"
)

const (
	pieRadius       = "60%"
	breakdownHeight = "360px"
	pieHeight       = "420px"
	darkScheme      = "dark"
	selectedColor   = "#ff6b6b"
	commitColor     = "steelblue"
)

// HTMLViewWriter writes the view as an interactive chart page.
type HTMLViewWriter struct{}

// Write renders the scatterplot, the file-type breakdown and, when present, the projects pie.
func (w *HTMLViewWriter) Write(report *ViewReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	page := components.NewPage()
	page.PageTitle = "Commit View"
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(commitScatter(report, options.Scheme), breakdownBar(report.State.Breakdown, report.SelectionLabel(), options.Scheme))
	if report.Pie != nil {
		page.AddCharts(projectsPie(report.Pie, options.Scheme))
	}
	return page.Render(out)
}

func chartInit(width, height, scheme string) opts.Initialization {
	init := opts.Initialization{Width: width, Height: height}
	if scheme == darkScheme {
		init.Theme = darkScheme
	}
	return init
}

func commitScatter(report *ViewReport, scheme string) *charts.Scatter {
	chart := report.Chart
	if chart.Width <= 0 || chart.Height <= 0 {
		chart = selection.DefaultChart()
	}

	subtitle := fmt.Sprintf("%d commits up to %s", len(report.State.Filtered), formatLongDateTime(report.State.Cutoff))
	if len(report.State.Display) == 0 {
		subtitle = "No commits available"
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(chartInit(fmt.Sprintf("%.0fpx", chart.Width), fmt.Sprintf("%.0fpx", chart.Height), scheme)),
		charts.WithTitleOpts(opts.Title{Title: "Commits by time of day", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date", Type: "time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Time of day", Type: "value", Min: 0, Max: 24}),
	)

	picked := make(map[string]bool, len(report.State.Selected))
	for _, c := range report.State.Selected {
		picked[c.ID] = true
	}

	// Larger commits first so small dots stay clickable on top.
	ordered := make([]*aggregation.Commit, len(report.State.Display))
	copy(ordered, report.State.Display)
	sortByLinesDesc(ordered)

	var rest, selected []opts.ScatterData
	for _, c := range ordered {
		point := opts.ScatterData{
			Name:       c.ShortID(),
			Value:      []any{c.Datetime.UnixMilli(), c.HourFrac, c.Author, c.TotalLines},
			SymbolSize: symbolSize(report.Projection, c),
		}
		if picked[c.ID] {
			selected = append(selected, point)
		} else {
			rest = append(rest, point)
		}
	}

	scatter.AddSeries("Commits", rest, charts.WithItemStyleOpts(opts.ItemStyle{Color: commitColor, Opacity: opts.Float(0.7)}))
	if len(selected) > 0 {
		scatter.AddSeries("Selected", selected, charts.WithItemStyleOpts(opts.ItemStyle{Color: selectedColor, Opacity: opts.Float(0.9)}))
	}
	return scatter
}

func symbolSize(proj selection.Projection, c *aggregation.Commit) int {
	r := proj.Radius(c)
	if math.IsNaN(r) || r <= 0 {
		return 4
	}
	return int(math.Round(2 * r))
}

func sortByLinesDesc(commits []*aggregation.Commit) {
	sort.SliceStable(commits, func(i, j int) bool {
		return commits[i].TotalLines > commits[j].TotalLines
	})
}

func breakdownBar(b selection.Breakdown, label, scheme string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(chartInit("600px", breakdownHeight, scheme)),
		charts.WithTitleOpts(opts.Title{Title: "Selected lines by type", Subtitle: label}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	if b.IsEmpty() {
		return bar
	}

	labels := make([]string, len(b.Types))
	values := make([]opts.BarData, len(b.Types))
	for i, t := range b.Types {
		labels[i] = t.Type
		values[i] = opts.BarData{Name: selection.FormatPercent(t.Proportion), Value: t.Count}
	}
	bar.SetXAxis(labels).AddSeries("Lines", values,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top", Formatter: "{b}"}),
	)
	return bar
}

func projectsPie(slices []projects.Slice, scheme string) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(chartInit("600px", pieHeight, scheme)),
		charts.WithTitleOpts(opts.Title{Title: "Projects by year"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)

	data := make([]opts.PieData, len(slices))
	for i, s := range slices {
		data[i] = opts.PieData{Name: s.Label, Value: s.Value}
	}
	pie.AddSeries("Projects", data).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}: {c} ({d}%)",
			}),
			charts.WithPieChartOpts(opts.PieChart{
				Radius: pieRadius,
			}),
		)
	return pie
}

// HTMLProjectsWriter writes the projects pie as a chart page.
type HTMLProjectsWriter struct{}

// Write renders the projects-per-year pie for the filtered projects.
func (w *HTMLProjectsWriter) Write(report *ProjectsReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	page := components.NewPage()
	page.PageTitle = "Projects"
	page.AddCharts(projectsPie(report.Result.Pie, options.Scheme))
	return page.Render(out)
}
