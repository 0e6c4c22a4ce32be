package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/masmgr/folio/internal/aggregation"
	"github.com/masmgr/folio/internal/selection"
)

// ConsoleViewWriter writes view reports to the console.
type ConsoleViewWriter struct{}

// Write outputs the view report to the console.
func (w *ConsoleViewWriter) Write(report *ViewReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	state := report.State
	color.New(color.FgGreen).Fprintln(out, "Commit View")
	fmt.Fprintf(out, "Source: %s\n", report.Source)
	writeConsoleStats(out, report.Stats)
	fmt.Fprintf(out, "Time cursor: %s (%s)\n", selection.FormatPercent(state.Progress/100), formatLongDateTime(state.Cutoff))
	fmt.Fprintf(out, "Commits up to cursor: %s\n", humanize.Comma(int64(len(state.Filtered))))
	if state.Window != nil {
		fmt.Fprintf(out, "Narrative window: commits %d-%d\n", state.Window.Start+1, state.Window.End)
	}
	fmt.Fprintln(out)

	if len(state.Selected) == 0 {
		color.New(color.FgYellow).Fprintln(out, report.SelectionLabel())
	} else {
		color.New(color.FgCyan).Fprintln(out, report.SelectionLabel())
		writeConsoleBreakdown(out, state.Breakdown)
	}

	if options.Detail {
		fmt.Fprintln(out)
		writeConsoleCommits(out, limitTop(state.Display, options.Top), state.Selected)
		fmt.Fprintln(out)
		writeConsoleFiles(out, limitTop(report.Files, options.Top))
	}
	return nil
}

func writeConsoleStats(out io.Writer, stats aggregation.Stats) {
	fmt.Fprintf(out, "Total LOC: %s\n", humanize.Comma(int64(stats.TotalLines)))
	fmt.Fprintf(out, "Total commits: %s\n", humanize.Comma(int64(stats.TotalCommits)))
	fmt.Fprintf(out, "Files: %s\n", humanize.Comma(int64(stats.Files)))
	fmt.Fprintf(out, "Max depth: %d\n", stats.MaxDepth)
}

func writeConsoleBreakdown(out io.Writer, b selection.Breakdown) {
	if b.IsEmpty() {
		return
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Type\tLines\tShare")
	for _, t := range b.Types {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Type, humanize.Comma(int64(t.Count)), selection.FormatPercent(t.Proportion))
	}
	tw.Flush()
}

func writeConsoleCommits(out io.Writer, commits, selected []*aggregation.Commit) {
	picked := make(map[string]bool, len(selected))
	for _, c := range selected {
		picked[c.ID] = true
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCommit\tAuthor\tWhen\tLines\tFiles")
	for i, c := range commits {
		id := c.ShortID()
		if picked[c.ID] {
			id = color.CyanString("%s", id)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\n",
			i+1, id, c.Author, c.Datetime.Format(reportDateTimeLayout), c.TotalLines, c.FileCount())
	}
	tw.Flush()
}

func writeConsoleFiles(out io.Writer, files []aggregation.FileUnits) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "File\tLines\tTypes")
	for _, f := range files {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", f.Name, f.LineCount(), strings.Join(uniqueTypes(f.Types), ","))
	}
	tw.Flush()
}

func uniqueTypes(types []string) []string {
	seen := make(map[string]bool, len(types))
	var out []string
	for _, t := range types {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// ConsoleNarrativeWriter writes narrative reports to the console.
type ConsoleNarrativeWriter struct{}

// Write outputs the narrative window to the console.
func (w *ConsoleNarrativeWriter) Write(report *NarrativeReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	color.New(color.FgGreen).Fprintln(out, "Commit Story")
	if len(report.Items) == 0 {
		color.New(color.FgYellow).Fprintln(out, "No commits available")
		return nil
	}
	fmt.Fprintf(out, "Showing %d-%d of %s commits\n\n",
		report.Window.Start+1, report.Window.End, humanize.Comma(int64(report.Total)))

	for _, item := range limitTop(report.Items, options.Top) {
		header := fmt.Sprintf("%s commit", humanize.Ordinal(item.Index+1))
		if item.Commit.URL != "" {
			header += " " + item.Commit.URL
		} else {
			header += " " + item.Commit.ID
		}
		color.New(color.Bold).Fprintln(out, header)
		fmt.Fprintln(out, item.Text)
		fmt.Fprintln(out)
	}
	return nil
}

// ConsoleProjectsWriter writes projects reports to the console.
type ConsoleProjectsWriter struct{}

// Write outputs the project cards and pie summary to the console.
func (w *ConsoleProjectsWriter) Write(report *ProjectsReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	heading := report.Heading
	if heading == "" {
		heading = "Projects"
	}
	color.New(color.FgGreen).Fprintf(out, "%s (%d of %d)\n", heading, len(report.Result.Projects), report.Total)
	if report.Query != "" {
		fmt.Fprintf(out, "Search: %q\n", report.Query)
	}
	if report.Result.Selected != "" {
		fmt.Fprintf(out, "Year: %s\n", report.Result.Selected)
	}
	fmt.Fprintln(out)

	list := limitTop(report.Result.Projects, options.Top)
	if len(list) == 0 {
		color.New(color.FgYellow).Fprintln(out, noProjectsMessage)
		return nil
	}

	for _, p := range list {
		color.New(color.Bold).Fprintln(out, p.Title)
		if p.Description != "" {
			fmt.Fprintln(out, p.Description)
		}
		if p.Year != "" {
			fmt.Fprintf(out, "Year: %s\n", p.Year)
		}
		fmt.Fprintln(out)
	}

	if len(report.Result.Pie) > 0 {
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "Year\tProjects")
		for _, s := range report.Result.Pie {
			label := s.Label
			if label == report.Result.Selected {
				label = color.CyanString("%s", label)
			}
			fmt.Fprintf(tw, "%s\t%d\n", label, s.Value)
		}
		tw.Flush()
	}
	return nil
}

// ConsoleProfileWriter writes profile reports to the console.
type ConsoleProfileWriter struct{}

// Write outputs the stats panel to the console.
func (w *ConsoleProfileWriter) Write(report *ProfileReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	color.New(color.FgGreen).Fprintf(out, "GitHub Profile: %s\n", report.Username)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Public Repos:\t%s\n", humanize.Comma(int64(report.Stats.PublicRepos)))
	fmt.Fprintf(tw, "Public Gists:\t%s\n", humanize.Comma(int64(report.Stats.PublicGists)))
	fmt.Fprintf(tw, "Followers:\t%s\n", humanize.Comma(int64(report.Stats.Followers)))
	fmt.Fprintf(tw, "Following:\t%s\n", humanize.Comma(int64(report.Stats.Following)))
	return tw.Flush()
}
