package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/masmgr/folio/internal/selection"
)

// MarkdownViewWriter writes view reports as Markdown.
type MarkdownViewWriter struct{}

// Write outputs the view report as Markdown.
func (w *MarkdownViewWriter) Write(report *ViewReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	state := report.State

	// Header
	fmt.Fprintln(out, "# Commit View")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Source:** %s\n\n", escapeMarkdown(report.Source))

	fmt.Fprintln(out, "## Summary")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "| Total LOC | Total commits | Files | Max depth |")
	fmt.Fprintln(out, "|-----------|---------------|-------|-----------|")
	fmt.Fprintf(out, "| %d | %d | %d | %d |\n\n",
		report.Stats.TotalLines, report.Stats.TotalCommits, report.Stats.Files, report.Stats.MaxDepth)

	fmt.Fprintf(out, "**Time cursor:** %s (%s)\n\n", selection.FormatPercent(state.Progress/100), formatLongDateTime(state.Cutoff))
	fmt.Fprintf(out, "**Commits up to cursor:** %d\n\n", len(state.Filtered))

	fmt.Fprintln(out, "## Selection")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s\n\n", report.SelectionLabel())
	if !state.Breakdown.IsEmpty() {
		fmt.Fprintln(out, "| Type | Lines | Share |")
		fmt.Fprintln(out, "|------|-------|-------|")
		for _, t := range state.Breakdown.Types {
			fmt.Fprintf(out, "| %s | %d | %s |\n", escapeMarkdown(t.Type), t.Count, selection.FormatPercent(t.Proportion))
		}
		fmt.Fprintln(out)
	}

	if options.Detail {
		fmt.Fprintln(out, "## Commits")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "| # | Commit | Author | When | Lines | Files |")
		fmt.Fprintln(out, "|---|--------|--------|------|-------|-------|")
		for i, c := range limitTop(state.Display, options.Top) {
			fmt.Fprintf(out, "| %d | %s | %s | %s | %d | %d |\n",
				i+1, markdownCommitLink(c.ShortID(), c.URL), escapeMarkdown(c.Author),
				c.Datetime.Format(reportDateTimeLayout), c.TotalLines, c.FileCount())
		}
		fmt.Fprintln(out)

		fmt.Fprintln(out, "## Files")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "| File | Lines | Types |")
		fmt.Fprintln(out, "|------|-------|-------|")
		for _, f := range limitTop(report.Files, options.Top) {
			fmt.Fprintf(out, "| `%s` | %d | %s |\n", f.Name, f.LineCount(), escapeMarkdown(strings.Join(uniqueTypes(f.Types), ", ")))
		}
		fmt.Fprintln(out)
	}

	return nil
}

func markdownCommitLink(text, url string) string {
	if url == "" {
		return "`" + text + "`"
	}
	return fmt.Sprintf("[`%s`](%s)", text, url)
}

// MarkdownNarrativeWriter writes narrative reports as Markdown.
type MarkdownNarrativeWriter struct{}

// Write outputs the narrative window as Markdown.
func (w *MarkdownNarrativeWriter) Write(report *NarrativeReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	fmt.Fprintln(out, "# Commit Story")
	fmt.Fprintln(out)
	if len(report.Items) == 0 {
		fmt.Fprintln(out, "No commits available.")
		return nil
	}
	for _, item := range limitTop(report.Items, options.Top) {
		fmt.Fprintf(out, "%d. %s\n", item.Index+1, narrativeMarkdown(item))
	}
	return nil
}

func narrativeMarkdown(item selection.NarrativeItem) string {
	text := escapeMarkdown(item.Text)
	if item.Commit.URL == "" {
		return text
	}
	return fmt.Sprintf("%s ([%s](%s))", text, item.Commit.ID, item.Commit.URL)
}

// MarkdownProjectsWriter writes projects reports as Markdown.
type MarkdownProjectsWriter struct{}

// Write outputs the project cards as Markdown.
func (w *MarkdownProjectsWriter) Write(report *ProjectsReport, options OutputOptions) error {
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
	fmt.Fprintf(out, "# %s\n\n", heading)

	list := limitTop(report.Result.Projects, options.Top)
	if len(list) == 0 {
		fmt.Fprintln(out, noProjectsMessage)
		return nil
	}

	for _, p := range list {
		fmt.Fprintf(out, "## %s\n\n", escapeMarkdown(p.Title))
		if p.Image != "" {
			fmt.Fprintf(out, "![%s](%s)\n\n", escapeMarkdown(p.Title), p.Image)
		}
		if p.Description != "" {
			fmt.Fprintf(out, "%s\n\n", p.Description)
		}
		if p.Year != "" {
			fmt.Fprintf(out, "**Year:** %s\n\n", p.Year)
		}
	}

	writeMarkdownPie(out, report)
	return nil
}

func writeMarkdownPie(out io.Writer, report *ProjectsReport) {
	if len(report.Result.Pie) == 0 {
		return
	}
	fmt.Fprintln(out, "## Projects by Year")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "| Year | Projects |")
	fmt.Fprintln(out, "|------|----------|")
	for _, s := range report.Result.Pie {
		label := escapeMarkdown(s.Label)
		if s.Label == report.Result.Selected {
			label = "**" + label + "**"
		}
		fmt.Fprintf(out, "| %s | %d |\n", label, s.Value)
	}
}

// MarkdownProfileWriter writes profile reports as Markdown.
type MarkdownProfileWriter struct{}

// Write outputs the stats panel as a Markdown definition table.
func (w *MarkdownProfileWriter) Write(report *ProfileReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	fmt.Fprintf(out, "# GitHub Profile: %s\n\n", escapeMarkdown(report.Username))
	fmt.Fprintln(out, "| Public Repos | Public Gists | Followers | Following |")
	fmt.Fprintln(out, "|--------------|--------------|-----------|-----------|")
	fmt.Fprintf(out, "| %d | %d | %d | %d |\n",
		report.Stats.PublicRepos, report.Stats.PublicGists, report.Stats.Followers, report.Stats.Following)
	return nil
}
