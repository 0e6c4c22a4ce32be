package output

import (
	"fmt"
	"strconv"
)

// CSVViewWriter writes the displayed commits of a view as CSV.
type CSVViewWriter struct{}

// Write outputs one row per displayed commit, flagging the selected ones.
func (w *CSVViewWriter) Write(report *ViewReport, options OutputOptions) error {
	writer, file, err := createCSVWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	picked := make(map[string]bool, len(report.State.Selected))
	for _, c := range report.State.Selected {
		picked[c.ID] = true
	}

	headers := []string{"ID", "URL", "Author", "Datetime", "HourFrac", "TotalLines", "Files", "Selected"}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, c := range limitTop(report.State.Display, options.Top) {
		row := []string{
			c.ID,
			c.URL,
			c.Author,
			c.Datetime.Format(reportDateTimeLayout),
			fmt.Sprintf("%.4f", c.HourFrac),
			strconv.Itoa(c.TotalLines),
			strconv.Itoa(c.FileCount()),
			strconv.FormatBool(picked[c.ID]),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// CSVNarrativeWriter writes narrative items as CSV.
type CSVNarrativeWriter struct{}

// Write outputs one row per narrative item.
func (w *CSVNarrativeWriter) Write(report *NarrativeReport, options OutputOptions) error {
	writer, file, err := createCSVWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	if err := writer.Write([]string{"Index", "ID", "Datetime", "TotalLines", "Files", "Text"}); err != nil {
		return err
	}
	for _, item := range limitTop(report.Items, options.Top) {
		row := []string{
			strconv.Itoa(item.Index),
			item.Commit.ID,
			item.Commit.Datetime.Format(reportDateTimeLayout),
			strconv.Itoa(item.Commit.TotalLines),
			strconv.Itoa(item.Files),
			item.Text,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// CSVProjectsWriter writes the filtered projects as CSV.
type CSVProjectsWriter struct{}

// Write outputs one row per project.
func (w *CSVProjectsWriter) Write(report *ProjectsReport, options OutputOptions) error {
	writer, file, err := createCSVWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	if err := writer.Write([]string{"Title", "Image", "Description", "Year"}); err != nil {
		return err
	}
	for _, p := range limitTop(report.Result.Projects, options.Top) {
		if err := writer.Write([]string{p.Title, p.Image, p.Description, string(p.Year)}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
