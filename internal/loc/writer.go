package loc

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// Writer writes LineRecords in loc.csv format.
type Writer struct {
	cw          *csv.Writer
	wroteHeader bool
}

// NewWriter creates a loc.csv writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{cw: csv.NewWriter(w)}
}

// Write appends a record, emitting the header first if needed.
func (w *Writer) Write(rec LineRecord) error {
	if !w.wroteHeader {
		if err := w.cw.Write(Columns); err != nil {
			return err
		}
		w.wroteHeader = true
	}
	return w.cw.Write([]string{
		rec.Commit,
		rec.File,
		rec.Type,
		strconv.Itoa(rec.Line),
		strconv.Itoa(rec.Depth),
		strconv.Itoa(rec.Length),
		rec.Author,
		rec.Datetime.Format(dateLayout),
		rec.Datetime.Format(timeLayout),
		rec.Datetime.Format("-07:00"),
		rec.Datetime.Format(time.RFC3339),
	})
}

// Flush flushes buffered rows and reports any write error.
func (w *Writer) Flush() error {
	if !w.wroteHeader {
		if err := w.cw.Write(Columns); err != nil {
			return err
		}
		w.wroteHeader = true
	}
	w.cw.Flush()
	return w.cw.Error()
}

// NewRecord fills the derived date, time and timezone columns from datetime.
func NewRecord(commit, file, typ string, line, depth, length int, author string, datetime time.Time) LineRecord {
	day := time.Date(datetime.Year(), datetime.Month(), datetime.Day(), 0, 0, 0, 0, datetime.Location())
	return LineRecord{
		Commit:   commit,
		File:     file,
		Type:     typ,
		Line:     line,
		Depth:    depth,
		Length:   length,
		Author:   author,
		Date:     day,
		Time:     datetime.Format(timeLayout),
		Timezone: datetime.Format("-07:00"),
		Datetime: datetime,
	}
}
