package loc

import (
	"fmt"
	"time"
)

// Columns is the column order of a loc.csv file.
var Columns = []string{
	"commit", "file", "type", "line", "depth", "length",
	"author", "date", "time", "timezone", "datetime",
}

// LineRecord is one changed line as recorded in loc.csv.
type LineRecord struct {
	Commit   string
	File     string
	Type     string
	Line     int
	Depth    int
	Length   int
	Author   string
	Date     time.Time // midnight of the commit day in the commit's offset
	Time     string
	Timezone string
	Datetime time.Time
}

// ParseError reports a malformed row in a loc.csv source.
// Row is 1-based and counts the header row.
type ParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("loc: row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("loc: row %d, column %q (value %q): %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
