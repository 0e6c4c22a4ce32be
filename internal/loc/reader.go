package loc

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// Datetime layouts accepted for the datetime column, tried in order.
var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
}

var errMissingColumn = errors.New("missing required column")

// ReadFile parses a loc.csv file from disk.
func ReadFile(path string) ([]LineRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses loc.csv content. Columns are located by header name, so extra
// columns and any column order are accepted. A single malformed row fails
// the whole read with a *ParseError.
func Read(r io.Reader) ([]LineRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, &ParseError{Row: 1, Err: err}
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range Columns {
		if _, ok := idx[name]; !ok {
			return nil, &ParseError{Row: 1, Column: name, Err: errMissingColumn}
		}
	}

	var records []LineRecord
	row := 1
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, &ParseError{Row: row, Err: err}
		}

		rec, err := parseRow(fields, idx, row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseRow(fields []string, idx map[string]int, row int) (LineRecord, error) {
	get := func(name string) string {
		i := idx[name]
		if i >= len(fields) {
			return ""
		}
		return fields[i]
	}

	var rec LineRecord
	rec.Commit = get("commit")
	if rec.Commit == "" {
		return rec, &ParseError{Row: row, Column: "commit", Err: errors.New("empty commit id")}
	}
	rec.File = get("file")
	rec.Type = get("type")
	rec.Author = get("author")
	rec.Time = get("time")
	rec.Timezone = get("timezone")

	var err error
	for _, col := range []struct {
		name string
		dst  *int
	}{
		{"line", &rec.Line},
		{"depth", &rec.Depth},
		{"length", &rec.Length},
	} {
		v := get(col.name)
		if *col.dst, err = strconv.Atoi(strings.TrimSpace(v)); err != nil {
			return rec, &ParseError{Row: row, Column: col.name, Value: v, Err: err}
		}
	}

	v := get("datetime")
	if rec.Datetime, err = ParseDatetime(v); err != nil {
		return rec, &ParseError{Row: row, Column: "datetime", Value: v, Err: err}
	}

	v = get("date")
	if rec.Date, err = parseDate(v, rec.Timezone); err != nil {
		return rec, &ParseError{Row: row, Column: "date", Value: v, Err: err}
	}

	return rec, nil
}

// ParseDatetime parses an ISO-8601 timestamp as written in loc.csv.
func ParseDatetime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	var firstErr error
	for _, layout := range datetimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// parseDate resolves the date column to midnight in the row's timezone.
func parseDate(date, timezone string) (time.Time, error) {
	date = strings.TrimSpace(date)
	timezone = strings.TrimSpace(timezone)
	if timezone == "" {
		return time.Parse(dateLayout, date)
	}
	if timezone == "Z" {
		timezone = "+00:00"
	}
	t, err := time.Parse(dateLayout+"T15:04Z07:00", date+"T00:00"+timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("date with timezone %q: %w", timezone, err)
	}
	return t, nil
}
