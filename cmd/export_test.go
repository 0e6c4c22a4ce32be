package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/masmgr/folio/internal/git"
	"github.com/masmgr/folio/internal/loc"
)

func TestExportLines(t *testing.T) {
	when := time.Date(2025, 2, 1, 9, 15, 0, 0, time.FixedZone("", -5*3600))
	records := []loc.LineRecord{
		loc.NewRecord("abc123", "src/app.js", "js", 1, 0, 14, "Angel", when),
		loc.NewRecord("abc123", "src/app.js", "js", 2, 1, 20, "Angel", when),
	}

	t.Run("Stdout", func(t *testing.T) {
		var buf bytes.Buffer
		n, err := exportLines(context.Background(), git.NewMockLineReader(records, nil), &buf, "-")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 2 {
			t.Errorf("exported %d records, want 2", n)
		}
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 3 || lines[0] != strings.Join(loc.Columns, ",") {
			t.Fatalf("csv = %q", buf.String())
		}
		if !strings.HasPrefix(lines[1], "abc123,src/app.js,js,1,0,14,Angel,2025-02-01,09:15:00,-05:00,") {
			t.Errorf("row = %q", lines[1])
		}
	})

	t.Run("File round trip", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "meta", "loc.csv")
		if _, err := exportLines(context.Background(), git.NewMockLineReader(records, nil), nil, dest); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := loc.ReadFile(dest)
		if err != nil {
			t.Fatalf("exported file does not parse: %v", err)
		}
		if len(got) != 2 || got[1].Depth != 1 || !got[0].Datetime.Equal(when) {
			t.Errorf("round trip = %+v", got)
		}
	})

	t.Run("Empty repository writes a header", func(t *testing.T) {
		var buf bytes.Buffer
		n, err := exportLines(context.Background(), git.NewMockLineReader(nil, nil), &buf, "-")
		if err != nil || n != 0 {
			t.Fatalf("n=%d err=%v", n, err)
		}
		if strings.TrimSpace(buf.String()) != strings.Join(loc.Columns, ",") {
			t.Errorf("csv = %q", buf.String())
		}
	})

	t.Run("Reader error", func(t *testing.T) {
		_, err := exportLines(context.Background(), git.NewMockLineReader(nil, errors.New("boom")), &bytes.Buffer{}, "-")
		if err == nil || !strings.Contains(err.Error(), "boom") {
			t.Errorf("err = %v", err)
		}
	})
}
