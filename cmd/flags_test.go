package cmd

import (
	"flag"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/folio/internal/output"
	"github.com/masmgr/folio/internal/selection"
)

func TestGetOutputFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    output.OutputFormat
		wantErr bool
	}{
		{input: "json", want: output.FormatJSON},
		{input: "csv", want: output.FormatCSV},
		{input: "markdown", want: output.FormatMarkdown},
		{input: "md", want: output.FormatMarkdown},
		{input: "ndjson", want: output.FormatNDJSON},
		{input: "html", want: output.FormatHTML},
		{input: "", want: output.FormatConsole},
		{input: "unknown", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := getOutputFormat(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("getOutputFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSessionEvent(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantKind string
		want     selection.Event
		wantErr  bool
	}{
		{name: "Progress", line: `{"type":"progress","value":42.5}`, wantKind: "progress", want: selection.Progress{Percent: 42.5}},
		{name: "Progress zero", line: `{"type":"progress","value":0}`, wantKind: "progress", want: selection.Progress{Percent: 0}},
		{name: "Brush normalized", line: `{"type":"brush","rect":{"x0":300,"y0":400,"x1":100,"y1":50}}`, wantKind: "brush",
			want: selection.Brush{Rect: selection.Rect{X0: 100, Y0: 50, X1: 300, Y1: 400}}},
		{name: "Clear", line: `{"type":"clear"}`, wantKind: "clear", want: selection.ClearBrush{}},
		{name: "Scroll", line: `{"type":"Scroll","offset":250}`, wantKind: "scroll", want: selection.Scroll{Offset: 250}},
		{name: "Progress without value", line: `{"type":"progress"}`, wantErr: true},
		{name: "Brush without rect", line: `{"type":"brush"}`, wantErr: true},
		{name: "Scroll without offset", line: `{"type":"scroll"}`, wantErr: true},
		{name: "Unknown type", line: `{"type":"zoom"}`, wantErr: true},
		{name: "Not JSON", line: `progress 50`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, kind, err := parseSessionEvent(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %#v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", kind, tt.wantKind)
			}
			if got != tt.want {
				t.Errorf("event = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestConcatFlags(t *testing.T) {
	flags := concatFlags(commonFlags(), viewFlags(), outputFlags())
	if len(flags) != len(commonFlags())+len(viewFlags())+len(outputFlags()) {
		t.Fatalf("concatFlags returned %d flags", len(flags))
	}

	seen := map[string]bool{}
	for _, f := range flags {
		for _, name := range f.Names() {
			if seen[name] {
				t.Errorf("duplicate flag name %q", name)
			}
			seen[name] = true
		}
	}
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range concatFlags(commonFlags(), []cli.Flag{&cli.StringFlag{Name: "config"}}) {
		if err := f.Apply(set); err != nil {
			t.Fatal(err)
		}
	}
	if err := set.Parse([]string{"--config", "/nonexistent/folio.json", "--data", "other.csv", "--url-base", "https://example.com/c"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(cli.NewContext(cli.NewApp(), set, nil))
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	if cfg.Data.LocPath != "other.csv" || cfg.Commits.URLBase != "https://example.com/c" {
		t.Errorf("overrides not applied: %+v", cfg.Data)
	}
}

func TestApp_Commands(t *testing.T) {
	want := []string{"stats", "view", "narrative", "session", "plot", "projects", "profile", "theme", "export"}
	app := App()
	if len(app.Commands) != len(want) {
		t.Fatalf("app has %d commands, want %d", len(app.Commands), len(want))
	}
	for i, name := range want {
		if app.Commands[i].Name != name {
			t.Errorf("command %d = %q, want %q", i, app.Commands[i].Name, name)
		}
	}
}
