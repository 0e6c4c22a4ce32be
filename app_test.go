package main

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/masmgr/folio/internal/loc"
)

// exportFixture builds a two-commit repository, exports it, and returns the
// config path, the loc.csv path and the two commit hashes.
func exportFixture(t *testing.T) (string, string, []string) {
	t.Helper()
	repoDir, repo := createTestRepo(t)
	first := addCommitToRepo(t, repo, "initial", []string{"index.html", "src/app.js"},
		time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC))
	second := addCommitToRepo(t, repo, "tweak", []string{"src/app.js"},
		time.Date(2025, 2, 10, 21, 30, 0, 0, time.UTC))

	work := t.TempDir()
	cfgPath := writeTestConfig(t, work)
	csvPath := filepath.Join(work, "meta", "loc.csv")

	out, err := runApp(t, "", "--config", cfgPath, "export", "--output", csvPath, repoDir)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, "Wrote 2 lines") {
		t.Errorf("export output = %q", out)
	}
	return cfgPath, csvPath, []string{first, second}
}

func TestExportThenView(t *testing.T) {
	cfgPath, csvPath, hashes := exportFixture(t)

	records, err := loc.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("exported loc.csv does not parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, expected 2", len(records))
	}
	byFile := map[string]loc.LineRecord{}
	for _, r := range records {
		byFile[r.File] = r
	}
	if byFile["index.html"].Commit != hashes[0] || byFile["src/app.js"].Commit != hashes[1] {
		t.Errorf("blame attribution = %+v", byFile)
	}
	if byFile["src/app.js"].Type != "js" || byFile["src/app.js"].Author != "Test Author" {
		t.Errorf("app.js record = %+v", byFile["src/app.js"])
	}

	out, err := runApp(t, "", "--config", cfgPath, "view", "--data", csvPath, "--format", "json",
		"--brush", "0,0,1200,700")
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}

	var report struct {
		Stats struct {
			TotalLoc     int `json:"totalLoc"`
			TotalCommits int `json:"totalCommits"`
		} `json:"stats"`
		SelectionLabel string `json:"selectionLabel"`
		Selected       []struct {
			ID  string `json:"id"`
			URL string `json:"url"`
		} `json:"selected"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("view output is not JSON: %v\n%s", err, out)
	}
	if report.Stats.TotalLoc != 2 || report.Stats.TotalCommits != 2 {
		t.Errorf("stats = %+v", report.Stats)
	}
	if report.SelectionLabel != "2 commits selected" {
		t.Errorf("selectionLabel = %q", report.SelectionLabel)
	}
	if len(report.Selected) != 2 || report.Selected[0].URL != "https://github.com/test/site/commit/"+hashes[0] {
		t.Errorf("selected = %+v", report.Selected)
	}
}

func TestViewWithoutBrush(t *testing.T) {
	cfgPath, csvPath, _ := exportFixture(t)

	out, err := runApp(t, "", "--config", cfgPath, "view", "--data", csvPath, "--progress", "0")
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	for _, want := range []string{"No commits selected", "Commits up to cursor: 1", "Time cursor: 0%"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q\n%s", want, out)
		}
	}
}

func TestSession(t *testing.T) {
	cfgPath, csvPath, hashes := exportFixture(t)

	events := strings.Join([]string{
		`{"type":"progress","value":0}`,
		`{"type":"bogus"}`,
		``,
		`{"type":"brush","rect":{"x0":0,"y0":0,"x1":1200,"y1":700}}`,
		`{"type":"clear"}`,
	}, "\n")
	out, err := runApp(t, events, "--config", cfgPath, "session", "--data", csvPath)
	if err != nil {
		t.Fatalf("session failed: %v", err)
	}

	var lines []map[string]any
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		var line map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			t.Fatalf("invalid NDJSON line %q: %v", scanner.Text(), err)
		}
		lines = append(lines, line)
	}
	if len(lines) != 5 {
		t.Fatalf("got %d lines, expected init, progress, error, brush, clear", len(lines))
	}

	if lines[0]["event"] != "init" || lines[0]["filteredCommits"] != float64(2) {
		t.Errorf("init = %v", lines[0])
	}
	if lines[1]["event"] != "progress" || lines[1]["filteredCommits"] != float64(1) {
		t.Errorf("progress = %v", lines[1])
	}
	if lines[2]["type"] != "error" || lines[2]["line"] != float64(2) {
		t.Errorf("error = %v", lines[2])
	}
	selected, _ := lines[3]["selected"].([]any)
	if lines[3]["event"] != "brush" || len(selected) != 1 || selected[0] != hashes[0] {
		t.Errorf("brush = %v", lines[3])
	}
	if lines[4]["selectionLabel"] != "No commits selected" || lines[4]["selection"] != nil {
		t.Errorf("clear = %v", lines[4])
	}
}

func TestNarrativeCommand(t *testing.T) {
	cfgPath, csvPath, _ := exportFixture(t)

	out, err := runApp(t, "", "--config", cfgPath, "narrative", "--data", csvPath, "--format", "markdown")
	if err != nil {
		t.Fatalf("narrative failed: %v", err)
	}
	if !strings.Contains(out, "my first commit, and it was glorious") || !strings.Contains(out, "another glorious commit") {
		t.Errorf("narrative = %s", out)
	}
}

func TestPlotCommand(t *testing.T) {
	cfgPath, csvPath, _ := exportFixture(t)
	htmlPath := filepath.Join(t.TempDir(), "view.html")

	if _, err := runApp(t, "", "--config", cfgPath, "plot", "--data", csvPath, "--output", htmlPath, "--scheme", "dark"); err != nil {
		t.Fatalf("plot failed: %v", err)
	}
	data, err := os.ReadFile(htmlPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "echarts") {
		t.Error("plot output is not an echarts page")
	}
}

func TestThemeCommand(t *testing.T) {
	cfgPath := writeTestConfig(t, t.TempDir())

	out, err := runApp(t, "", "--config", cfgPath, "theme", "get")
	if err != nil || !strings.Contains(out, "Automatic") {
		t.Fatalf("theme get = %q, %v", out, err)
	}
	if _, err := runApp(t, "", "--config", cfgPath, "theme", "set", "dark"); err != nil {
		t.Fatalf("theme set failed: %v", err)
	}
	out, err = runApp(t, "", "--config", cfgPath, "theme")
	if err != nil || !strings.Contains(out, "Dark (dark)") {
		t.Errorf("theme after set = %q, %v", out, err)
	}
	if _, err := runApp(t, "", "--config", cfgPath, "theme", "set", "sepia"); err == nil {
		t.Error("invalid scheme should fail")
	}
}

func TestProjectsCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir)
	source := filepath.Join(dir, "projects.json")
	content := `[
		{"title": "Folio", "description": "Portfolio site", "year": 2023},
		{"title": "Scrolly", "description": "Scrollytelling demo", "year": "2024"}
	]`
	if err := os.WriteFile(source, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runApp(t, "", "--config", cfgPath, "projects", "--source", source, "--query", "SCROLL", "--format", "json")
	if err != nil {
		t.Fatalf("projects failed: %v", err)
	}
	var report struct {
		Projects []struct {
			Title string `json:"title"`
		} `json:"projects"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(report.Projects) != 1 || report.Projects[0].Title != "Scrolly" {
		t.Errorf("projects = %+v", report.Projects)
	}

	// A missing source is logged and renders the empty state.
	out, err = runApp(t, "", "--config", cfgPath, "projects", "--source", filepath.Join(dir, "missing.json"))
	if err != nil {
		t.Fatalf("missing source should not fail: %v", err)
	}
	if !strings.Contains(out, "No projects available.") {
		t.Errorf("output = %q", out)
	}
}

func TestUnknownFormat(t *testing.T) {
	cfgPath, csvPath, _ := exportFixture(t)
	if _, err := runApp(t, "", "--config", cfgPath, "view", "--data", csvPath, "--format", "xml"); err == nil {
		t.Error("unknown format should fail")
	}
}
