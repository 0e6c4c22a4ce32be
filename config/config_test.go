package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Chart.Width != 1200 || cfg.Chart.Height != 700 {
		t.Errorf("Chart = %vx%v, expected 1200x700", cfg.Chart.Width, cfg.Chart.Height)
	}
	if cfg.Chart.Margin != (MarginConfig{Top: 20, Right: 20, Bottom: 40, Left: 50}) {
		t.Errorf("Chart.Margin = %+v", cfg.Chart.Margin)
	}
	if cfg.Narrative.ItemHeight != 100 {
		t.Errorf("Narrative.ItemHeight = %v, expected 100", cfg.Narrative.ItemHeight)
	}
	if cfg.Narrative.VisibleCount != 10 {
		t.Errorf("Narrative.VisibleCount = %d, expected 10", cfg.Narrative.VisibleCount)
	}
	if cfg.Projects.LatestCount != 3 {
		t.Errorf("Projects.LatestCount = %d, expected 3", cfg.Projects.LatestCount)
	}
	if cfg.Profile.TokenEnv != "GITHUB_TOKEN" {
		t.Errorf("Profile.TokenEnv = %q, expected %q", cfg.Profile.TokenEnv, "GITHUB_TOKEN")
	}
	if time.Duration(cfg.Profile.Timeout) != 10*time.Second {
		t.Errorf("Profile.Timeout = %v, expected 10s", time.Duration(cfg.Profile.Timeout))
	}
	if cfg.Profile.CacheTTL != 0 {
		t.Errorf("Profile.CacheTTL = %v, expected caching disabled", time.Duration(cfg.Profile.CacheTTL))
	}
	if cfg.Commits.URLBase != "" {
		t.Errorf("Commits.URLBase = %q, expected empty", cfg.Commits.URLBase)
	}
	if cfg.Export.TypeMode != "extension" || cfg.Export.IndentWidth != 2 || !cfg.Export.SkipVendor {
		t.Errorf("Export = %+v", cfg.Export)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadConfig_JSONMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.json")
	data := `{"commits":{"urlBase":"https://github.com/me/site/commit"},"narrative":{"visibleCount":4},"profile":{"cacheTTL":"15m"}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Commits.URLBase != "https://github.com/me/site/commit" {
		t.Errorf("URLBase = %q", cfg.Commits.URLBase)
	}
	if cfg.Narrative.VisibleCount != 4 {
		t.Errorf("VisibleCount = %d, expected 4", cfg.Narrative.VisibleCount)
	}
	if cfg.Narrative.ItemHeight != 100 {
		t.Errorf("ItemHeight = %v, expected default 100", cfg.Narrative.ItemHeight)
	}
	if time.Duration(cfg.Profile.CacheTTL) != 15*time.Minute {
		t.Errorf("CacheTTL = %v, expected 15m", time.Duration(cfg.Profile.CacheTTL))
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yaml")
	data := "chart:\n  width: 800\nprofile:\n  username: octocat\n  cacheTTL: 1h\nexport:\n  typeMode: language\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Chart.Width != 800 || cfg.Chart.Height != 700 {
		t.Errorf("Chart = %vx%v, expected 800x700", cfg.Chart.Width, cfg.Chart.Height)
	}
	if cfg.Profile.Username != "octocat" {
		t.Errorf("Username = %q", cfg.Profile.Username)
	}
	if time.Duration(cfg.Profile.CacheTTL) != time.Hour {
		t.Errorf("CacheTTL = %v, expected 1h", time.Duration(cfg.Profile.CacheTTL))
	}
	if cfg.Export.TypeMode != "language" {
		t.Errorf("TypeMode = %q", cfg.Export.TypeMode)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Chart.Width != 1200 {
		t.Errorf("Chart.Width = %v, expected default", cfg.Chart.Width)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	for _, name := range []string{"out.json", "out.yml"} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Commits.URLBase = "https://example.com/c"
			cfg.Profile.CacheTTL = Duration(30 * time.Minute)

			path := filepath.Join(t.TempDir(), name)
			if err := SaveConfig(cfg, path); err != nil {
				t.Fatalf("SaveConfig: %v", err)
			}
			got, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig: %v", err)
			}
			if got.Commits.URLBase != cfg.Commits.URLBase {
				t.Errorf("URLBase = %q", got.Commits.URLBase)
			}
			if got.Profile.CacheTTL != cfg.Profile.CacheTTL {
				t.Errorf("CacheTTL = %v", time.Duration(got.Profile.CacheTTL))
			}
		})
	}
}

func TestDuration_UnmarshalJSONSeconds(t *testing.T) {
	var d Duration
	if err := d.UnmarshalJSON([]byte("90")); err != nil {
		t.Fatal(err)
	}
	if time.Duration(d) != 90*time.Second {
		t.Errorf("Duration = %v, expected 1m30s", time.Duration(d))
	}
	if err := d.UnmarshalJSON([]byte(`"soon"`)); err == nil {
		t.Error("expected an error for an invalid duration")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "Narrow chart", mutate: func(c *Config) { c.Chart.Width = 60 }},
		{name: "Short chart", mutate: func(c *Config) { c.Chart.Height = 50 }},
		{name: "Zero item height", mutate: func(c *Config) { c.Narrative.ItemHeight = 0 }},
		{name: "Zero visible", mutate: func(c *Config) { c.Narrative.VisibleCount = 0 }},
		{name: "Unknown type mode", mutate: func(c *Config) { c.Export.TypeMode = "mime" }},
		{name: "Zero indent", mutate: func(c *Config) { c.Export.IndentWidth = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
