package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Data      DataConfig      `json:"data" yaml:"data"`
	Commits   CommitsConfig   `json:"commits" yaml:"commits"`
	Chart     ChartConfig     `json:"chart" yaml:"chart"`
	Narrative NarrativeConfig `json:"narrative" yaml:"narrative"`
	Projects  ProjectsConfig  `json:"projects" yaml:"projects"`
	Profile   ProfileConfig   `json:"profile" yaml:"profile"`
	Prefs     PrefsConfig     `json:"prefs" yaml:"prefs"`
	Filters   FilterConfig    `json:"filters" yaml:"filters"`
	Export    ExportConfig    `json:"export" yaml:"export"`
}

// DataConfig locates the static data files.
type DataConfig struct {
	LocPath      string `json:"locPath" yaml:"locPath"`           // Default: "meta/loc.csv"
	ProjectsPath string `json:"projectsPath" yaml:"projectsPath"` // File path or http(s) URL. Default: "lib/projects.json"
}

// CommitsConfig holds commit presentation options.
type CommitsConfig struct {
	// URLBase prefixes commit ids to build hyperlinks, e.g.
	// "https://github.com/<owner>/<repo>/commit". Empty disables links.
	URLBase string `json:"urlBase" yaml:"urlBase"`
}

// ChartConfig holds the scatterplot geometry in pixels.
type ChartConfig struct {
	Width  float64      `json:"width" yaml:"width"`
	Height float64      `json:"height" yaml:"height"`
	Margin MarginConfig `json:"margin" yaml:"margin"`
}

// MarginConfig holds chart margins in pixels.
type MarginConfig struct {
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
}

// NarrativeConfig holds scrollytelling options.
type NarrativeConfig struct {
	ItemHeight   float64 `json:"itemHeight" yaml:"itemHeight"`     // Default: 100
	VisibleCount int     `json:"visibleCount" yaml:"visibleCount"` // Default: 10
}

// ProjectsConfig holds projects list options.
type ProjectsConfig struct {
	LatestCount int `json:"latestCount" yaml:"latestCount"` // Default: 3
}

// ProfileConfig holds GitHub profile lookup options.
type ProfileConfig struct {
	Username string   `json:"username" yaml:"username"`
	TokenEnv string   `json:"tokenEnv" yaml:"tokenEnv"` // Default: "GITHUB_TOKEN"
	CacheTTL Duration `json:"cacheTTL" yaml:"cacheTTL"` // Zero disables caching
	Timeout  Duration `json:"timeout" yaml:"timeout"`   // Default: 10s
}

// PrefsConfig locates the preference store.
type PrefsConfig struct {
	Path string `json:"path" yaml:"path"` // Default: ~/.folio/prefs.db
}

// FilterConfig holds file path filtering options for export.
type FilterConfig struct {
	Include []string `json:"include" yaml:"include"`
	Exclude []string `json:"exclude" yaml:"exclude"`
}

// ExportConfig holds loc.csv export options.
type ExportConfig struct {
	TypeMode    string `json:"typeMode" yaml:"typeMode"`       // "extension" or "language". Default: "extension"
	IndentWidth int    `json:"indentWidth" yaml:"indentWidth"` // Spaces per depth level. Default: 2
	SkipVendor  bool   `json:"skipVendor" yaml:"skipVendor"`   // Default: true
}

// Duration is a time.Duration that reads from strings like "15m" in config files.
type Duration time.Duration

// MarshalJSON writes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON accepts a duration string or a number of seconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return d.parse(s)
	}
	var secs float64
	if err := json.Unmarshal(data, &secs); err != nil {
		return fmt.Errorf("invalid duration %s", data)
	}
	*d = Duration(secs * float64(time.Second))
	return nil
}

// MarshalYAML writes the duration as a string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML accepts a duration string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.parse(node.Value)
}

func (d *Duration) parse(s string) error {
	if s == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	prefsPath := filepath.Join(".folio", "prefs.db")
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		prefsPath = filepath.Join(home, ".folio", "prefs.db")
	}

	return &Config{
		Data: DataConfig{
			LocPath:      filepath.Join("meta", "loc.csv"),
			ProjectsPath: filepath.Join("lib", "projects.json"),
		},
		Chart: ChartConfig{
			Width:  1200,
			Height: 700,
			Margin: MarginConfig{Top: 20, Right: 20, Bottom: 40, Left: 50},
		},
		Narrative: NarrativeConfig{
			ItemHeight:   100,
			VisibleCount: 10,
		},
		Projects: ProjectsConfig{
			LatestCount: 3,
		},
		Profile: ProfileConfig{
			TokenEnv: "GITHUB_TOKEN",
			Timeout:  Duration(10 * time.Second),
		},
		Prefs: PrefsConfig{
			Path: prefsPath,
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Export: ExportConfig{
			TypeMode:    "extension",
			IndentWidth: 2,
			SkipVendor:  true,
		},
	}
}

// LoadConfig loads configuration from a file, merging with defaults.
// Files ending in .yaml or .yml are read as YAML, everything else as JSON.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{".folio.json", ".folio.yaml"}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates,
				filepath.Join(home, ".folio.json"),
				filepath.Join(home, ".folio.yaml"),
			)
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Chart.Width <= c.Chart.Margin.Left+c.Chart.Margin.Right {
		return fmt.Errorf("chart.width %v leaves no plot area", c.Chart.Width)
	}
	if c.Chart.Height <= c.Chart.Margin.Top+c.Chart.Margin.Bottom {
		return fmt.Errorf("chart.height %v leaves no plot area", c.Chart.Height)
	}
	if c.Narrative.ItemHeight <= 0 {
		return fmt.Errorf("narrative.itemHeight must be positive")
	}
	if c.Narrative.VisibleCount <= 0 {
		return fmt.Errorf("narrative.visibleCount must be positive")
	}
	switch c.Export.TypeMode {
	case "extension", "language":
	default:
		return fmt.Errorf("export.typeMode %q must be \"extension\" or \"language\"", c.Export.TypeMode)
	}
	if c.Export.IndentWidth <= 0 {
		return fmt.Errorf("export.indentWidth must be positive")
	}
	return nil
}
