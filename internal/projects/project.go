// Package projects loads the portfolio projects list and derives the
// filtered card list and the projects-per-year pie.
package projects

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/masmgr/folio/internal/fetch"
)

// Year is a project's year label. It decodes from a JSON string or number.
type Year string

// UnmarshalJSON accepts "2023", 2023, or null.
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*y = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = Year(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("year must be a string or number: %s", data)
	}
	if i, err := n.Int64(); err == nil {
		*y = Year(strconv.FormatInt(i, 10))
		return nil
	}
	*y = Year(n.String())
	return nil
}

// Project is one portfolio entry.
type Project struct {
	Title       string `json:"title"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Year        Year   `json:"year"`
}

// searchText joins every displayed field, lowercased.
func (p Project) searchText() string {
	return strings.ToLower(strings.Join([]string{p.Title, p.Image, p.Description, string(p.Year)}, " "))
}

// Load reads the projects list from a file path or an http(s) URL.
// Any failure is reported as a *fetch.FetchError.
func Load(ctx context.Context, client *http.Client, source string) ([]Project, error) {
	var list []Project
	if isURL(source) {
		if err := fetch.JSON(ctx, client, source, &list); err != nil {
			return nil, err
		}
		return nonNil(list), nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, &fetch.FetchError{URL: source, Err: err}
	}
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, &fetch.FetchError{URL: source, Err: fmt.Errorf("decode: %w", err)}
	}
	return nonNil(list), nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func nonNil(list []Project) []Project {
	if list == nil {
		return []Project{}
	}
	return list
}

// Filter keeps projects whose fields contain query (case-insensitive), then,
// when year is non-empty, only those from that year. An empty query keeps everything.
func Filter(projects []Project, query, year string) []Project {
	query = strings.ToLower(query)
	result := make([]Project, 0, len(projects))
	for _, p := range projects {
		if query != "" && !strings.Contains(p.searchText(), query) {
			continue
		}
		if year != "" && string(p.Year) != year {
			continue
		}
		result = append(result, p)
	}
	return result
}

// Latest returns the first n projects.
func Latest(projects []Project, n int) []Project {
	if n < 0 {
		n = 0
	}
	if n > len(projects) {
		n = len(projects)
	}
	return projects[:n]
}

// TitlesForYear returns the titles of the projects from year, in list order.
func TitlesForYear(projects []Project, year string) []string {
	titles := []string{}
	for _, p := range projects {
		if string(p.Year) == year {
			titles = append(titles, p.Title)
		}
	}
	return titles
}
