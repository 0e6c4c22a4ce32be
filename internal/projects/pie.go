package projects

import (
	"fmt"
	"strings"
)

// Slice is one pie wedge: a year label and its project count.
type Slice struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// PieData groups projects by year in order of first appearance.
func PieData(projects []Project) []Slice {
	index := make(map[string]int)
	slices := []Slice{}
	for _, p := range projects {
		label := string(p.Year)
		i, ok := index[label]
		if !ok {
			i = len(slices)
			index[label] = i
			slices = append(slices, Slice{Label: label})
		}
		slices[i].Value++
	}
	return slices
}

// Tooltip describes a wedge, e.g. "2023 (2 projects)\nAlpha, Beta".
func Tooltip(projects []Project, year string) string {
	titles := TitlesForYear(projects, year)
	return fmt.Sprintf("%s (%d projects)\n%s", year, len(titles), strings.Join(titles, ", "))
}

// View is the projects page state: the search query and the selected wedge.
// An empty Year means no wedge is selected.
type View struct {
	Query string
	Year  string
}

// Toggle selects year, or clears the selection when year is already selected.
func (v View) Toggle(year string) View {
	if v.Year == year {
		v.Year = ""
	} else {
		v.Year = year
	}
	return v
}

// Result is what the projects page renders for a View.
type Result struct {
	Projects []Project `json:"projects"`
	Pie      []Slice   `json:"pie"`
	Selected string    `json:"selected,omitempty"`
}

// Apply filters projects by the view and rebuilds the pie from the survivors.
func (v View) Apply(projects []Project) Result {
	filtered := Filter(projects, v.Query, v.Year)
	return Result{
		Projects: filtered,
		Pie:      PieData(filtered),
		Selected: v.Year,
	}
}
