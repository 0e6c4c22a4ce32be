package aggregation

import (
	"sort"

	"github.com/masmgr/folio/internal/loc"
)

// FileUnits is one row of the unit visualization: a file and the type of
// each of its changed lines.
type FileUnits struct {
	Name  string   `json:"name"`
	Types []string `json:"types"`
}

// LineCount returns the number of changed lines in the file.
func (f FileUnits) LineCount() int {
	return len(f.Types)
}

// GroupFiles flattens the commits' lines and groups them by file, largest
// file first. Ties are broken by name.
func GroupFiles(commits []*Commit) []FileUnits {
	index := make(map[string]int)
	var files []FileUnits

	for _, c := range commits {
		for _, l := range c.lines {
			i, ok := index[l.File]
			if !ok {
				i = len(files)
				index[l.File] = i
				files = append(files, FileUnits{Name: l.File})
			}
			files[i].Types = append(files[i].Types, l.Type)
		}
	}

	sort.SliceStable(files, func(i, j int) bool {
		if len(files[i].Types) != len(files[j].Types) {
			return len(files[i].Types) > len(files[j].Types)
		}
		return files[i].Name < files[j].Name
	})
	return files
}

// Stats holds the headline numbers of a loc.csv dataset.
type Stats struct {
	TotalLines   int `json:"totalLoc"`
	TotalCommits int `json:"totalCommits"`
	Files        int `json:"files"`
	MaxDepth     int `json:"maxDepth"`
}

// Summarize computes dataset statistics over the raw records.
func Summarize(records []loc.LineRecord, commits []*Commit) Stats {
	files := make(map[string]struct{})
	maxDepth := 0
	for i, r := range records {
		files[r.File] = struct{}{}
		if i == 0 || r.Depth > maxDepth {
			maxDepth = r.Depth
		}
	}
	return Stats{
		TotalLines:   len(records),
		TotalCommits: len(commits),
		Files:        len(files),
		MaxDepth:     maxDepth,
	}
}
