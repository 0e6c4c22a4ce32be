package aggregation

import (
	"sort"
	"strings"
	"time"

	"github.com/masmgr/folio/internal/loc"
)

// Summary holds the displayable fields of a commit.
type Summary struct {
	ID         string    `json:"id"`
	URL        string    `json:"url,omitempty"`
	Author     string    `json:"author"`
	Date       time.Time `json:"date"`
	Time       string    `json:"time"`
	Timezone   string    `json:"timezone"`
	Datetime   time.Time `json:"datetime"`
	HourFrac   float64   `json:"hourFrac"` // chart placement only, never used for ordering
	TotalLines int       `json:"totalLines"`
}

// Commit is an immutable summary of all line records sharing one commit id.
// The line records are owned detail and are not part of the serialized form.
type Commit struct {
	Summary
	lines []loc.LineRecord
}

// Lines returns the line records owned by the commit.
// The returned slice must not be modified.
func (c *Commit) Lines() []loc.LineRecord {
	return c.lines
}

// FileCount returns the number of distinct files touched by the commit.
func (c *Commit) FileCount() int {
	files := make(map[string]struct{}, len(c.lines))
	for _, l := range c.lines {
		files[l.File] = struct{}{}
	}
	return len(files)
}

// ShortID returns the first seven characters of the commit id.
func (c *Commit) ShortID() string {
	if len(c.ID) <= 7 {
		return c.ID
	}
	return c.ID[:7]
}

// NewCommit builds a commit from a non-empty group of records sharing an id.
// The first record supplies the representative author and timestamps.
func NewCommit(id string, lines []loc.LineRecord, urlBase string) *Commit {
	first := lines[0]
	return &Commit{
		Summary: Summary{
			ID:         id,
			URL:        commitURL(urlBase, id),
			Author:     first.Author,
			Date:       first.Date,
			Time:       first.Time,
			Timezone:   first.Timezone,
			Datetime:   first.Datetime,
			HourFrac:   HourFrac(first.Datetime),
			TotalLines: len(lines),
		},
		lines: lines,
	}
}

// HourFrac returns hour + minute/60 in the timestamp's own offset.
func HourFrac(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60
}

func commitURL(base, id string) string {
	if base == "" {
		return ""
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + id
}

// Aggregator groups line records into commits.
type Aggregator struct {
	urlBase string
}

// NewAggregator creates an aggregator. urlBase prefixes commit hyperlinks;
// an empty base leaves commit URLs unset.
func NewAggregator(urlBase string) *Aggregator {
	return &Aggregator{urlBase: urlBase}
}

// Aggregate partitions records by commit id. Commits are returned in order of
// first appearance of their id; every record belongs to exactly one commit.
func (a *Aggregator) Aggregate(records []loc.LineRecord) []*Commit {
	order := make([]string, 0)
	groups := make(map[string][]loc.LineRecord)

	for _, rec := range records {
		if _, seen := groups[rec.Commit]; !seen {
			order = append(order, rec.Commit)
		}
		groups[rec.Commit] = append(groups[rec.Commit], rec)
	}

	commits := make([]*Commit, 0, len(order))
	for _, id := range order {
		commits = append(commits, NewCommit(id, groups[id], a.urlBase))
	}
	return commits
}

// Aggregate groups records into commits without commit URLs.
func Aggregate(records []loc.LineRecord) []*Commit {
	return NewAggregator("").Aggregate(records)
}

// SortByTime sorts commits in place by datetime ascending, ties by id.
func SortByTime(commits []*Commit) {
	sort.SliceStable(commits, func(i, j int) bool {
		a, b := commits[i], commits[j]
		if !a.Datetime.Equal(b.Datetime) {
			return a.Datetime.Before(b.Datetime)
		}
		return a.ID < b.ID
	})
}

// Extent returns the minimum and maximum datetime across commits.
// ok is false for an empty slice.
func Extent(commits []*Commit) (minT, maxT time.Time, ok bool) {
	for i, c := range commits {
		if i == 0 || c.Datetime.Before(minT) {
			minT = c.Datetime
		}
		if i == 0 || c.Datetime.After(maxT) {
			maxT = c.Datetime
		}
	}
	return minT, maxT, len(commits) > 0
}

// FlattenLines returns the owned lines of all commits in commit order.
func FlattenLines(commits []*Commit) []loc.LineRecord {
	n := 0
	for _, c := range commits {
		n += len(c.lines)
	}
	lines := make([]loc.LineRecord, 0, n)
	for _, c := range commits {
		lines = append(lines, c.lines...)
	}
	return lines
}
