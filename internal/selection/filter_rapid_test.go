package selection

import (
	"fmt"
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/masmgr/folio/internal/aggregation"
)

// --- Generators ---

func genCommits() *rapid.Generator[[]*aggregation.Commit] {
	return rapid.Custom(func(t *rapid.T) []*aggregation.Commit {
		count := rapid.IntRange(1, 25).Draw(t, "count")
		specs := make([]commitSpec, count)
		for i := range specs {
			lines := rapid.IntRange(1, 6).Draw(t, fmt.Sprintf("lines%d", i))
			types := make([]string, lines)
			for j := range types {
				types[j] = rapid.SampledFrom([]string{"js", "css", "html", "svelte"}).Draw(t, fmt.Sprintf("type%d_%d", i, j))
			}
			specs[i] = commitSpec{
				id:    fmt.Sprintf("c%d", i),
				day:   rapid.IntRange(0, 400).Draw(t, fmt.Sprintf("day%d", i)),
				hour:  float64(rapid.IntRange(0, 23*60+59).Draw(t, fmt.Sprintf("minute%d", i))) / 60,
				types: types,
			}
		}
		return makeCommits(specs...)
	})
}

func genRect(chart Chart) *rapid.Generator[Rect] {
	return rapid.Custom(func(t *rapid.T) Rect {
		return Rect{
			X0: rapid.Float64Range(0, chart.Width).Draw(t, "x0"),
			Y0: rapid.Float64Range(0, chart.Height).Draw(t, "y0"),
			X1: rapid.Float64Range(0, chart.Width).Draw(t, "x1"),
			Y1: rapid.Float64Range(0, chart.Height).Draw(t, "y1"),
		}
	})
}

// --- Property Tests ---

func TestRapidFilterByTime_Monotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		commits := genCommits().Draw(t, "commits")
		domain := DomainOf(commits)
		p1 := rapid.Float64Range(0, 100).Draw(t, "p1")
		p2 := rapid.Float64Range(p1, 100).Draw(t, "p2")

		lo := FilterByTime(commits, p1, domain)
		hi := FilterByTime(commits, p2, domain)

		included := make(map[string]bool, len(hi))
		for _, c := range hi {
			included[c.ID] = true
		}
		for _, c := range lo {
			if !included[c.ID] {
				t.Fatalf("commit %s included at %v but not at %v", c.ID, p1, p2)
			}
		}
	})
}

func TestRapidFilterByTime_Endpoints(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		commits := genCommits().Draw(t, "commits")
		domain := DomainOf(commits)

		if got := FilterByTime(commits, 100, domain); len(got) != len(commits) {
			t.Fatalf("cursor 100 kept %d of %d", len(got), len(commits))
		}
		for _, c := range FilterByTime(commits, 0, domain) {
			if c.Datetime.After(domain.Min) {
				t.Fatalf("cursor 0 kept %s after the minimum", c.ID)
			}
		}
	})
}

func TestRapidSelectByRegion_SubsetOfPool(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		chart := DefaultChart()
		commits := genCommits().Draw(t, "commits")
		rect := genRect(chart).Draw(t, "rect")
		proj := chart.Project(commits, commits)

		for _, c := range SelectByRegion(commits, &rect, proj) {
			if !rect.Contains(proj.Point(c)) {
				t.Fatalf("selected %s outside the rectangle", c.ID)
			}
		}

		full := chart.Bounds()
		if got := SelectByRegion(commits, &full, proj); len(got) != len(commits) {
			t.Fatalf("full chart selected %d of %d", len(got), len(commits))
		}
		if got := SelectByRegion(commits, nil, proj); len(got) != 0 {
			t.Fatalf("no rectangle selected %d", len(got))
		}
	})
}

func TestRapidBreakdown_SumsToSelection(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		chart := DefaultChart()
		commits := genCommits().Draw(t, "commits")
		rect := genRect(chart).Draw(t, "rect")
		selected := SelectByRegion(commits, &rect, chart.Project(commits, commits))

		b := BreakdownByFileType(selected)
		wantTotal := 0
		for _, c := range selected {
			wantTotal += c.TotalLines
		}

		sum, propSum := 0, 0.0
		for _, s := range b.Types {
			sum += s.Count
			propSum += s.Proportion
		}
		if sum != wantTotal || b.Total != wantTotal {
			t.Fatalf("breakdown sums to %d (total %d), expected %d", sum, b.Total, wantTotal)
		}
		if wantTotal > 0 && math.Abs(propSum-1) > 1e-9 {
			t.Fatalf("proportions sum to %v", propSum)
		}
		if wantTotal == 0 && len(b.Types) != 0 {
			t.Fatalf("empty selection produced %d types", len(b.Types))
		}
	})
}
