package selection

import (
	"fmt"
	"strings"
	"time"

	"github.com/masmgr/folio/internal/aggregation"
)

// TimeDomain is the datetime extent of the full commit set.
type TimeDomain struct {
	Min time.Time
	Max time.Time
}

// DomainOf returns the time domain of commits.
func DomainOf(commits []*aggregation.Commit) TimeDomain {
	minT, maxT, _ := aggregation.Extent(commits)
	return TimeDomain{Min: minT, Max: maxT}
}

// Cutoff maps a cursor percentage to a timestamp. The cursor is clamped to
// [0, 100]; 0 yields Min and 100 yields Max exactly.
func (d TimeDomain) Cutoff(cursorPercent float64) time.Time {
	return NewTimeScale(d.Min, d.Max, 0, 100).Invert(ClampPercent(cursorPercent))
}

// ClampPercent limits p to [0, 100].
func ClampPercent(p float64) float64 {
	switch {
	case p < 0 || p != p:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// FilterByTime returns the commits at or before the cutoff derived from
// cursorPercent. Input order is preserved.
func FilterByTime(commits []*aggregation.Commit, cursorPercent float64, domain TimeDomain) []*aggregation.Commit {
	cutoff := domain.Cutoff(cursorPercent)
	filtered := make([]*aggregation.Commit, 0, len(commits))
	for _, c := range commits {
		if !c.Datetime.After(cutoff) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// Rect is an axis-aligned rectangle in chart pixel space.
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Normalize orders the corners so that X0 <= X1 and Y0 <= Y1.
func (r Rect) Normalize() Rect {
	if r.X1 < r.X0 {
		r.X0, r.X1 = r.X1, r.X0
	}
	if r.Y1 < r.Y0 {
		r.Y0, r.Y1 = r.Y1, r.Y0
	}
	return r
}

// Empty reports whether the rectangle has zero area. An empty brush is the
// same as no brush.
func (r Rect) Empty() bool {
	return r.X0 == r.X1 || r.Y0 == r.Y1
}

// Contains reports whether p lies within the closed rectangle.
func (r Rect) Contains(p Point) bool {
	n := r.Normalize()
	return p.X >= n.X0 && p.X <= n.X1 && p.Y >= n.Y0 && p.Y <= n.Y1
}

// ParseRect parses "x0,y0,x1,y1".
func ParseRect(s string) (Rect, error) {
	var r Rect
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return r, fmt.Errorf("invalid rectangle %q: expected x0,y0,x1,y1", s)
	}
	dst := []*float64{&r.X0, &r.Y0, &r.X1, &r.Y1}
	for i, p := range parts {
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%g", dst[i]); err != nil {
			return r, fmt.Errorf("invalid rectangle %q: %w", s, err)
		}
	}
	return r.Normalize(), nil
}

// SelectByRegion returns the commits of pool whose projected point lies in
// rect. A nil or zero-area rect selects nothing. proj must be built from the
// same pool that is being displayed.
func SelectByRegion(pool []*aggregation.Commit, rect *Rect, proj Projection) []*aggregation.Commit {
	if rect == nil || rect.Empty() {
		return []*aggregation.Commit{}
	}
	selected := make([]*aggregation.Commit, 0)
	for _, c := range pool {
		if rect.Contains(proj.Point(c)) {
			selected = append(selected, c)
		}
	}
	return selected
}

// TypeShare is the line count of one file type.
type TypeShare struct {
	Type       string  `json:"type"`
	Count      int     `json:"count"`
	Proportion float64 `json:"proportion"`
}

// Breakdown is the file-type distribution of a set of lines.
type Breakdown struct {
	Total int         `json:"total"`
	Types []TypeShare `json:"types"`
}

// IsEmpty reports whether the breakdown has no lines.
func (b Breakdown) IsEmpty() bool {
	return b.Total == 0
}

// Counts returns the breakdown as a type to count mapping.
func (b Breakdown) Counts() map[string]int {
	counts := make(map[string]int, len(b.Types))
	for _, t := range b.Types {
		counts[t.Type] = t.Count
	}
	return counts
}

// BreakdownByFileType counts the commits' lines per file type, in order of
// first appearance. No commits yield an empty breakdown.
func BreakdownByFileType(commits []*aggregation.Commit) Breakdown {
	lines := aggregation.FlattenLines(commits)
	b := Breakdown{Total: len(lines), Types: []TypeShare{}}
	if len(lines) == 0 {
		return b
	}

	index := make(map[string]int)
	for _, l := range lines {
		i, ok := index[l.Type]
		if !ok {
			i = len(b.Types)
			index[l.Type] = i
			b.Types = append(b.Types, TypeShare{Type: l.Type})
		}
		b.Types[i].Count++
	}
	for i := range b.Types {
		b.Types[i].Proportion = float64(b.Types[i].Count) / float64(b.Total)
	}
	return b
}

// FormatPercent renders a proportion with at most one decimal, dropping a
// trailing ".0" (0.5 -> "50%", 2/3 -> "66.7%").
func FormatPercent(p float64) string {
	s := fmt.Sprintf("%.1f", p*100)
	s = strings.TrimSuffix(s, ".0")
	return s + "%"
}
