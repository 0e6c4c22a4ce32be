package selection

import (
	"github.com/masmgr/folio/internal/aggregation"
)

// Margin is the chart padding in pixels.
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Chart describes the scatterplot's pixel geometry.
type Chart struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`
}

// DefaultChart returns the 1200x700 scatterplot geometry.
func DefaultChart() Chart {
	return Chart{
		Width:  1200,
		Height: 700,
		Margin: Margin{Top: 20, Right: 20, Bottom: 40, Left: 50},
	}
}

// Bounds returns the full chart area, which is the brushable extent.
func (c Chart) Bounds() Rect {
	return Rect{X0: 0, Y0: 0, X1: c.Width, Y1: c.Height}
}

// Point is a projected chart position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Projection maps commits to chart positions.
type Projection struct {
	X TimeScale
	Y LinearScale
	R SqrtScale
}

// Point returns the commit's position: x from datetime, y from hourFrac.
func (p Projection) Point(c *aggregation.Commit) Point {
	return Point{X: p.X.Map(c.Datetime), Y: p.Y.Map(c.HourFrac)}
}

// Radius returns the circle radius for the commit's size.
func (p Projection) Radius(c *aggregation.Commit) float64 {
	return p.R.Map(float64(c.TotalLines))
}

// Project builds the projection for the displayed pool. The x domain is the
// pool's datetime extent; when the pool is empty it falls back to fallback's
// extent so axes stay meaningful.
func (c Chart) Project(pool, fallback []*aggregation.Commit) Projection {
	minT, maxT, ok := aggregation.Extent(pool)
	if !ok {
		minT, maxT, _ = aggregation.Extent(fallback)
	}

	minLines, maxLines := 0, 1
	for i, cm := range pool {
		if i == 0 || cm.TotalLines < minLines {
			minLines = cm.TotalLines
		}
		if i == 0 || cm.TotalLines > maxLines {
			maxLines = cm.TotalLines
		}
	}

	return Projection{
		X: NewTimeScale(minT, maxT, c.Margin.Left, c.Width-c.Margin.Right).Nice(),
		Y: NewLinearScale(0, 24, c.Height-c.Margin.Bottom, c.Margin.Top),
		R: NewSqrtScale(float64(minLines), float64(maxLines), 2, 30),
	}
}
