package selection

import (
	"time"

	"github.com/masmgr/folio/internal/aggregation"
)

// State is the view derived from the commit pool and the current inputs.
// Every field is recomputed on each event.
type State struct {
	Progress  float64
	Cutoff    time.Time
	Filtered  []*aggregation.Commit // commits at or before Cutoff
	Display   []*aggregation.Commit // pool currently drawn on the chart
	Window    *Window               // set while the narrative drives the chart
	Selection *Rect                 // nil when nothing is brushed
	Selected  []*aggregation.Commit
	Breakdown Breakdown
}

// HasSelection reports whether a brush rectangle is active.
func (s State) HasSelection() bool {
	return s.Selection != nil
}

// Event is an input from the presentation layer.
type Event interface {
	apply(e *Engine, s State) State
}

// Progress moves the time cursor.
type Progress struct {
	Percent float64
}

// Brush sets the brush rectangle.
type Brush struct {
	Rect Rect
}

// ClearBrush removes the brush rectangle.
type ClearBrush struct{}

// Scroll moves the narrative to a scroll offset in pixels.
type Scroll struct {
	Offset float64
}

// Engine computes view states over an immutable commit pool.
type Engine struct {
	commits   []*aggregation.Commit
	domain    TimeDomain
	chart     Chart
	narrative Narrative
}

// NewEngine creates an engine over commits, which are copied and sorted by
// time.
func NewEngine(commits []*aggregation.Commit, chart Chart, narrative Narrative) *Engine {
	sorted := make([]*aggregation.Commit, len(commits))
	copy(sorted, commits)
	aggregation.SortByTime(sorted)

	return &Engine{
		commits:   sorted,
		domain:    DomainOf(sorted),
		chart:     chart,
		narrative: narrative,
	}
}

// Commits returns the full pool in time order.
func (e *Engine) Commits() []*aggregation.Commit {
	return e.commits
}

// Domain returns the time domain of the full pool.
func (e *Engine) Domain() TimeDomain {
	return e.domain
}

// Chart returns the chart geometry.
func (e *Engine) Chart() Chart {
	return e.chart
}

// Narrative returns the narrative configuration.
func (e *Engine) Narrative() Narrative {
	return e.narrative
}

// Projection returns the projection for a displayed pool.
func (e *Engine) Projection(display []*aggregation.Commit) Projection {
	return e.chart.Project(display, e.commits)
}

// Initial returns the state with the cursor at 100 and no brush.
func (e *Engine) Initial() State {
	return e.Apply(State{}, Progress{Percent: 100})
}

// Apply derives the next state from prev and an event. prev is not modified.
func (e *Engine) Apply(prev State, ev Event) State {
	return ev.apply(e, prev)
}

func (p Progress) apply(e *Engine, s State) State {
	s.Progress = ClampPercent(p.Percent)
	s.Cutoff = e.domain.Cutoff(s.Progress)
	s.Filtered = FilterByTime(e.commits, s.Progress, e.domain)
	s.Display = s.Filtered
	s.Window = nil
	return e.reselect(s)
}

func (b Brush) apply(e *Engine, s State) State {
	r := b.Rect.Normalize()
	if r.Empty() {
		s.Selection = nil
	} else {
		s.Selection = &r
	}
	return e.reselect(s)
}

func (ClearBrush) apply(e *Engine, s State) State {
	s.Selection = nil
	return e.reselect(s)
}

func (sc Scroll) apply(e *Engine, s State) State {
	w := e.narrative.Window(e.commits, sc.Offset)
	s.Window = &w
	s.Display = w.Commits
	return e.reselect(s)
}

// reselect re-projects the active brush against the displayed pool.
func (e *Engine) reselect(s State) State {
	if s.Filtered == nil && s.Display == nil {
		s.Progress = 100
		s.Cutoff = e.domain.Max
		s.Filtered = e.commits
		s.Display = e.commits
	}
	s.Selected = SelectByRegion(s.Display, s.Selection, e.Projection(s.Display))
	s.Breakdown = BreakdownByFileType(s.Selected)
	return s
}
