package selection

import (
	"fmt"
	"math"

	"github.com/masmgr/folio/internal/aggregation"
)

const narrativeDateLayout = "Monday, January 2, 2006 at 3:04 PM"

// Narrative configures the scroll-driven commit story.
type Narrative struct {
	ItemHeight   float64 `json:"itemHeight"`
	VisibleCount int     `json:"visibleCount"`
}

// DefaultNarrative returns 100px items with ten rendered at once.
func DefaultNarrative() Narrative {
	return Narrative{ItemHeight: 100, VisibleCount: 10}
}

// Window is the slice of commits rendered for a scroll position.
type Window struct {
	Start        int                   `json:"start"`
	End          int                   `json:"end"`
	ScrollTop    float64               `json:"scrollTop"`
	SpacerHeight float64               `json:"spacerHeight"`
	Commits      []*aggregation.Commit `json:"-"`
}

// Window returns the commits visible at scrollTop.
func (n Narrative) Window(commits []*aggregation.Commit, scrollTop float64) Window {
	itemHeight := n.ItemHeight
	if itemHeight <= 0 {
		itemHeight = DefaultNarrative().ItemHeight
	}
	visible := n.VisibleCount
	if visible <= 0 {
		visible = DefaultNarrative().VisibleCount
	}

	start := 0
	if scrollTop > 0 {
		start = int(math.Floor(scrollTop / itemHeight))
	}
	if maxStart := len(commits) - visible; start > maxStart {
		start = maxStart
	}
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(commits) {
		end = len(commits)
	}

	spacer := 0.0
	if len(commits) > 1 {
		spacer = float64(len(commits)-1) * itemHeight
	}

	return Window{
		Start:        start,
		End:          end,
		ScrollTop:    scrollTop,
		SpacerHeight: spacer,
		Commits:      commits[start:end],
	}
}

// NarrativeItem is one rendered paragraph of the commit story.
type NarrativeItem struct {
	Index  int                 `json:"index"`
	Top    float64             `json:"top"`
	Commit aggregation.Summary `json:"commit"`
	Files  int                 `json:"files"`
	Text   string              `json:"text"`
}

// Items renders the window's paragraphs, positioned relative to the window.
func (n Narrative) Items(w Window) []NarrativeItem {
	itemHeight := n.ItemHeight
	if itemHeight <= 0 {
		itemHeight = DefaultNarrative().ItemHeight
	}

	items := make([]NarrativeItem, 0, len(w.Commits))
	for i, c := range w.Commits {
		index := w.Start + i
		items = append(items, NarrativeItem{
			Index:  index,
			Top:    float64(i) * itemHeight,
			Commit: c.Summary,
			Files:  c.FileCount(),
			Text:   NarrativeText(c, index),
		})
	}
	return items
}

// NarrativeText renders the sentence for the commit at position index of
// the history.
func NarrativeText(c *aggregation.Commit, index int) string {
	what := "another glorious commit"
	if index == 0 {
		what = "my first commit, and it was glorious"
	}
	return fmt.Sprintf(
		"On %s, I made %s. I edited %d lines across %d files. Then I reviewed all my changes and felt it was excellent.",
		c.Datetime.Format(narrativeDateLayout), what, c.TotalLines, c.FileCount(),
	)
}
