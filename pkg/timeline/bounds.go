// Package timeline holds the layout engine for the day-scale chart: visible
// window computation, scale spans, bar geometry, and the resize state
// machine. Everything here is pure math over items and dates; turning the
// results into screen cells is the renderer's job.
package timeline

import (
	"time"

	"tableflip.dev/gantt/pkg/item"
	"tableflip.dev/gantt/pkg/timeutil"
)

// PaddingDays is the half-year margin kept on both sides of the visible
// window so every item has room to grow and today never sits on an edge.
const PaddingDays = 180

// Bounds is the visible date window for one render pass. Start and End are
// day-aligned; TotalDays is the inclusive day-count every cell and bar
// offset is computed against. Bounds are recomputed fresh each refresh and
// never mutated in place.
type Bounds struct {
	Start     time.Time
	End       time.Time
	TotalDays int
}

// Contains reports whether the day-aligned date falls inside the window.
func (b Bounds) Contains(t time.Time) bool {
	m := timeutil.Midnight(t)
	return !m.Before(b.Start) && !m.After(b.End)
}

// ComputeBounds derives the visible window from the item set. The window
// spans from 180 days before the earliest date (or today, whichever is
// earlier) to 180 days after the latest (or today, whichever is later), so
// a vault with no dated items still gets a full year centered on today.
func ComputeBounds(items []item.Item, today time.Time) Bounds {
	today = timeutil.Midnight(today)

	var minDate, maxDate time.Time
	for _, it := range items {
		if !it.Start.IsZero() && (minDate.IsZero() || it.Start.Before(minDate)) {
			minDate = it.Start
		}
		if !it.End.IsZero() && (maxDate.IsZero() || it.End.After(maxDate)) {
			maxDate = it.End
		}
	}
	if minDate.IsZero() {
		minDate = today
	}
	if maxDate.IsZero() {
		maxDate = today
	}

	start := timeutil.AddDays(minDate, -PaddingDays)
	if todayStart := timeutil.AddDays(today, -PaddingDays); todayStart.Before(start) {
		start = todayStart
	}
	end := timeutil.AddDays(maxDate, PaddingDays)
	if todayEnd := timeutil.AddDays(today, PaddingDays); todayEnd.After(end) {
		end = todayEnd
	}

	return Bounds{
		Start:     start,
		End:       end,
		TotalDays: timeutil.CeilDays(start, end),
	}
}
