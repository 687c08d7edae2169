package timeline

import (
	"time"

	"tableflip.dev/gantt/pkg/item"
	"tableflip.dev/gantt/pkg/timeutil"
)

const (
	// Pitch is the fixed cell width of one calendar day. Every horizontal
	// measurement in the chart is a multiple of this.
	Pitch = 4

	// MinBarWidth keeps short bars wide enough to click and to hold the
	// start of a label, independent of their day-based width.
	MinBarWidth = 2 * Pitch

	// LabelReserve is how much of a bar must stay under its label when the
	// label trails the viewport edge during horizontal scroll.
	LabelReserve = Pitch

	// TodayInset nudges the centered today column slightly left of true
	// center so the day label itself is fully visible.
	TodayInset = Pitch / 2
)

// BarRect is the pixel rectangle of one bar, relative to the window start.
type BarRect struct {
	Left  int
	Width int
}

// DurationDays is the rendered duration of a range in whole days, floored
// to one so same-day and inverted ranges still occupy a visible day.
func DurationDays(start, end time.Time) int {
	d := timeutil.DaysBetween(start, end)
	if d < 1 {
		return 1
	}
	return d
}

// BarFor lays the item's date range out against the bounds. The second
// result is false when the item has no dates and must not render a bar.
func BarFor(it item.Item, b Bounds) (BarRect, bool) {
	if !it.HasDates() {
		return BarRect{}, false
	}
	return BarRect{
		Left:  timeutil.DaysBetween(b.Start, it.Start) * Pitch,
		Width: DurationDays(it.Start, it.End) * Pitch,
	}, true
}

// RenderWidth widens the rect to the minimum legible bar width. Kept apart
// from BarFor so the geometry invariants stay testable in raw day units.
func (r BarRect) RenderWidth() int {
	if r.Width < MinBarWidth {
		return MinBarWidth
	}
	return r.Width
}

// ScrollToToday returns the horizontal offset that centers today in a
// viewport of the given width. Negative results clamp to zero.
func ScrollToToday(b Bounds, today time.Time, viewportWidth int) int {
	daysFromStart := timeutil.DaysBetween(b.Start, today)
	offset := daysFromStart*Pitch - viewportWidth/2 + TodayInset
	if offset < 0 {
		return 0
	}
	return offset
}

// StickyShift computes how far a bar's label must slide right so it trails
// the viewport's left edge while the bar is partially scrolled out. Zero
// means the label sits at its natural position.
func StickyShift(bar BarRect, scrollOffset int) int {
	leftInViewport := bar.Left - scrollOffset
	rightInViewport := leftInViewport + bar.RenderWidth()
	if leftInViewport >= 0 || rightInViewport <= 0 {
		return 0
	}
	shift := -leftInViewport
	if max := bar.RenderWidth() - LabelReserve; shift > max {
		shift = max
	}
	if shift < 0 {
		return 0
	}
	return shift
}
