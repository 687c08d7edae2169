package timeline

import (
	"strconv"

	"tableflip.dev/gantt/pkg/timeutil"
)

// Span is one merged label on the year or month scale row: consecutive days
// sharing the same key collapsed into a single label covering Days days.
type Span struct {
	Label string
	Days  int
}

// YearSpans merges the window's days into consecutive same-year runs with a
// single forward scan. The walk advances by calendar days, not durations,
// so a daylight-time transition can never skip or duplicate a day.
func YearSpans(b Bounds) []Span {
	var spans []Span
	cur := timeutil.Midnight(b.Start)
	prevYear := 0
	for i := 0; i < b.TotalDays; i++ {
		if year := cur.Year(); year != prevYear {
			spans = append(spans, Span{Label: strconv.Itoa(year)})
			prevYear = year
		}
		spans[len(spans)-1].Days++
		cur = timeutil.AddDays(cur, 1)
	}
	return spans
}

// MonthSpans merges the window's days into consecutive (year, month) runs.
// Labels use the short English month name.
func MonthSpans(b Bounds) []Span {
	var spans []Span
	cur := timeutil.Midnight(b.Start)
	prevYear, prevMonth := 0, 0
	for i := 0; i < b.TotalDays; i++ {
		year, month := cur.Year(), int(cur.Month())
		if year != prevYear || month != prevMonth {
			spans = append(spans, Span{Label: cur.Month().String()[:3]})
			prevYear, prevMonth = year, month
		}
		spans[len(spans)-1].Days++
		cur = timeutil.AddDays(cur, 1)
	}
	return spans
}

// DayLabels returns exactly TotalDays day-of-month numbers starting at the
// window's first day.
func DayLabels(b Bounds) []string {
	labels := make([]string, 0, b.TotalDays)
	cur := timeutil.Midnight(b.Start)
	for i := 0; i < b.TotalDays; i++ {
		labels = append(labels, strconv.Itoa(cur.Day()))
		cur = timeutil.AddDays(cur, 1)
	}
	return labels
}
