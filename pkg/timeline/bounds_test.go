package timeline

import (
	"testing"
	"time"

	"tableflip.dev/gantt/pkg/item"
	"tableflip.dev/gantt/pkg/timeutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeBoundsPadsAroundItems(t *testing.T) {
	items := []item.Item{{
		Title: "Launch",
		Start: date(2024, time.January, 10),
		End:   date(2024, time.January, 20),
		Kind:  item.Project,
	}}
	today := date(2024, time.June, 1)

	b := ComputeBounds(items, today)

	// Earliest date wins the start side: 2024-01-10 - 180d.
	wantStart := timeutil.AddDays(date(2024, time.January, 10), -PaddingDays)
	if !b.Start.Equal(wantStart) {
		t.Fatalf("expected start %v, got %v", wantStart, b.Start)
	}
	// Today wins the end side: 2024-06-01 + 180d.
	wantEnd := timeutil.AddDays(today, PaddingDays)
	if !b.End.Equal(wantEnd) {
		t.Fatalf("expected end %v, got %v", wantEnd, b.End)
	}
	if b.TotalDays != timeutil.DaysBetween(b.Start, b.End) {
		t.Fatalf("totalDays %d disagrees with window span %d",
			b.TotalDays, timeutil.DaysBetween(b.Start, b.End))
	}
}

func TestComputeBoundsZeroItemsCentersOnToday(t *testing.T) {
	today := date(2024, time.June, 1)
	b := ComputeBounds(nil, today)

	if !b.Start.Equal(timeutil.AddDays(today, -PaddingDays)) {
		t.Fatalf("unexpected start %v", b.Start)
	}
	if !b.End.Equal(timeutil.AddDays(today, PaddingDays)) {
		t.Fatalf("unexpected end %v", b.End)
	}
	if b.TotalDays != 2*PaddingDays {
		t.Fatalf("expected %d days, got %d", 2*PaddingDays, b.TotalDays)
	}
}

func TestComputeBoundsTodayKeepsMargin(t *testing.T) {
	// Whatever the items say, today must stay at least 180 days from
	// either edge of the window.
	cases := [][]item.Item{
		nil,
		{{Start: date(2024, time.January, 1), End: date(2024, time.December, 31)}},
		{{Start: date(2020, time.May, 5), End: date(2020, time.May, 6)}},
		{{Start: date(2030, time.May, 5), End: date(2031, time.May, 6)}},
	}
	today := date(2024, time.June, 1)
	for i, items := range cases {
		b := ComputeBounds(items, today)
		if timeutil.DaysBetween(b.Start, today) < PaddingDays {
			t.Fatalf("case %d: today only %d days from start", i, timeutil.DaysBetween(b.Start, today))
		}
		if timeutil.DaysBetween(today, b.End) < PaddingDays {
			t.Fatalf("case %d: today only %d days from end", i, timeutil.DaysBetween(today, b.End))
		}
	}
}

func TestComputeBoundsSkipsUndatedItems(t *testing.T) {
	items := []item.Item{
		{Title: "undated"},
		{Title: "dated", Start: date(2024, time.March, 1), End: date(2024, time.March, 3)},
	}
	today := date(2024, time.March, 2)
	b := ComputeBounds(items, today)
	if !b.Contains(date(2024, time.March, 1)) || !b.Contains(date(2024, time.March, 3)) {
		t.Fatalf("window must contain the dated item")
	}
}

func TestComputeBoundsIgnoresTimeOfDay(t *testing.T) {
	noonToday := time.Date(2024, time.June, 1, 12, 30, 0, 0, time.UTC)
	b := ComputeBounds(nil, noonToday)
	if b.Start.Hour() != 0 || b.End.Hour() != 0 {
		t.Fatalf("bounds must be day-aligned: %v .. %v", b.Start, b.End)
	}
}
