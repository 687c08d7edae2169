package timeline

import (
	"reflect"
	"testing"
	"time"
)

func fixedBounds(start time.Time, days int) Bounds {
	return Bounds{Start: start, End: start.AddDate(0, 0, days), TotalDays: days}
}

func sumDays(spans []Span) int {
	total := 0
	for _, s := range spans {
		total += s.Days
	}
	return total
}

func TestYearSpansMergeAcrossBoundary(t *testing.T) {
	// Dec 30, 31, Jan 1, 2: two spans of two days each.
	b := fixedBounds(date(2023, time.December, 30), 4)
	spans := YearSpans(b)
	want := []Span{{Label: "2023", Days: 2}, {Label: "2024", Days: 2}}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("expected %v, got %v", want, spans)
	}
}

func TestMonthSpansMergeAcrossBoundary(t *testing.T) {
	b := fixedBounds(date(2024, time.February, 27), 5)
	spans := MonthSpans(b)
	want := []Span{{Label: "Feb", Days: 3}, {Label: "Mar", Days: 2}}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("expected %v, got %v", want, spans)
	}
}

func TestMonthSpansDistinguishSameMonthDifferentYear(t *testing.T) {
	// A window spanning Jan 2024 through Jan 2025 must produce two separate
	// Jan spans, not one merged 62-day run.
	b := fixedBounds(date(2024, time.January, 1), 366+31)
	spans := MonthSpans(b)
	janCount := 0
	for _, s := range spans {
		if s.Label == "Jan" {
			janCount++
		}
	}
	if janCount != 2 {
		t.Fatalf("expected two Jan spans, got %d in %v", janCount, spans)
	}
}

func TestSpansCoverExactlyTotalDays(t *testing.T) {
	for _, days := range []int{1, 28, 365, 366, 730} {
		b := fixedBounds(date(2023, time.July, 14), days)
		if got := sumDays(YearSpans(b)); got != days {
			t.Fatalf("year spans cover %d of %d days", got, days)
		}
		if got := sumDays(MonthSpans(b)); got != days {
			t.Fatalf("month spans cover %d of %d days", got, days)
		}
		if got := len(DayLabels(b)); got != days {
			t.Fatalf("day row has %d of %d labels", got, days)
		}
	}
}

func TestScaleIsIdempotent(t *testing.T) {
	b := fixedBounds(date(2023, time.July, 14), 503)
	first := struct {
		years  []Span
		months []Span
		days   []string
	}{YearSpans(b), MonthSpans(b), DayLabels(b)}
	second := struct {
		years  []Span
		months []Span
		days   []string
	}{YearSpans(b), MonthSpans(b), DayLabels(b)}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical bounds must reproduce identical scale rows")
	}
}

func TestDayLabelsStartAtWindowStart(t *testing.T) {
	b := fixedBounds(date(2024, time.January, 30), 4)
	want := []string{"30", "31", "1", "2"}
	if got := DayLabels(b); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
