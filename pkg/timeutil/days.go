package timeutil

import (
	"fmt"
	"math"
	"time"
)

const (
	// LayoutISO is the canonical date-only layout used everywhere dates are
	// read from or written back into documents.
	LayoutISO = "2006-01-02"

	day = 24 * time.Hour
)

// Midnight truncates t to the start of its day in UTC. All timeline math is
// day-precision; time-of-day never survives past this call.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays moves t by n whole calendar days using date arithmetic rather than
// a duration add, so a daylight-time transition cannot skip or duplicate a
// day in the scale.
func AddDays(t time.Time, n int) time.Time {
	return Midnight(t).AddDate(0, 0, n)
}

// DaysBetween returns the whole-day distance from a to b. Negative when b is
// before a. Both inputs are midnight-aligned first.
func DaysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)) / day)
}

// CeilDays rounds the span a..b up to whole days without aligning the inputs
// first. Day-aligned inputs behave exactly like DaysBetween.
func CeilDays(a, b time.Time) int {
	return int(math.Ceil(float64(b.Sub(a)) / float64(day)))
}

// FormatISO renders t as YYYY-MM-DD.
func FormatISO(t time.Time) string {
	return t.Format(LayoutISO)
}

// ParseISO parses a YYYY-MM-DD date, midnight-aligned in UTC.
func ParseISO(s string) (time.Time, error) {
	t, err := time.Parse(LayoutISO, s)
	if err != nil {
		return time.Time{}, err
	}
	return Midnight(t), nil
}

// HumanDays renders a whole-day count with the correct unit word.
func HumanDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
