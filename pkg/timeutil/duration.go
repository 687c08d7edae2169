package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultSpan is the fallback filter window used when none is provided.
	DefaultSpan = "12w"
)

var (
	spanPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	spanUnits   = map[string]int{
		"d":      1,
		"day":    1,
		"days":   1,
		"w":      7,
		"wk":     7,
		"wks":    7,
		"week":   7,
		"weeks":  7,
		"mo":     30,
		"month":  30,
		"months": 30,
		"y":      365,
		"yr":     365,
		"year":   365,
		"years":  365,
	}
)

// ParseSpan parses a human-friendly day span (for example "2w", "90d", or
// "1y6mo") and returns the whole-day count along with a canonical compact
// representation. An empty input falls back to the default span.
func ParseSpan(input string) (int, string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		trimmed = DefaultSpan
	}

	remaining := strings.ToLower(trimmed)
	total := 0
	for len(remaining) > 0 {
		matches := spanPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("invalid span segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, "", fmt.Errorf("invalid span value %q: %w", matches[1], err)
		}
		unit, ok := spanUnits[matches[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported span unit %q", matches[2])
		}
		total += value * unit
		remaining = remaining[len(matches[0]):]
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("span must cover at least one day")
	}

	return total, FormatSpan(total), nil
}

// FormatSpan renders a day count using year/month/week/day tokens.
func FormatSpan(days int) string {
	if days <= 0 {
		return "0d"
	}

	type unit struct {
		label string
		days  int
	}
	units := []unit{
		{"y", 365},
		{"mo", 30},
		{"w", 7},
		{"d", 1},
	}

	var parts []string
	remaining := days
	for _, u := range units {
		if remaining < u.days {
			continue
		}
		count := remaining / u.days
		remaining -= count * u.days
		parts = append(parts, fmt.Sprintf("%d%s", count, u.label))
	}
	if len(parts) == 0 {
		return "0d"
	}
	return strings.Join(parts, "")
}
