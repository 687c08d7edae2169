package item

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/gantt/pkg/timeutil"
)

var (
	// ErrSpanNotFound is returned when a task's originating line no longer
	// exists in the document, for example after an external edit.
	ErrSpanNotFound = errors.New("item: task line not found in document")

	// ErrNoCheckbox is returned when a completion toggle is requested for a
	// task line that carries no markdown checkbox.
	ErrNoCheckbox = errors.New("item: task line has no checkbox")
)

// RewriteProjectDates returns the document text with the project's start and
// end front-matter fields set to the given dates. Existing fields matching
// any of the configured alternates are updated in place; missing fields are
// appended inside the block, and a front-matter block is created when the
// document has none.
func RewriteProjectDates(content string, startFields, endFields []string, start, end time.Time) string {
	lines := strings.Split(content, "\n")
	fmStart, fmEnd := frontMatterRange(lines)

	startValue := timeutil.FormatISO(start)
	endValue := timeutil.FormatISO(end)

	if fmStart == -1 || fmEnd == -1 {
		block := []string{
			"---",
			fmt.Sprintf("%s: %s", firstField(startFields, "start_date"), startValue),
			fmt.Sprintf("%s: %s", firstField(endFields, "finish_date"), endValue),
			"---",
			"",
		}
		return strings.Join(append(block, lines...), "\n")
	}

	startDone := false
	endDone := false
	for i := fmStart + 1; i < fmEnd; i++ {
		colon := strings.Index(lines[i], ":")
		if colon == -1 {
			continue
		}
		field := strings.TrimSpace(lines[i][:colon])
		if containsField(startFields, field) {
			lines[i] = fmt.Sprintf("%s: %s", field, startValue)
			startDone = true
		}
		if containsField(endFields, field) {
			lines[i] = fmt.Sprintf("%s: %s", field, endValue)
			endDone = true
		}
	}

	if !startDone {
		lines = insertLine(lines, fmEnd, fmt.Sprintf("%s: %s", firstField(startFields, "start_date"), startValue))
		fmEnd++
	}
	if !endDone {
		lines = insertLine(lines, fmEnd, fmt.Sprintf("%s: %s", firstField(endFields, "finish_date"), endValue))
	}

	return strings.Join(lines, "\n")
}

// RewriteTaskDates returns the document text with the task line's dates
// replaced. The line is located by exact match against the task's raw span;
// when the line carries no dates yet, both are inserted ahead of the #task
// tag, and when it carries one, it is expanded to a start/end pair.
func RewriteTaskDates(content, rawSpan string, start, end time.Time) (string, error) {
	lines := strings.Split(content, "\n")
	idx := findSpan(lines, rawSpan)
	if idx == -1 {
		return "", ErrSpanNotFound
	}

	line := lines[idx]
	startValue := timeutil.FormatISO(start)
	endValue := timeutil.FormatISO(end)

	switch dates := datePattern.FindAllString(line, -1); len(dates) {
	case 0:
		tag := strings.Index(line, TaskTag)
		if tag == -1 {
			return "", fmt.Errorf("item: %s tag missing from task line", TaskTag)
		}
		lines[idx] = line[:tag] + startValue + " " + endValue + " " + line[tag:]
	case 1:
		lines[idx] = datePattern.ReplaceAllString(line, startValue+" "+endValue)
	default:
		// Replace only the first two dates; anything after stays untouched.
		seen := 0
		lines[idx] = datePattern.ReplaceAllStringFunc(line, func(match string) string {
			seen++
			switch seen {
			case 1:
				return startValue
			case 2:
				return endValue
			}
			return match
		})
	}

	return strings.Join(lines, "\n"), nil
}

// ToggleTaskCheckbox flips the checkbox on the task line located by its raw
// span, returning the updated document text and the new completion state.
func ToggleTaskCheckbox(content, rawSpan string) (string, Completion, error) {
	lines := strings.Split(content, "\n")
	idx := findSpan(lines, rawSpan)
	if idx == -1 {
		return "", CompletionNone, ErrSpanNotFound
	}

	line := lines[idx]
	trimmed := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(trimmed)]

	m := checkboxPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return "", CompletionNone, ErrNoCheckbox
	}

	state := CompletionDone
	mark := "x"
	if m[1] == "x" || m[1] == "X" {
		state = CompletionOpen
		mark = " "
	}

	bullet := trimmed[:1]
	rest := trimmed[len(m[0]):]
	lines[idx] = fmt.Sprintf("%s%s [%s] %s", indent, bullet, mark, rest)

	return strings.Join(lines, "\n"), state, nil
}

// frontMatterRange returns the line indexes of the opening and closing ---
// markers, or (-1, -1) when the document has no front-matter block.
func frontMatterRange(lines []string) (int, int) {
	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "---" {
			if start == -1 && strings.TrimSpace(line) != "" {
				return -1, -1
			}
			continue
		}
		if start == -1 {
			start = i
			continue
		}
		return start, i
	}
	return -1, -1
}

func findSpan(lines []string, rawSpan string) int {
	for i, line := range lines {
		if strings.TrimSpace(line) == rawSpan {
			return i
		}
	}
	return -1
}

func containsField(fields []string, name string) bool {
	for _, f := range fields {
		if f == name {
			return true
		}
	}
	return false
}

func firstField(fields []string, fallback string) string {
	if len(fields) == 0 {
		return fallback
	}
	return fields[0]
}

func insertLine(lines []string, at int, line string) []string {
	lines = append(lines, "")
	copy(lines[at+1:], lines[at:])
	lines[at] = line
	return lines
}
