package item

import (
	"regexp"
	"strings"
	"time"

	"tableflip.dev/gantt/pkg/timeutil"
)

// TaskTag marks a line as a task entry.
const TaskTag = "#task"

var (
	datePattern     = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	checkboxPattern = regexp.MustCompile(`^[-*]\s*\[(.)\]\s*`)
)

// ParseTasks extracts task items from the document text. A task is any line
// carrying the #task tag; the first two ISO dates on the line become the
// start and end (end defaults to start), a leading markdown checkbox becomes
// the completion state, and the remaining text becomes the title. Lines with
// no title left after stripping are skipped.
func ParseTasks(path, content string) []Item {
	if !strings.Contains(content, TaskTag) {
		return nil
	}

	var tasks []Item
	for _, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, TaskTag) {
			continue
		}

		raw := strings.TrimSpace(line)

		var start, end time.Time
		dates := datePattern.FindAllString(raw, 2)
		if len(dates) > 0 {
			start = parseISOQuiet(dates[0])
		}
		if len(dates) > 1 {
			end = parseISOQuiet(dates[1])
		}
		if end.IsZero() {
			end = start
		}

		completion := CompletionNone
		if m := checkboxPattern.FindStringSubmatch(raw); m != nil {
			if m[1] == "x" || m[1] == "X" {
				completion = CompletionDone
			} else {
				completion = CompletionOpen
			}
		}

		title := strings.ReplaceAll(raw, TaskTag, "")
		title = datePattern.ReplaceAllString(title, "")
		title = strings.TrimSpace(title)
		title = strings.TrimSpace(checkboxPattern.ReplaceAllString(title, ""))
		if title == "" {
			continue
		}

		tasks = append(tasks, Item{
			Title:      title,
			Start:      start,
			End:        end,
			Kind:       Task,
			Path:       path,
			RawSpan:    raw,
			Completion: completion,
		})
	}
	return tasks
}

func parseISOQuiet(s string) time.Time {
	t, err := timeutil.ParseISO(s)
	if err != nil {
		return time.Time{}
	}
	return t
}
