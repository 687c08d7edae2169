package item

import (
	"sort"
	"time"
)

// Kind discriminates how an item is rendered and persisted. Projects come
// from document front-matter, tasks from inline #task lines.
type Kind int

const (
	Project Kind = iota
	Task
)

func (k Kind) String() string {
	switch k {
	case Project:
		return "project"
	case Task:
		return "task"
	}
	return "unknown"
}

// Completion is tri-state: tasks without a checkbox have no completion at
// all, and projects never carry one.
type Completion int

const (
	CompletionNone Completion = iota
	CompletionOpen
	CompletionDone
)

// Item is one displayable timeline entry. A zero Start or End means the
// date is unknown; such items never lay out as bars.
type Item struct {
	Title      string
	Start      time.Time
	End        time.Time
	Kind       Kind
	Path       string
	RawSpan    string
	Completion Completion
}

// HasDates reports whether the item can be laid out as a bar.
func (i Item) HasDates() bool {
	return !i.Start.IsZero() && !i.End.IsZero()
}

// Key identifies the item within one render pass, precise enough to match a
// drag gesture back to its row. Tasks include their originating line since
// a document can hold many tasks.
func (i Item) Key() string {
	if i.RawSpan == "" {
		return i.Path
	}
	return i.Path + "\x00" + i.RawSpan
}

// Sort orders items by start date ascending with undated items last,
// matching the presentation order of the timeline rows.
func Sort(items []Item) {
	sort.SliceStable(items, func(a, b int) bool {
		left, right := items[a], items[b]
		switch {
		case left.Start.IsZero() && right.Start.IsZero():
			return false
		case left.Start.IsZero():
			return false
		case right.Start.IsZero():
			return true
		default:
			return left.Start.Before(right.Start)
		}
	})
}
