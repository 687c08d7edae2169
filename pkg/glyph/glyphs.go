package glyph

import "tableflip.dev/gantt/pkg/item"

// The timeline draws its handles and markers out of a small fixed set of
// cell glyphs. Everything here is one terminal cell wide so row widths stay
// exact.
const (
	HandleLeft  = "▐"
	HandleRight = "▌"
	TodayLine   = "│"
	Empty       = " "
)

// Checkbox glyphs mirror the markdown task states.
const (
	CheckboxOpen = "☐"
	CheckboxDone = "☑"
)

// Kind returns the icon shown next to an item's label.
func Kind(k item.Kind) string {
	if k == item.Project {
		return "▦"
	}
	return "●"
}

// Checkbox returns the glyph for a task's completion state, or empty for
// items without a checkbox.
func Checkbox(c item.Completion) string {
	switch c {
	case item.CompletionOpen:
		return CheckboxOpen
	case item.CompletionDone:
		return CheckboxDone
	default:
		return ""
	}
}
