package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/gantt/pkg/glyph"
	"tableflip.dev/gantt/pkg/item"
	"tableflip.dev/gantt/pkg/timeutil"
)

type PrettyPrint struct {
	ShowPath bool

	// Out defaults to color.Output so styling degrades on non-terminals.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)
	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " item")
	default:
		_, _ = c.Fprintln(pp.out(), " items")
	}
}

// Items prints the timeline items as a table: kind icon, title, ISO dates,
// duration, and optionally the source document path.
func (pp *PrettyPrint) Items(items ...item.Item) {
	if len(items) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.ShowPath {
		tbl.AddRow("", "Title", "Start", "End", "Duration", faint.Sprint("Path"))
	} else {
		tbl.AddRow("", "Title", "Start", "End", "Duration")
	}

	for _, it := range items {
		icon := glyph.Kind(it.Kind)
		if cb := glyph.Checkbox(it.Completion); cb != "" {
			icon = cb
		}

		start, end, duration := "-", "-", "-"
		if it.HasDates() {
			start = timeutil.FormatISO(it.Start)
			end = timeutil.FormatISO(it.End)
			days := timeutil.DaysBetween(it.Start, it.End)
			if days < 1 {
				days = 1
			}
			duration = timeutil.HumanDays(days)
		}

		title := strings.TrimSpace(it.Title)
		if pp.ShowPath {
			tbl.AddRow(icon, title, start, end, duration, faint.Sprint(it.Path))
		} else {
			tbl.AddRow(icon, title, start, end, duration)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
