package teaui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/gantt/pkg/glyph"
	"tableflip.dev/gantt/pkg/item"
	"tableflip.dev/gantt/pkg/timeline"
	"tableflip.dev/gantt/pkg/timeutil"
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true)
	styleButton = lipgloss.NewStyle().Reverse(true)
	styleYear   = lipgloss.NewStyle().Bold(true).Faint(true)
	styleScale  = lipgloss.NewStyle().Faint(true)
	styleToday  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	styleStatus = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleLabel  = lipgloss.NewStyle().Foreground(lipgloss.Color("235"))
	styleHandle = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Bold(true)
	styleInert  = lipgloss.NewStyle().Faint(true).Italic(true)
)

// header button layout; click hit-testing and rendering share these.
const (
	headerTitle   = " gantt  "
	todayButton   = "[ today ]"
	refreshButton = "[ refresh ]"
)

type headerAction int

const (
	headerNone headerAction = iota
	headerToday
	headerRefresh
)

func headerHit(x int) headerAction {
	todayStart := len(headerTitle)
	todayEnd := todayStart + len(todayButton)
	refreshStart := todayEnd + 1
	refreshEnd := refreshStart + len(refreshButton)
	switch {
	case x >= todayStart && x < todayEnd:
		return headerToday
	case x >= refreshStart && x < refreshEnd:
		return headerRefresh
	}
	return headerNone
}

// View renders the header, three scale rows, one grid row per item, and the
// status line. Scale and grid rows are drawn at full chart width and then
// sliced to the scroll window.
func (m Model) View() string {
	if m.termWidth == 0 || m.termHeight == 0 || !m.loaded {
		return "loading…"
	}

	rows := make([]string, 0, m.termHeight)
	rows = append(rows, m.renderHeader())
	rows = append(rows, m.slice(renderSpans(timeline.YearSpans(m.bounds), styleYear)))
	rows = append(rows, m.slice(renderSpans(timeline.MonthSpans(m.bounds), styleScale)))
	rows = append(rows, m.slice(m.renderDayRow()))

	height := m.gridHeight()
	for row := 0; row < height; row++ {
		i := m.top + row
		if i >= len(m.items) {
			rows = append(rows, "")
			continue
		}
		rows = append(rows, m.slice(m.renderItemRow(i)))
	}

	rows = append(rows, m.renderStatus())
	return strings.Join(rows, "\n")
}

// slice cuts a full-width styled row down to the visible scroll window.
func (m Model) slice(row string) string {
	return ansi.Cut(row, m.scroll, m.scroll+m.viewWidth())
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(styleHeader.Render(headerTitle))
	b.WriteString(styleButton.Render(todayButton))
	b.WriteString(" ")
	b.WriteString(styleButton.Render(refreshButton))
	b.WriteString("  ")
	b.WriteString(styleStatus.Render(timeutil.FormatISO(m.today)))
	return b.String()
}

// renderSpans draws a merged scale row: each span is one label padded to its
// day width, separated by a leading tick.
func renderSpans(spans []timeline.Span, style lipgloss.Style) string {
	var b strings.Builder
	for _, s := range spans {
		w := s.Days * timeline.Pitch
		cell := "╷" + s.Label
		cell = truncate.String(cell, uint(w))
		if pad := w - runewidth.StringWidth(cell); pad > 0 {
			cell += strings.Repeat(" ", pad)
		}
		b.WriteString(style.Render(cell))
	}
	return b.String()
}

func (m Model) renderDayRow() string {
	labels := timeline.DayLabels(m.bounds)
	todayIdx := timeutil.DaysBetween(m.bounds.Start, m.today)

	var b strings.Builder
	for i, label := range labels {
		cell := truncate.String(label, uint(timeline.Pitch))
		if pad := timeline.Pitch - runewidth.StringWidth(cell); pad > 0 {
			cell += strings.Repeat(" ", pad)
		}
		if i == todayIdx {
			b.WriteString(styleToday.Render(cell))
		} else {
			b.WriteString(styleScale.Render(cell))
		}
	}
	return b.String()
}

func (m Model) renderItemRow(i int) string {
	it := m.items[i]
	width := m.canvasWidth()
	todayCol := timeutil.DaysBetween(m.bounds.Start, m.today) * timeline.Pitch

	bar, ok := timeline.BarFor(it, m.bounds)
	if !ok {
		return m.renderInertRow(it, width, todayCol)
	}

	rect := timeline.BarRect{Left: bar.Left, Width: bar.RenderWidth()}
	if m.preview != nil && i == m.selected && m.resizer.Active() {
		rect = timeline.BarRect{Left: m.preview.Left, Width: m.preview.Width}
	}
	if rect.Left < 0 {
		rect.Left = 0
	}
	if rect.Left+rect.Width > width {
		rect.Width = width - rect.Left
	}

	var b strings.Builder
	b.WriteString(renderGap(0, rect.Left, todayCol))
	b.WriteString(m.renderBar(it, rect, i == m.selected))
	b.WriteString(renderGap(rect.Left+rect.Width, width, todayCol))
	return b.String()
}

// renderInertRow draws an undated item: no bar, just its label pinned to the
// viewport's left edge.
func (m Model) renderInertRow(it item.Item, width, todayCol int) string {
	label := truncate.StringWithTail(m.barLabel(it)+" (no dates)", uint(m.viewWidth()), "…")
	lw := runewidth.StringWidth(label)

	at := m.scroll
	var b strings.Builder
	b.WriteString(renderGap(0, at, todayCol))
	b.WriteString(styleInert.Render(label))
	b.WriteString(renderGap(at+lw, width, todayCol))
	return b.String()
}

// renderGap fills [from, to) with blanks, drawing the today rule if its
// column falls inside the gap.
func renderGap(from, to, todayCol int) string {
	if to <= from {
		return ""
	}
	if todayCol >= from && todayCol < to {
		return strings.Repeat(glyph.Empty, todayCol-from) +
			styleToday.Render(glyph.TodayLine) +
			strings.Repeat(glyph.Empty, to-todayCol-1)
	}
	return strings.Repeat(glyph.Empty, to-from)
}

// renderBar paints one bar cell by cell: a left-to-right gradient
// background, edge handles when selected, and the sticky label overlaid
// starting at its shifted position.
func (m Model) renderBar(it item.Item, rect timeline.BarRect, selected bool) string {
	colors := timeline.Gradient(m.palette.Base(it.Kind), rect.Width)
	shift := timeline.StickyShift(rect, m.scroll)
	label := truncate.StringWithTail(m.barLabel(it), uint(rect.Width-shift), "…")
	cells := labelCells(label, rect.Width-shift)

	var b strings.Builder
	li := 0
	for c := 0; c < rect.Width; c++ {
		bg := lipgloss.Color(colors[c].Hex())
		content := glyph.Empty
		style := lipgloss.NewStyle().Background(bg)

		switch {
		case selected && c == 0:
			content = glyph.HandleLeft
			style = styleHandle.Background(bg)
		case selected && c == rect.Width-1:
			content = glyph.HandleRight
			style = styleHandle.Background(bg)
		case c >= shift && li < len(cells):
			content = cells[li]
			li++
			if content == "" {
				// Second column of a wide rune; already painted.
				continue
			}
			style = styleLabel.Background(bg)
		}
		b.WriteString(style.Render(content))
	}
	return b.String()
}

func (m Model) barLabel(it item.Item) string {
	icon := glyph.Kind(it.Kind)
	if cb := glyph.Checkbox(it.Completion); cb != "" {
		icon = cb
	}
	return " " + icon + " " + it.Title
}

// labelCells splits a label into per-column cells. A double-width rune
// contributes its rune plus an empty marker cell so column accounting stays
// exact.
func labelCells(label string, max int) []string {
	cells := make([]string, 0, max)
	for _, r := range label {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if len(cells)+w > max {
			break
		}
		cells = append(cells, string(r))
		for k := 1; k < w; k++ {
			cells = append(cells, "")
		}
	}
	return cells
}

func (m Model) renderStatus() string {
	if m.mode == modeCommand {
		return ":" + m.input.View()
	}

	tooltip := ""
	if it, ok := m.currentItem(); ok {
		if it.HasDates() {
			tooltip = fmt.Sprintf(" %s  %s → %s (%s) ",
				it.Title,
				timeutil.FormatISO(it.Start),
				timeutil.FormatISO(it.End),
				timeutil.HumanDays(timeline.DurationDays(it.Start, it.End)))
		} else {
			tooltip = fmt.Sprintf(" %s  no dates ", it.Title)
		}
	}
	line := styleHeader.Render(tooltip) + styleStatus.Render(m.status)
	return truncate.String(line, uint(m.viewWidth()))
}
