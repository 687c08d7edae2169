package teaui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/gantt/pkg/app"
	"tableflip.dev/gantt/pkg/item"
	"tableflip.dev/gantt/pkg/timeline"
	"tableflip.dev/gantt/pkg/timeutil"
	"tableflip.dev/gantt/pkg/vault"
)

// Model states
type mode int

const (
	modeNormal mode = iota
	modeCommand
)

// Fixed chrome rows: header plus the three scale rows above the grid, and
// the status line below it.
const (
	chromeTop    = 4
	chromeBottom = 1
)

// Model contains the timeline UI state.
type Model struct {
	svc *app.Service
	ctx context.Context

	mode mode

	items  []item.Item
	bounds timeline.Bounds
	today  time.Time

	// generation tags async scans; results from an older generation are
	// discarded so a slow rescan can never overwrite a newer one.
	generation int
	loaded     bool

	selected int
	top      int
	scroll   int

	resizer timeline.Resizer
	preview *timeline.Preview

	input  textinput.Model
	status string

	palette timeline.Palette

	watch <-chan vault.Event

	termWidth  int
	termHeight int
}

// New creates a timeline model backed by the Service.
func New(svc *app.Service) Model {
	ti := textinput.New()
	ti.Placeholder = "command"
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.Styles.Cursor.Color = lipgloss.Color("218")
	ti.Styles.Cursor.Shape = tea.CursorUnderline

	palette := timeline.Palette{}
	if svc != nil && svc.Settings != nil {
		palette.Project = svc.Settings.ProjectColor
		palette.Task = svc.Settings.TaskColor
	}

	return Model{
		svc:     svc,
		ctx:     context.Background(),
		mode:    modeNormal,
		input:   ti,
		status:  "NORMAL: j/k select, h/l scroll, t today, x toggle, enter open, r refresh, : commands, q quit",
		palette: palette,
	}
}

// Init triggers the first scan and subscribes to vault changes. The scan is
// requested through a message so the generation counter only ever advances
// inside Update, where the mutated model is the one kept.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return refreshRequestMsg{} },
		m.startWatch(),
	)
}

// messages
type refreshRequestMsg struct{}
type errMsg struct{ err error }
type scanFailedMsg struct{ err error }
type itemsLoadedMsg struct {
	generation int
	items      []item.Item
	bounds     timeline.Bounds
	today      time.Time
}
type committedMsg struct{ what string }
type watchStartedMsg struct{ ch <-chan vault.Event }
type vaultChangedMsg struct{}
type editorFinishedMsg struct{ err error }

func (m *Model) refresh() tea.Cmd {
	m.generation++
	gen := m.generation
	svc := m.svc
	ctx := m.ctx
	return func() tea.Msg {
		items, err := svc.Items(ctx)
		if err != nil {
			return scanFailedMsg{err}
		}
		today := timeutil.Midnight(time.Now())
		return itemsLoadedMsg{
			generation: gen,
			items:      items,
			bounds:     timeline.ComputeBounds(items, today),
			today:      today,
		}
	}
}

func (m *Model) startWatch() tea.Cmd {
	svc := m.svc
	ctx := m.ctx
	return func() tea.Msg {
		ch, err := svc.Watch(ctx)
		if err != nil {
			return errMsg{err}
		}
		return watchStartedMsg{ch}
	}
}

func waitForChange(ch <-chan vault.Event) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return vaultChangedMsg{}
	}
}

func (m *Model) commitDates(c timeline.Commit) tea.Cmd {
	svc := m.svc
	ctx := m.ctx
	return func() tea.Msg {
		if err := svc.UpdateDates(ctx, c.Item, c.NewStart, c.NewEnd); err != nil {
			return errMsg{err}
		}
		return committedMsg{what: fmt.Sprintf("%s → %s",
			timeutil.FormatISO(c.NewStart), timeutil.FormatISO(c.NewEnd))}
	}
}

func (m *Model) toggleTask(it item.Item) tea.Cmd {
	svc := m.svc
	ctx := m.ctx
	return func() tea.Msg {
		completion, err := svc.ToggleTask(ctx, it)
		if err != nil {
			return errMsg{err}
		}
		if completion == item.CompletionDone {
			return committedMsg{what: "done"}
		}
		return committedMsg{what: "reopened"}
	}
}

func (m *Model) openSelected() tea.Cmd {
	it, ok := m.currentItem()
	if !ok {
		return nil
	}
	cmd, err := m.svc.OpenCommand(it)
	if err != nil {
		return func() tea.Msg { return errMsg{err} }
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err}
	})
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.clampViewport()

	case refreshRequestMsg:
		cmds = append(cmds, m.refresh())

	case errMsg:
		m.status = "ERR: " + msg.err.Error()
		// A failed mutation leaves the document untouched, but the drag
		// preview may still show the rejected geometry.
		m.preview = nil
		cmds = append(cmds, m.refresh())

	case scanFailedMsg:
		// Keep the last good board on screen. No automatic rescan: an
		// unreadable vault would otherwise spin errMsg→refresh forever.
		// The watcher or a manual refresh retries.
		m.status = "ERR: " + msg.err.Error()

	case itemsLoadedMsg:
		if msg.generation != m.generation {
			// Stale scan; a newer one is already in flight.
			break
		}
		m.items = msg.items
		m.bounds = msg.bounds
		m.today = msg.today
		if m.selected >= len(m.items) {
			m.selected = len(m.items) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		if !m.loaded {
			m.loaded = true
			m.scroll = timeline.ScrollToToday(m.bounds, m.today, m.viewWidth())
		}
		m.clampViewport()

	case committedMsg:
		m.status = "Updated: " + msg.what
		cmds = append(cmds, m.refresh())

	case watchStartedMsg:
		m.watch = msg.ch
		cmds = append(cmds, waitForChange(m.watch))

	case vaultChangedMsg:
		cmds = append(cmds, m.refresh())
		if m.watch != nil {
			cmds = append(cmds, waitForChange(m.watch))
		}

	case editorFinishedMsg:
		if msg.err != nil {
			m.status = "ERR: " + msg.err.Error()
		}
		cmds = append(cmds, m.refresh())

	case tea.MouseClickMsg:
		m.handleClick(msg, &cmds)

	case tea.MouseMotionMsg:
		if m.resizer.Active() {
			if p, ok := m.resizer.Move(m.scroll + msg.X); ok {
				m.preview = &p
			}
		}

	case tea.MouseReleaseMsg:
		if m.resizer.Active() {
			m.preview = nil
			if commit, ok := m.resizer.Release(m.scroll + msg.X); ok {
				cmds = append(cmds, m.commitDates(commit))
			}
		}

	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			m.scrollBy(-2 * timeline.Pitch)
		case tea.MouseWheelDown:
			m.scrollBy(2 * timeline.Pitch)
		}

	case tea.KeyPressMsg:
		switch m.mode {
		case modeCommand:
			switch msg.String() {
			case "enter":
				m.runCommand(strings.TrimSpace(m.input.Value()), &cmds)
				m.mode = modeNormal
				m.input.Reset()
				m.input.Blur()
			case "esc":
				m.mode = modeNormal
				m.input.Reset()
				m.input.Blur()
				m.status = "Command cancelled"
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
			}
		case modeNormal:
			m.handleNormalKey(msg, &cmds)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleNormalKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		*cmds = append(*cmds, tea.Quit)

	case ":":
		m.mode = modeCommand
		m.input.Reset()
		if cmd := m.input.Focus(); cmd != nil {
			*cmds = append(*cmds, cmd)
		}
		*cmds = append(*cmds, textinput.Blink)

	case "esc":
		if m.resizer.Active() {
			m.resizer.Cancel()
			m.preview = nil
			m.status = "Resize cancelled"
		}

	// selection
	case "j", "down":
		if m.selected < len(m.items)-1 {
			m.selected++
		}
		m.clampViewport()
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
		m.clampViewport()
	case "g":
		m.selected = 0
		m.clampViewport()
	case "G":
		if len(m.items) > 0 {
			m.selected = len(m.items) - 1
		}
		m.clampViewport()

	// horizontal scroll
	case "h", "left":
		m.scrollBy(-timeline.Pitch)
	case "l", "right":
		m.scrollBy(timeline.Pitch)
	case "H", "pgup":
		m.scrollBy(-m.viewWidth())
	case "L", "pgdown":
		m.scrollBy(m.viewWidth())
	case "t":
		m.scroll = timeline.ScrollToToday(m.bounds, m.today, m.viewWidth())
		m.status = "Centered on today"

	// date nudges through the same commit path as mouse resize
	case "[":
		m.adjustDates(-1, 0, cmds)
	case "]":
		m.adjustDates(1, 0, cmds)
	case "{":
		m.adjustDates(0, -1, cmds)
	case "}":
		m.adjustDates(0, 1, cmds)

	case "x":
		if it, ok := m.currentItem(); ok {
			if it.Kind == item.Task {
				*cmds = append(*cmds, m.toggleTask(it))
			} else {
				m.status = "Only tasks have checkboxes"
			}
		}

	case "enter", "o":
		if cmd := m.openSelected(); cmd != nil {
			*cmds = append(*cmds, cmd)
		}

	case "r":
		m.status = "Refreshing"
		*cmds = append(*cmds, m.refresh())
	}
}

func (m *Model) runCommand(input string, cmds *[]tea.Cmd) {
	switch input {
	case "q", "quit", "exit":
		*cmds = append(*cmds, tea.Quit)
	case "today":
		m.scroll = timeline.ScrollToToday(m.bounds, m.today, m.viewWidth())
	case "refresh":
		*cmds = append(*cmds, m.refresh())
	case "":
		// nothing
	default:
		m.status = fmt.Sprintf("Unknown command: %s", input)
	}
}

// adjustDates moves the selected item's start and/or end by whole days and
// commits, guarding against an inverted range the same way release does.
func (m *Model) adjustDates(startDelta, endDelta int, cmds *[]tea.Cmd) {
	it, ok := m.currentItem()
	if !ok {
		return
	}
	if !it.HasDates() {
		m.status = "Item has no dates"
		return
	}
	newStart := timeutil.AddDays(it.Start, startDelta)
	newEnd := timeutil.AddDays(it.End, endDelta)
	if !newStart.Before(newEnd) {
		if startDelta != 0 {
			newStart = timeutil.AddDays(newEnd, -1)
		} else {
			newEnd = timeutil.AddDays(newStart, 1)
		}
	}
	*cmds = append(*cmds, m.commitDates(timeline.Commit{
		Item:     it,
		NewStart: newStart,
		NewEnd:   newEnd,
	}))
}

// handleClick routes a press to the header buttons, an item's bar (handles,
// checkbox, or body), or row selection.
func (m *Model) handleClick(msg tea.MouseClickMsg, cmds *[]tea.Cmd) {
	if msg.Button != tea.MouseLeft {
		return
	}

	if msg.Y == 0 {
		switch headerHit(msg.X) {
		case headerToday:
			m.scroll = timeline.ScrollToToday(m.bounds, m.today, m.viewWidth())
			m.status = "Centered on today"
		case headerRefresh:
			m.status = "Refreshing"
			*cmds = append(*cmds, m.refresh())
		}
		return
	}

	idx := m.top + msg.Y - chromeTop
	if msg.Y < chromeTop || idx < 0 || idx >= len(m.items) {
		return
	}
	m.selected = idx
	it := m.items[idx]

	bar, ok := timeline.BarFor(it, m.bounds)
	if !ok {
		return
	}
	rect := timeline.BarRect{Left: bar.Left, Width: bar.RenderWidth()}

	cx := m.scroll + msg.X
	if cx < rect.Left || cx >= rect.Left+rect.Width {
		return
	}

	switch {
	case cx == rect.Left:
		if m.resizer.Begin(it, timeline.EdgeStart, cx, bar, m.bounds) {
			m.status = "Dragging start"
		}
	case cx == rect.Left+rect.Width-1:
		if m.resizer.Begin(it, timeline.EdgeEnd, cx, bar, m.bounds) {
			m.status = "Dragging end"
		}
	case it.Kind == item.Task && cx == rect.Left+timeline.StickyShift(rect, m.scroll)+1:
		// The checkbox glyph sits one cell into the sticky label.
		*cmds = append(*cmds, m.toggleTask(it))
	default:
		if cmd := m.openSelected(); cmd != nil {
			*cmds = append(*cmds, cmd)
		}
	}
}

func (m *Model) currentItem() (item.Item, bool) {
	if m.selected < 0 || m.selected >= len(m.items) {
		return item.Item{}, false
	}
	return m.items[m.selected], true
}

func (m Model) canvasWidth() int {
	return m.bounds.TotalDays * timeline.Pitch
}

func (m Model) viewWidth() int {
	if m.termWidth <= 0 {
		return 80
	}
	return m.termWidth
}

func (m Model) gridHeight() int {
	h := m.termHeight - chromeTop - chromeBottom
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) scrollBy(delta int) {
	m.scroll += delta
	m.clampViewport()
}

func (m *Model) clampViewport() {
	if max := m.canvasWidth() - m.viewWidth(); m.scroll > max {
		m.scroll = max
	}
	if m.scroll < 0 {
		m.scroll = 0
	}

	// Keep the selection inside the visible band of rows.
	if m.selected < m.top {
		m.top = m.selected
	}
	if bottom := m.top + m.gridHeight() - 1; m.selected > bottom {
		m.top = m.selected - m.gridHeight() + 1
	}
	if m.top < 0 {
		m.top = 0
	}
}

// Run launches the timeline UI.
func Run(svc *app.Service) error {
	p := tea.NewProgram(New(svc), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
