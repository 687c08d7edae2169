package timeline

import (
	"math"
	"time"

	"tableflip.dev/gantt/pkg/item"
	"tableflip.dev/gantt/pkg/timeutil"
)

// Edge names which end of a bar a drag gesture grabs.
type Edge int

const (
	EdgeStart Edge = iota
	EdgeEnd
)

func (e Edge) String() string {
	if e == EdgeStart {
		return "start"
	}
	return "end"
}

// DragState captures one active resize gesture. At most one exists at a
// time and it lives only between Begin and Release/Cancel.
type DragState struct {
	Item         item.Item
	Edge         Edge
	InitialX     int
	InitialLeft  int
	InitialWidth int
	Bounds       Bounds
}

// Preview is the live bar rectangle shown while the pointer moves.
type Preview struct {
	Left  int
	Width int
}

// Commit is the date change requested when a gesture ends with a non-zero
// whole-day delta.
type Commit struct {
	Item     item.Item
	NewStart time.Time
	NewEnd   time.Time
}

// Resizer is the drag state machine: Idle until Begin, Dragging until
// Release or Cancel. It owns no I/O; callers apply previews to the screen
// and commits to storage.
type Resizer struct {
	state *DragState
}

// Active reports whether a gesture is in flight.
func (r *Resizer) Active() bool {
	return r.state != nil
}

// State returns a copy of the current drag state for rendering decisions.
func (r *Resizer) State() (DragState, bool) {
	if r.state == nil {
		return DragState{}, false
	}
	return *r.state, true
}

// Begin opens a gesture on the given edge. It refuses while another gesture
// is open and for items that cannot lay out a bar.
func (r *Resizer) Begin(it item.Item, edge Edge, x int, bar BarRect, b Bounds) bool {
	if r.state != nil || !it.HasDates() {
		return false
	}
	r.state = &DragState{
		Item:         it,
		Edge:         edge,
		InitialX:     x,
		InitialLeft:  bar.Left,
		InitialWidth: bar.Width,
		Bounds:       b,
	}
	return true
}

// Move computes the live preview for the pointer position. A start-edge
// drag shifts the left edge and counter-adjusts the width; an end-edge drag
// only changes the width. Width clamps at one day pitch so the preview can
// never invert.
func (r *Resizer) Move(x int) (Preview, bool) {
	if r.state == nil {
		return Preview{}, false
	}
	s := r.state
	delta := x - s.InitialX

	switch s.Edge {
	case EdgeStart:
		left := s.InitialLeft + delta
		width := s.InitialWidth - delta
		if width < Pitch {
			width = Pitch
			left = s.InitialLeft + s.InitialWidth - Pitch
		}
		return Preview{Left: left, Width: width}, true
	default:
		width := s.InitialWidth + delta
		if width < Pitch {
			width = Pitch
		}
		return Preview{Left: s.InitialLeft, Width: width}, true
	}
}

// Release ends the gesture and converts the accumulated delta into a
// whole-day date change. The second result is false when no mutation should
// be requested (idle resizer or a delta that rounds to zero days). Moving
// an edge past its counterpart nudges it back to one day away, so the
// committed range is never inverted or collapsed.
func (r *Resizer) Release(x int) (Commit, bool) {
	if r.state == nil {
		return Commit{}, false
	}
	s := *r.state
	r.state = nil

	deltaDays := int(math.Round(float64(x-s.InitialX) / Pitch))
	if deltaDays == 0 {
		return Commit{}, false
	}

	newStart := s.Item.Start
	newEnd := s.Item.End
	if s.Edge == EdgeStart {
		newStart = timeutil.AddDays(newStart, deltaDays)
		if !newStart.Before(newEnd) {
			newStart = timeutil.AddDays(newEnd, -1)
		}
	} else {
		newEnd = timeutil.AddDays(newEnd, deltaDays)
		if !newEnd.After(newStart) {
			newEnd = timeutil.AddDays(newStart, 1)
		}
	}

	return Commit{Item: s.Item, NewStart: newStart, NewEnd: newEnd}, true
}

// Cancel discards any gesture without committing. Safe to call repeatedly;
// views call it on teardown so a lost pointer can never wedge the machine.
func (r *Resizer) Cancel() {
	r.state = nil
}
