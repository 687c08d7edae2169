package timeline

import (
	"testing"
	"time"

	"tableflip.dev/gantt/pkg/item"
	"tableflip.dev/gantt/pkg/timeutil"
)

func testItem() item.Item {
	return item.Item{
		Title: "Ship",
		Start: date(2024, time.March, 5),
		End:   date(2024, time.March, 12),
		Kind:  item.Task,
		Path:  "ship.md",
	}
}

func begin(t *testing.T, r *Resizer, it item.Item, edge Edge, x int) (Bounds, BarRect) {
	t.Helper()
	b := ComputeBounds([]item.Item{it}, date(2024, time.March, 5))
	bar, ok := BarFor(it, b)
	if !ok {
		t.Fatalf("expected a bar")
	}
	if !r.Begin(it, edge, x, bar, b) {
		t.Fatalf("begin refused")
	}
	return b, bar
}

func TestReleaseMovesStartByWholePitches(t *testing.T) {
	for _, k := range []int{1, 2, 5, -3} {
		var r Resizer
		it := testItem()
		_, _ = begin(t, &r, it, EdgeStart, 10)

		commit, ok := r.Release(10 + k*Pitch)
		if !ok {
			t.Fatalf("k=%d: expected a commit", k)
		}
		want := timeutil.AddDays(it.Start, k)
		if !commit.NewStart.Equal(want) {
			t.Fatalf("k=%d: expected start %v, got %v", k, want, commit.NewStart)
		}
		if !commit.NewEnd.Equal(it.End) {
			t.Fatalf("k=%d: end must be unchanged", k)
		}
	}
}

func TestReleaseStartInversionNudgesToDayBeforeEnd(t *testing.T) {
	var r Resizer
	it := testItem() // seven days long
	_, _ = begin(t, &r, it, EdgeStart, 0)

	commit, ok := r.Release(20 * Pitch)
	if !ok {
		t.Fatalf("expected a commit")
	}
	want := timeutil.AddDays(it.End, -1)
	if !commit.NewStart.Equal(want) {
		t.Fatalf("expected nudge to %v, got %v", want, commit.NewStart)
	}
	if !commit.NewEnd.Equal(it.End) {
		t.Fatalf("end must be unchanged")
	}
}

func TestReleaseEndPastStartCommitsStartPlusOne(t *testing.T) {
	var r Resizer
	it := testItem()
	_, _ = begin(t, &r, it, EdgeEnd, 0)

	commit, ok := r.Release(-20 * Pitch)
	if !ok {
		t.Fatalf("expected a commit")
	}
	want := timeutil.AddDays(it.Start, 1)
	if !commit.NewEnd.Equal(want) {
		t.Fatalf("expected end %v, got %v", want, commit.NewEnd)
	}
}

func TestReleaseZeroDeltaRequestsNothing(t *testing.T) {
	var r Resizer
	it := testItem()
	_, _ = begin(t, &r, it, EdgeEnd, 100)

	if _, ok := r.Release(101); ok {
		t.Fatalf("sub-half-pitch delta must not request a mutation")
	}
	if r.Active() {
		t.Fatalf("release must clear the drag state")
	}
}

func TestMovePreviewClampsAtOnePitch(t *testing.T) {
	var r Resizer
	it := testItem()
	_, bar := begin(t, &r, it, EdgeEnd, 0)

	preview, ok := r.Move(-100 * Pitch)
	if !ok {
		t.Fatalf("expected a preview")
	}
	if preview.Width != Pitch {
		t.Fatalf("expected clamp at one pitch, got %d", preview.Width)
	}
	if preview.Left != bar.Left {
		t.Fatalf("end-edge drag must not move the left edge")
	}
}

func TestMoveStartEdgeShiftsLeftAndWidth(t *testing.T) {
	var r Resizer
	it := testItem()
	_, bar := begin(t, &r, it, EdgeStart, 0)

	preview, ok := r.Move(2 * Pitch)
	if !ok {
		t.Fatalf("expected a preview")
	}
	if preview.Left != bar.Left+2*Pitch {
		t.Fatalf("expected left %d, got %d", bar.Left+2*Pitch, preview.Left)
	}
	if preview.Width != bar.Width-2*Pitch {
		t.Fatalf("expected width %d, got %d", bar.Width-2*Pitch, preview.Width)
	}

	// Dragging far right clamps: the left edge stops one pitch short of the
	// bar's right edge.
	preview, _ = r.Move(100 * Pitch)
	if preview.Width != Pitch {
		t.Fatalf("expected clamp at one pitch, got %d", preview.Width)
	}
	if preview.Left != bar.Left+bar.Width-Pitch {
		t.Fatalf("unexpected clamped left %d", preview.Left)
	}
}

func TestBeginIsExclusive(t *testing.T) {
	var r Resizer
	it := testItem()
	b, bar := begin(t, &r, it, EdgeEnd, 0)

	if r.Begin(it, EdgeStart, 5, bar, b) {
		t.Fatalf("second gesture must be refused while one is open")
	}
	r.Cancel()
	if !r.Begin(it, EdgeStart, 5, bar, b) {
		t.Fatalf("gesture must be allowed after cancel")
	}
}

func TestBeginRefusesUndatedItems(t *testing.T) {
	var r Resizer
	b := ComputeBounds(nil, date(2024, time.March, 5))
	if r.Begin(item.Item{Title: "no dates"}, EdgeEnd, 0, BarRect{}, b) {
		t.Fatalf("undated item cannot be resized")
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	var r Resizer
	r.Cancel()
	it := testItem()
	_, _ = begin(t, &r, it, EdgeEnd, 0)
	r.Cancel()
	r.Cancel()
	if r.Active() {
		t.Fatalf("expected idle after cancel")
	}
	if _, ok := r.Move(10); ok {
		t.Fatalf("move after cancel must be ignored")
	}
	if _, ok := r.Release(10); ok {
		t.Fatalf("release after cancel must be ignored")
	}
}
