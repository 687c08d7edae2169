package timeline

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/gantt/pkg/item"
)

func TestPaletteBase(t *testing.T) {
	p := Palette{Project: "#7c3aed", Task: "#2563eb"}

	proj := p.Base(item.Project)
	task := p.Base(item.Task)
	if proj == task {
		t.Fatalf("project and task colors must differ")
	}
	if got := proj.Hex(); got != "#7c3aed" {
		t.Errorf("expected project hex #7c3aed, got %s", got)
	}
	if got := task.Hex(); got != "#2563eb" {
		t.Errorf("expected task hex #2563eb, got %s", got)
	}
}

func TestPaletteBaseFallsBackToGray(t *testing.T) {
	p := Palette{Project: "not-a-color", Task: ""}
	gray := colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	if got := p.Base(item.Project); got != gray {
		t.Errorf("expected gray fallback, got %v", got)
	}
	if got := p.Base(item.Task); got != gray {
		t.Errorf("expected gray fallback, got %v", got)
	}
}

func TestLightenMovesTowardWhite(t *testing.T) {
	base := colorful.Color{R: 0.2, G: 0.4, B: 0.6}
	light := Lighten(base, LightenFraction)
	if light.R <= base.R || light.G <= base.G || light.B <= base.B {
		t.Fatalf("lightened color must be brighter on every channel: %v -> %v", base, light)
	}
	if white := (colorful.Color{R: 1, G: 1, B: 1}); Lighten(white, LightenFraction) != white {
		t.Fatalf("white must be a fixed point")
	}
}

func TestGradientEndpoints(t *testing.T) {
	base := colorful.Color{R: 0.8, G: 0.2, B: 0.2}
	g := Gradient(base, 8)
	if len(g) != 8 {
		t.Fatalf("expected 8 stops, got %d", len(g))
	}
	if g[0] != base {
		t.Errorf("gradient must start at the base color")
	}
	if want := Lighten(base, LightenFraction); g[7] != want {
		t.Errorf("gradient must end at the lightened color")
	}
	for i := 1; i < len(g); i++ {
		if g[i].R < g[i-1].R {
			t.Fatalf("red channel must ease monotonically, broke at stop %d", i)
		}
	}
}

func TestGradientDegenerateWidths(t *testing.T) {
	base := colorful.Color{R: 0.1, G: 0.9, B: 0.3}
	if g := Gradient(base, 1); len(g) != 1 || g[0] != base {
		t.Fatalf("single-cell gradient must be the base color alone")
	}
	if g := Gradient(base, 0); g != nil {
		t.Fatalf("zero-width gradient must be nil")
	}
}
