package timeline

import (
	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/gantt/pkg/item"
)

// LightenFraction is how far a bar's trailing gradient stop moves toward
// white from its base color.
const LightenFraction = 0.35

// Palette maps item kinds to their base bar colors.
type Palette struct {
	Project string
	Task    string
}

// Base resolves the bar color for an item kind, falling back to a neutral
// gray when the configured value does not parse.
func (p Palette) Base(kind item.Kind) colorful.Color {
	hex := p.Task
	if kind == item.Project {
		hex = p.Project
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	return c
}

// Lighten blends a color toward white by the given fraction, channel by
// channel in RGB space.
func Lighten(c colorful.Color, fraction float64) colorful.Color {
	white := colorful.Color{R: 1, G: 1, B: 1}
	return c.BlendRgb(white, fraction).Clamped()
}

// Gradient produces the two-stop gradient of a bar sampled across n cells:
// the base color on the left easing to its lightened variant on the right.
// A single-cell bar gets just the base color.
func Gradient(base colorful.Color, n int) []colorful.Color {
	if n <= 0 {
		return nil
	}
	light := Lighten(base, LightenFraction)
	out := make([]colorful.Color, n)
	if n == 1 {
		out[0] = base
		return out
	}
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		out[i] = base.BlendRgb(light, t).Clamped()
	}
	return out
}
