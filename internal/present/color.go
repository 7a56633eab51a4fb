package present

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Plasma is the sequential palette used for pies and colour-scaled bars.
var Plasma = []string{
	"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786",
	"#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921",
}

// Categorical returns the i-th palette colour, cycling.
func Categorical(i int) string {
	return Plasma[i%len(Plasma)]
}

// Scale maps v within [lo, hi] onto the palette, interpolating between stops.
func Scale(v, lo, hi float64) string {
	t := 0.0
	if hi > lo {
		t = (v - lo) / (hi - lo)
	}
	t = math.Max(0, math.Min(1, t))

	pos := t * float64(len(Plasma)-1)
	i := int(math.Floor(pos))
	if i >= len(Plasma)-1 {
		return Plasma[len(Plasma)-1]
	}
	frac := pos - float64(i)

	c1 := drawing.ColorFromHex(Plasma[i])
	c2 := drawing.ColorFromHex(Plasma[i+1])
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + frac*(float64(b)-float64(a))))
	}
	return fmt.Sprintf("#%02x%02x%02x", mix(c1.R, c2.R), mix(c1.G, c2.G), mix(c1.B, c2.B))
}
