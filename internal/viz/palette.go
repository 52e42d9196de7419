package viz

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/mazznoer/colorgrad"
)

const paletteSize = 256

var gradients = map[string]func() colorgrad.Gradient{
	"viridis": colorgrad.Viridis,
	"turbo":   colorgrad.Turbo,
	"plasma":  colorgrad.Plasma,
	"rdbu":    colorgrad.RdBu,
}

// Palette maps heights in [-Limit, Limit] onto a fixed colour ramp.
type Palette struct {
	Name   string
	Limit  float64
	colors color.Palette
}

// NewPalette builds the named ramp. Unknown names fall back to viridis and
// a non-positive limit to 0.5.
func NewPalette(name string, limit float64) Palette {
	grad, ok := gradients[name]
	if !ok {
		name, grad = "viridis", colorgrad.Viridis
	}
	if limit <= 0 {
		limit = 0.5
	}
	return Palette{Name: name, Limit: limit, colors: grad().Colors(paletteSize)}
}

func PaletteNames() []string {
	names := make([]string, 0, len(gradients))
	for name := range gradients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Index returns the palette slot of h, clamping outside the limits. NaN
// maps to the middle of the ramp.
func (p Palette) Index(h float64) int {
	if math.IsNaN(h) {
		return len(p.colors) / 2
	}
	t := (h + p.Limit) / (2 * p.Limit)
	t = math.Max(0, math.Min(1, t))
	return int(t*float64(len(p.colors)-1) + 0.5)
}

func (p Palette) Colors() color.Palette { return p.colors }

// Hex returns the colour of h as #rrggbb.
func (p Palette) Hex(h float64) string {
	r, g, b, _ := p.colors[p.Index(h)].RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
