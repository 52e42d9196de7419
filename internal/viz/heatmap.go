package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/swsim/internal/ocean"
)

const secondsPerDay = 86400.0

// HeatMap draws H as coloured cells, row 0 at the top, with a glyph per cell
// pointing along the face velocities (U on the west face, V on the north
// face; positive V points down the screen).
type HeatMap struct {
	Palette    Palette
	ArrowScale float64

	// MinArrow is the scaled speed, in cells, below which a cell shows a dot.
	MinArrow float64

	cells []lipgloss.Style
}

func NewHeatMap(p Palette, arrowScale float64) *HeatMap {
	h := &HeatMap{Palette: p, ArrowScale: arrowScale, MinArrow: 0.01}
	h.cells = make([]lipgloss.Style, len(p.Colors()))
	for i := range h.cells {
		bg := p.Hex(-p.Limit + 2*p.Limit*float64(i)/float64(len(h.cells)-1))
		h.cells[i] = lipgloss.NewStyle().Background(lipgloss.Color(bg)).Foreground(lipgloss.Color("#ffffff"))
	}
	return h
}

// Days formats model time for captions, truncated to a tenth of a day.
func Days(seconds float64) string {
	return fmt.Sprintf("%.1f days", math.Floor(seconds/secondsPerDay*10)/10)
}

func (h *HeatMap) Render(s ocean.Snapshot) string {
	rows, cols := s.Dims()
	var b strings.Builder
	b.WriteString("Time: " + Days(s.Time) + "\n")
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			g := glyph(s.U.At(i, j), s.V.At(i, j), h.ArrowScale, h.MinArrow)
			b.WriteString(h.cells[h.Palette.Index(s.H.At(i, j))].Render(string(g) + " "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

var arrows = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// glyph picks one of eight arrows for the flow (u, v), with v measured
// downward, or a dot when the scaled speed is under threshold.
func glyph(u, v, scale, threshold float64) rune {
	if math.Hypot(u, v)*scale < threshold || math.IsNaN(u) || math.IsNaN(v) {
		return '·'
	}
	angle := math.Atan2(v, u)
	sector := int(math.Round(angle/(math.Pi/4))+8) % 8
	return arrows[sector]
}
