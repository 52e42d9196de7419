package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/swsim/internal/ocean"
	"github.com/san-kum/swsim/internal/viz"
)

const headerHeight = 24

// SnapshotToSVG draws H as filled cells with a quiver of face velocities:
// U arrows start on west faces, V arrows on north faces. Row 0 is at the top
// and positive V points down.
func SnapshotToSVG(s ocean.Snapshot, p viz.Palette, arrowScale, cell float64) string {
	rows, cols := s.Dims()
	width := float64(cols) * cell
	height := float64(rows)*cell + headerHeight

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<text x="4" y="16" fill="#e0e0e0" font-family="monospace" font-size="14">Time: %s</text>
`, width, height, width, height, viz.Days(s.Time)))

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(j)*cell, headerHeight+float64(i)*cell, cell, cell, p.Hex(s.H.At(i, j))))
		}
	}

	sb.WriteString(`<g stroke="#ffffff" stroke-width="1">
`)
	for i := 0; i < rows; i++ {
		y := headerHeight + float64(i)*cell
		for j := 0; j < cols; j++ {
			x := float64(j) * cell
			arrow(&sb, x, y+cell/2, s.U.At(i, j)*arrowScale*cell, 0)
			arrow(&sb, x+cell/2, y, 0, s.V.At(i, j)*arrowScale*cell)
		}
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func arrow(sb *strings.Builder, x, y, dx, dy float64) {
	if math.Hypot(dx, dy) < 0.5 || math.IsNaN(dx) || math.IsNaN(dy) {
		return
	}
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, x, y, x+dx, y+dy))
}

// SeriesToSVG draws a metric series as a polyline scaled to fill the view.
func SeriesToSVG(times, values []float64, width, height int, strokeColor string) string {
	n := min(len(times), len(values))
	if n < 2 {
		return ""
	}

	minX, maxX := times[0], times[0]
	minY, maxY := values[0], values[0]
	for i := 0; i < n; i++ {
		minX, maxX = math.Min(minX, times[i]), math.Max(maxX, times[i])
		minY, maxY = math.Min(minY, values[i]), math.Max(maxY, values[i])
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := 0; i < n; i++ {
		x := (times[i] - minX) / rangeX * float64(width)
		y := float64(height) - (values[i]-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
