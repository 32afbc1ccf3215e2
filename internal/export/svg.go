package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/crazy3lf/colorconv"
	"github.com/san-kum/latticesim/internal/lattice"
	"github.com/san-kum/latticesim/internal/viz"
)

const svgHeader = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`

// FrameToSVG draws the deformed lattice: springs as lines and cells as dots
// colored from blue (at rest) to red (largest displacement). spacing is
// the rest distance between cells in pixels; gain scales displacements in
// units of that spacing, and gain <= 0 picks a gain that maps the largest
// displacement to 0.4 spacings.
func FrameToSVG(f *lattice.Frame, spacing, gain float64) string {
	if f == nil || f.Rows == 0 || f.Cols == 0 {
		return ""
	}
	_, peak := viz.Magnitudes(f)
	if gain <= 0 {
		gain = 0
		if peak > 0 {
			gain = 0.4 / peak
		}
	}

	margin := spacing
	width := float64(f.Cols-1)*spacing + 2*margin
	height := float64(f.Rows-1)*spacing + 2*margin
	at := func(i, j int) (float64, float64) {
		x, y := f.At(i, j)
		return margin + (float64(j)+gain*x)*spacing, margin + (float64(i)+gain*y)*spacing
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(svgHeader, width, height, width, height))

	sb.WriteString(`<g stroke="#444466" stroke-width="1">` + "\n")
	for i := 0; i < f.Rows; i++ {
		for j := 0; j < f.Cols; j++ {
			x0, y0 := at(i, j)
			if j+1 < f.Cols {
				x1, y1 := at(i, j+1)
				sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", x0, y0, x1, y1))
			}
			if i+1 < f.Rows {
				x1, y1 := at(i+1, j)
				sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", x0, y0, x1, y1))
			}
		}
	}
	sb.WriteString("</g>\n<g>\n")

	r := math.Max(spacing*0.2, 0.5)
	for i := 0; i < f.Rows; i++ {
		for j := 0; j < f.Cols; j++ {
			x, y := at(i, j)
			px, py := f.At(i, j)
			level := 0.0
			if peak > 0 {
				level = math.Hypot(px, py) / peak
			}
			sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n", x, y, r, heat(level)))
		}
	}
	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// heat maps [0,1] onto the hue wheel from blue (0) to red (1).
func heat(level float64) string {
	level = math.Min(math.Max(level, 0), 1)
	r, g, b, err := colorconv.HSVToRGB(240*(1-level), 1, 1)
	if err != nil {
		return "#ffffff"
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(svgHeader, width, height, width, height))
	sb.WriteString(`<g fill="#00ff00">` + "\n")

	dotRadius := scale * 0.4
	for y := 0; y < canvas.Height*4; y++ {
		for x := 0; x < canvas.Width*2; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// TraceToSVG plots ys against xs as a single polyline, e.g. a probe trace
// over time.
func TraceToSVG(xs, ys []float64, width, height int, strokeColor string) string {
	n := min(len(xs), len(ys))
	if n < 2 {
		return ""
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := 0; i < n; i++ {
		minX, maxX = min(minX, xs[i]), max(maxX, xs[i])
		minY, maxY = min(minY, ys[i]), max(maxY, ys[i])
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
	w, h := float64(width), float64(height)
	sb.WriteString(fmt.Sprintf(svgHeader, w, h, w, h))
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i := 0; i < n; i++ {
		x := (xs[i] - minX) / rangeX * w
		y := h - (ys[i]-minY)/rangeY*h
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString("\"/>\n</svg>\n")
	return sb.String()
}
