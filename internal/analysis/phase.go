package analysis

import (
	"strings"
)

// PhasePortrait2D holds (x, y) pairs for a 2D phase space plot, usually a
// probe's displacement against its velocity.
type PhasePortrait2D struct {
	Points []struct{ X, Y float64 }
}

// NewPhasePortrait pairs xs and ys up to the shorter length.
func NewPhasePortrait(xs, ys []float64) *PhasePortrait2D {
	n := min(len(xs), len(ys))
	portrait := &PhasePortrait2D{
		Points: make([]struct{ X, Y float64 }, n),
	}
	for i := 0; i < n; i++ {
		portrait.Points[i].X = xs[i]
		portrait.Points[i].Y = ys[i]
	}
	return portrait
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y
	for _, p := range portrait.Points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// axes, where they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// CrossingPeriod estimates the oscillation period of a trace from its
// upward crossings of the trace mean, interpolated linearly between samples.
// It returns 0 when fewer than two crossings are found.
func CrossingPeriod(trace, times []float64) float64 {
	n := min(len(trace), len(times))
	if n < 3 {
		return 0
	}
	mean := 0.0
	for _, v := range trace[:n] {
		mean += v
	}
	mean /= float64(n)

	var first, last float64
	count := 0
	for i := 1; i < n; i++ {
		prev, curr := trace[i-1]-mean, trace[i]-mean
		if prev < 0 && curr >= 0 {
			frac := -prev / (curr - prev)
			at := times[i-1] + frac*(times[i]-times[i-1])
			if count == 0 {
				first = at
			}
			last = at
			count++
		}
	}
	if count < 2 {
		return 0
	}
	return (last - first) / float64(count-1)
}
