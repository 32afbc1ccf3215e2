package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/latticesim/internal/lattice"
)

var shades = []rune{' ', '░', '▒', '▓', '█'}

// Magnitudes returns |u| per cell in row-major order and the largest value.
func Magnitudes(f *lattice.Frame) ([]float64, float64) {
	mags := make([]float64, f.Rows*f.Cols)
	peak := 0.0
	for c := range mags {
		x, y := f.Pos[lattice.Axes*c], f.Pos[lattice.Axes*c+1]
		mags[c] = math.Hypot(x, y)
		peak = max(peak, mags[c])
	}
	return mags, peak
}

// Heatmap renders displacement magnitude as at most width x height colored
// shade characters. Each character shows the largest magnitude in its block
// of cells, scaled by the frame's peak.
func Heatmap(f *lattice.Frame, theme Theme, width, height int) string {
	if f == nil || f.Rows == 0 || f.Cols == 0 || width < 1 || height < 1 {
		return ""
	}
	h, w := min(height, f.Rows), min(width, f.Cols)
	mags, peak := Magnitudes(f)

	styles := make([]lipgloss.Style, len(shades))
	for s := range styles {
		t := float64(s) / float64(len(shades)-1)
		styles[s] = lipgloss.NewStyle().Foreground(lerpColor(theme.Low, theme.High, t))
	}

	var b strings.Builder
	for r := 0; r < h; r++ {
		i0, i1 := r*f.Rows/h, (r+1)*f.Rows/h
		for c := 0; c < w; c++ {
			j0, j1 := c*f.Cols/w, (c+1)*f.Cols/w
			v := 0.0
			for i := i0; i < i1; i++ {
				for j := j0; j < j1; j++ {
					v = max(v, mags[i*f.Cols+j])
				}
			}
			s := 0
			if peak > 0 {
				s = min(int(v/peak*float64(len(shades)-1)+0.5), len(shades)-1)
			}
			b.WriteString(styles[s].Render(string(shades[s])))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
