package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/san-kum/latticesim/internal/lattice"
	"github.com/san-kum/latticesim/internal/metrics"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

var ramp = []rune(" .:-=+*#%@")

// LiveRenderer is a run observer that redraws a plain ASCII displacement map
// at most frameRate times per second. A zero frameRate draws every sample.
type LiveRenderer struct {
	out       io.Writer
	frameRate int
	lastFrame time.Time
	canvas    [][]rune
	frames    int
}

func NewLiveRenderer(out io.Writer, frameRate int) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		out:       out,
		frameRate: frameRate,
		canvas:    canvas,
	}
}

func (r *LiveRenderer) OnStep(f *lattice.Frame, t float64) {
	if r.frameRate > 0 {
		if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
			return
		}
		r.lastFrame = time.Now()
	}

	rows, cols, peak := r.draw(f)
	r.render(f, t, rows, cols, peak)
	r.frames++
}

// Frames is the number of redraws so far.
func (r *LiveRenderer) Frames() int { return r.frames }

// draw fills the canvas with the block maximum of |u|, scaled to the peak.
func (r *LiveRenderer) draw(f *lattice.Frame) (int, int, float64) {
	h, w := min(height, f.Rows), min(width, f.Cols)
	peak := 0.0
	for c := 0; c < f.Rows*f.Cols; c++ {
		peak = max(peak, math.Hypot(f.Pos[lattice.Axes*c], f.Pos[lattice.Axes*c+1]))
	}

	for y := 0; y < h; y++ {
		i0, i1 := y*f.Rows/h, (y+1)*f.Rows/h
		for x := 0; x < w; x++ {
			j0, j1 := x*f.Cols/w, (x+1)*f.Cols/w
			v := 0.0
			for i := i0; i < i1; i++ {
				for j := j0; j < j1; j++ {
					px, py := f.At(i, j)
					v = max(v, math.Hypot(px, py))
				}
			}
			idx := 0
			if peak > 0 {
				idx = min(int(v/peak*float64(len(ramp)-1)+0.5), len(ramp)-1)
			}
			r.canvas[y][x] = ramp[idx]
		}
	}
	return h, w, peak
}

func (r *LiveRenderer) render(f *lattice.Frame, t float64, rows, cols int, peak float64) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  lattice %dx%d  step=%d  t=%.2f\n", f.Rows, f.Cols, f.Step, t))
	b.WriteString("  " + strings.Repeat("-", cols) + "\n")

	for _, row := range r.canvas[:rows] {
		b.WriteString("  ")
		b.WriteString(string(row[:cols]))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", cols) + "\n")
	b.WriteString(fmt.Sprintf("  E=%.6g  peak|u|=%.4g\n", metrics.TotalEnergy(f), peak))

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
