package metrics

import (
	"fmt"
	"math"

	"github.com/san-kum/latticesim/internal/lattice"
)

// Probe records the displacement of one cell along one axis at every
// sample. Its value is the RMS of the recorded trace.
type Probe struct {
	Row, Col, Axis int
	trace          []float64
	vel            []float64
	times          []float64
}

func NewProbe(row, col, axis int) *Probe {
	return &Probe{Row: row, Col: col, Axis: axis}
}

func (p *Probe) Name() string {
	return fmt.Sprintf("probe_rms[%d,%d,%d]", p.Row, p.Col, p.Axis)
}

func (p *Probe) Observe(f *lattice.Frame, t float64) {
	if p.Row >= f.Rows || p.Col >= f.Cols {
		return
	}
	k := lattice.Axes*(p.Row*f.Cols+p.Col) + p.Axis
	p.trace = append(p.trace, f.Pos[k])
	p.vel = append(p.vel, f.Vel[k])
	p.times = append(p.times, t)
}

func (p *Probe) Value() float64 {
	if len(p.trace) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range p.trace {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(p.trace)))
}

// Reset drops the recorded traces. Slices returned earlier keep their
// contents; the next run appends to fresh storage.
func (p *Probe) Reset() {
	p.trace, p.vel, p.times = nil, nil, nil
}

func (p *Probe) Trace() []float64 { return p.trace }
func (p *Probe) Times() []float64 { return p.times }

// Velocities is the velocity trace recorded alongside Trace.
func (p *Probe) Velocities() []float64 { return p.vel }
