package metrics

import (
	"math"

	"github.com/san-kum/latticesim/internal/lattice"
	"gonum.org/v1/gonum/floats"
)

// Kinetic is 0.5*sum(v^2) over every cell and axis (unit masses).
func Kinetic(f *lattice.Frame) float64 {
	return 0.5 * floats.Dot(f.Vel, f.Vel)
}

// Potential is the stored spring energy 0.5*k*|dx|^2 summed over every
// horizontal and vertical bond.
func Potential(f *lattice.Frame) float64 {
	stride := f.Cols * lattice.Axes
	pe := 0.0
	diff := make([]float64, stride)
	for i := 0; i < f.Rows; i++ {
		row := f.Pos[i*stride : (i+1)*stride]
		// horizontal bonds: cell j+1 minus cell j, both axes at once
		if f.Cols > 1 {
			h := diff[:stride-lattice.Axes]
			floats.SubTo(h, row[lattice.Axes:], row[:stride-lattice.Axes])
			pe += floats.Dot(h, h)
		}
		if i+1 < f.Rows {
			below := f.Pos[(i+1)*stride : (i+2)*stride]
			floats.SubTo(diff, below, row)
			pe += floats.Dot(diff, diff)
		}
	}
	return 0.5 * f.Stiffness * pe
}

func TotalEnergy(f *lattice.Frame) float64 {
	return Kinetic(f) + Potential(f)
}

// Energy reports the mean total energy over all observed samples.
type Energy struct {
	name    string
	samples int
	total   float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(f *lattice.Frame, t float64) {
	e.total += TotalEnergy(f)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyDrift reports the largest relative deviation from the first sample.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(f *lattice.Frame, t float64) {
	energy := TotalEnergy(f)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
