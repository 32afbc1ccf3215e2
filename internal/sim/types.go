package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/latticesim/internal/lattice"
)

// Stepper is the non-generic view of a lattice simulator the run layer drives.
type Stepper interface {
	Step(dt float64)
	Frame(dst *lattice.Frame)
	Rows() int
	Cols() int
	Stiffness() float64
}

type Metric interface {
	Name() string
	Observe(f *lattice.Frame, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(f *lattice.Frame, t float64)
}

type Config struct {
	Dt    float64
	Steps int
	// SampleEvery is the step interval between metric observations.
	SampleEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1e-3,
		Steps:         1000,
		SampleEvery:   10,
		ValidateState: true,
	}
}

type Result struct {
	StepsTaken  int
	Times       []float64
	Energies    []float64
	Metrics     map[string]float64
	EnergyDrift float64
	Errors      []error
	Final       *lattice.Frame
}

// StepError reports a failure at a given step of a run.
type StepError struct {
	Time    float64
	Step    int
	Message string
}

func (e StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

// Valid reports whether every position and velocity is finite.
func Valid(f *lattice.Frame) bool {
	for _, v := range f.Pos {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	for _, v := range f.Vel {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
