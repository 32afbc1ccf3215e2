package metrics

import (
	"math"

	"github.com/san-kum/latticesim/internal/lattice"
	"gonum.org/v1/gonum/floats"
)

// Stability is the fraction of samples whose largest displacement stays below
// the threshold. Samples with NaN or Inf count as violations.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
	peak       float64
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(f *lattice.Frame, t float64) {
	s.samples++
	if floats.HasNaN(f.Pos) {
		s.violations++
		return
	}
	amp := floats.Norm(f.Pos, math.Inf(1))
	s.peak = math.Max(s.peak, amp)
	if amp > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

// Peak is the largest displacement component seen so far.
func (s *Stability) Peak() float64 { return s.peak }

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
	s.peak = 0
}
