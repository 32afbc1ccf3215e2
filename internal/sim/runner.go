package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/latticesim/internal/lattice"
	"github.com/san-kum/latticesim/internal/metrics"
)

// Runner drives a Stepper for a fixed number of steps, sampling metrics and
// observers every SampleEvery steps.
type Runner struct {
	metrics   []Metric
	observers []Observer
}

func New() *Runner {
	return &Runner{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, s Stepper, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	every := cfg.SampleEvery
	if every <= 0 {
		every = 1
	}

	samples := cfg.Steps/every + 2
	result := &Result{
		Times:    make([]float64, 0, samples),
		Energies: make([]float64, 0, samples),
		Metrics:  make(map[string]float64),
		Errors:   make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	frame := lattice.NewFrame(s.Rows(), s.Cols())
	s.Frame(frame)
	r.sample(result, frame, 0)
	initialEnergy := result.Energies[0]

	t := 0.0
	for i := 1; i <= cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			result.Final = frame
			return result, ctx.Err()
		default:
		}

		s.Step(cfg.Dt)
		t += cfg.Dt
		result.StepsTaken++

		if i%every != 0 && i != cfg.Steps {
			continue
		}

		s.Frame(frame)
		if cfg.ValidateState && !Valid(frame) {
			result.Errors = append(result.Errors, StepError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"})
			break
		}
		r.sample(result, frame, t)
	}

	result.Final = frame
	finalEnergy := result.Energies[len(result.Energies)-1]
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (r *Runner) sample(result *Result, f *lattice.Frame, t float64) {
	result.Times = append(result.Times, t)
	result.Energies = append(result.Energies, metrics.TotalEnergy(f))
	for _, m := range r.metrics {
		m.Observe(f, t)
	}
	for _, obs := range r.observers {
		obs.OnStep(f, t)
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	return nil
}
