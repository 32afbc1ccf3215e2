package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/latticesim/internal/config"
	"github.com/san-kum/latticesim/internal/metrics"
	"github.com/san-kum/latticesim/internal/sim"
)

type Experiment struct {
	cfg     *config.Config
	lattice *Lattice
	runner  *sim.Runner
	probe   *metrics.Probe
}

func New(cfg *config.Config) (*Experiment, error) {
	l, err := Build(cfg)
	if err != nil {
		return nil, err
	}
	probe := metrics.NewProbe(cfg.Probe.Row, cfg.Probe.Col, cfg.Probe.Axis)
	runner := sim.New()
	for _, m := range DefaultMetrics(cfg) {
		runner.AddMetric(m)
	}
	runner.AddMetric(probe)

	return &Experiment{
		cfg:     cfg,
		lattice: l,
		runner:  runner,
		probe:   probe,
	}, nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.lattice == nil {
		return nil, fmt.Errorf("experiment closed")
	}
	return e.runner.Run(ctx, e.lattice, RunConfig(e.cfg))
}

func (e *Experiment) AddObserver(o sim.Observer) { e.runner.AddObserver(o) }

// Probe returns the trace recorded by the last Run.
func (e *Experiment) Probe() *metrics.Probe { return e.probe }

func (e *Experiment) Lattice() *Lattice { return e.lattice }

func (e *Experiment) Close() {
	if e.lattice != nil {
		e.lattice.Close()
		e.lattice = nil
	}
}

// RunConfig maps the file configuration onto the run layer.
func RunConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		Dt:            cfg.Dt,
		Steps:         cfg.Steps,
		SampleEvery:   cfg.SampleEvery,
		ValidateState: true,
	}
}

func DefaultMetrics(cfg *config.Config) []sim.Metric {
	limit := cfg.StabilityLimit
	if limit <= 0 {
		limit = config.DefaultLimit
	}
	return []sim.Metric{
		metrics.NewEnergy(),
		metrics.NewEnergyDrift(),
		metrics.NewStability(limit),
	}
}

// RunEnsemble runs cfg once per seed, at most limit at a time. Each run uses
// the serial backend so parallelism comes from the ensemble alone.
func RunEnsemble(ctx context.Context, cfg *config.Config, seeds []int64, limit int) ([]*sim.Result, error) {
	newRunner := func() *sim.Runner {
		r := sim.New()
		for _, m := range DefaultMetrics(cfg) {
			r.AddMetric(m)
		}
		return r
	}
	build := func(seed int64) (sim.Stepper, error) {
		c := cfg.Clone()
		c.Seed = seed
		c.Backend = "serial"
		c.Workers = 0
		return Build(c)
	}
	return sim.NewEnsemble(newRunner, limit).Run(ctx, seeds, build, RunConfig(cfg))
}
