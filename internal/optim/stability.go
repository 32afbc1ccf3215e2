package optim

import (
	"context"
	"sort"

	"github.com/san-kum/latticesim/internal/config"
	"github.com/san-kum/latticesim/internal/experiment"
)

type SweepPoint struct {
	Dt     float64
	Drift  float64
	Stable bool
	// Failed is set when the run produced NaN or Inf.
	Failed bool
}

// StabilitySweep runs base once per candidate time step, keeping the
// simulated duration fixed, and returns the points in ascending dt order
// together with the largest dt whose energy drift stays below tol and whose
// displacements stay under the stability limit. best is 0 when no candidate
// qualifies.
func StabilitySweep(ctx context.Context, base *config.Config, dts []float64, tol float64) ([]SweepPoint, float64, error) {
	sorted := append([]float64(nil), dts...)
	sort.Float64s(sorted)
	duration := base.Dt * float64(base.Steps)

	points := make([]SweepPoint, 0, len(sorted))
	best := 0.0
	for _, dt := range sorted {
		cfg, err := Apply(base, map[string]float64{"dt": dt})
		if err != nil {
			return nil, 0, err
		}
		cfg.Steps = max(1, int(duration/dt+0.5))
		cfg.SampleEvery = max(1, cfg.Steps/100)

		exp, err := experiment.New(cfg)
		if err != nil {
			return nil, 0, err
		}
		result, err := exp.Run(ctx)
		exp.Close()
		if err != nil {
			return nil, 0, err
		}

		p := SweepPoint{
			Dt:     dt,
			Drift:  result.Metrics["energy_drift"],
			Failed: len(result.Errors) > 0,
		}
		p.Stable = !p.Failed && result.Metrics["stability"] == 1 && p.Drift <= tol
		if p.Stable {
			best = dt
		}
		points = append(points, p)
	}
	return points, best, nil
}
