package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/latticesim/internal/config"
	"github.com/san-kum/latticesim/internal/experiment"
)

func baseConfig() *config.Config {
	cfg := config.GetPreset("small")
	cfg.Rows, cfg.Cols = 4, 4
	cfg.Probe.Row, cfg.Probe.Col = 1, 1
	cfg.Steps = 100
	return cfg
}

func TestApply(t *testing.T) {
	base := baseConfig()
	cfg, err := Apply(base, map[string]float64{"dt": 0.5, "k": 3, "sigma": 0.2})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Dt != 0.5 || cfg.Stiffness != 3 || cfg.Sigma != 0.2 {
		t.Errorf("got %+v", cfg)
	}
	if base.Dt == 0.5 {
		t.Error("Apply modified its input")
	}
	if _, err := Apply(base, map[string]float64{"mass": 1}); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestGridSearch(t *testing.T) {
	base := baseConfig()
	g := NewGridSearch([]string{"sigma"}, [][]float64{{0.3, 0.01, 0.1}})

	best, val, err := g.Search(context.Background(), func(p map[string]float64) (*experiment.Experiment, error) {
		cfg, err := Apply(base, p)
		if err != nil {
			return nil, err
		}
		return experiment.New(cfg)
	}, "energy")
	if err != nil {
		t.Fatal(err)
	}
	// energy scales with sigma^2
	if best["sigma"] != 0.01 {
		t.Errorf("best sigma = %v, want 0.01", best["sigma"])
	}
	if val <= 0 {
		t.Errorf("best energy = %v", val)
	}
}

func TestGridSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := NewGridSearch([]string{"dt"}, [][]float64{{0.01}})
	_, _, err := g.Search(ctx, func(map[string]float64) (*experiment.Experiment, error) {
		t.Fatal("build should not be called")
		return nil, nil
	}, "energy")
	if err == nil {
		t.Error("expected context error")
	}
}

func TestGridSearchSurfacesBuildErrors(t *testing.T) {
	base := baseConfig()
	g := NewGridSearch([]string{"dt"}, [][]float64{{0.01, -1}})

	_, _, err := g.Search(context.Background(), func(p map[string]float64) (*experiment.Experiment, error) {
		cfg, err := Apply(base, p)
		if err != nil {
			return nil, err
		}
		return experiment.New(cfg)
	}, "energy_drift")
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for dt=-1, got %v", err)
	}
}

func TestGridSearchUnknownMetric(t *testing.T) {
	base := baseConfig()
	g := NewGridSearch([]string{"sigma"}, [][]float64{{0.1}})
	_, _, err := g.Search(context.Background(), func(p map[string]float64) (*experiment.Experiment, error) {
		cfg, _ := Apply(base, p)
		return experiment.New(cfg)
	}, "momentum")
	if err == nil {
		t.Error("expected error for unknown metric")
	}
}

func TestParseParams(t *testing.T) {
	names, ranges, err := ParseParams([]string{"dt=0.01,0.02", " sigma = 0.1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "dt" || names[1] != "sigma" {
		t.Fatalf("names = %v", names)
	}
	if len(ranges[0]) != 2 || ranges[0][1] != 0.02 || ranges[1][0] != 0.1 {
		t.Errorf("ranges = %v", ranges)
	}

	for _, bad := range []string{"dt", "=0.1", "dt=", "dt=0.1,x"} {
		if _, _, err := ParseParams([]string{bad}); err == nil {
			t.Errorf("ParseParams(%q): expected error", bad)
		}
	}
}

func TestStabilitySweep(t *testing.T) {
	base := baseConfig()
	base.Dt, base.Steps = 0.01, 200
	base.StabilityLimit = 1

	points, best, err := StabilitySweep(context.Background(), base, []float64{2.0, 0.005, 0.01}, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 3 || points[0].Dt != 0.005 || points[2].Dt != 2.0 {
		t.Fatalf("points not sorted: %+v", points)
	}
	if points[2].Stable {
		t.Errorf("dt=2 should be unstable: %+v", points[2])
	}
	if best != 0.01 {
		t.Errorf("best = %v, want 0.01", best)
	}
}
