package optim

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/latticesim/internal/config"
	"github.com/san-kum/latticesim/internal/experiment"
)

// GridSearch evaluates every combination of parameter values and keeps the
// one with the smallest metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("grid search: %d names for %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]float64

	if err := g.searchRecursive(ctx, 0, make(map[string]float64), buildExperiment, metricName, &best, &bestParams); err != nil {
		return nil, 0, err
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		exp, err := buildExperiment(current)
		if err != nil {
			return fmt.Errorf("grid search %v: %w", current, err)
		}
		defer exp.Close()

		result, err := exp.Run(ctx)
		if err != nil {
			return fmt.Errorf("grid search %v: %w", current, err)
		}
		// a diverged run is a losing point, not a failure
		if len(result.Errors) > 0 {
			return nil
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("grid search: unknown metric %q", metricName)
		}
		if math.IsNaN(val) {
			return nil
		}
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, buildExperiment, metricName, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}

// ParseParams reads name=v1,v2,... specs into the names and ranges
// NewGridSearch takes.
func ParseParams(specs []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(specs))
	ranges := make([][]float64, 0, len(specs))
	for _, spec := range specs {
		name, list, ok := strings.Cut(spec, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" || list == "" {
			return nil, nil, fmt.Errorf("param %q: want name=v1,v2", spec)
		}
		var vals []float64
		for _, f := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("param %s: %w", name, err)
			}
			vals = append(vals, v)
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}
	return names, ranges, nil
}

// Apply returns a copy of base with the named numeric parameters set.
// Known names: dt, stiffness, sigma.
func Apply(base *config.Config, params map[string]float64) (*config.Config, error) {
	cfg := base.Clone()
	for name, v := range params {
		switch name {
		case "dt":
			cfg.Dt = v
		case "stiffness", "k":
			cfg.Stiffness = v
		case "sigma":
			cfg.Sigma = v
		default:
			return nil, fmt.Errorf("unknown parameter: %s", name)
		}
	}
	return cfg, nil
}
