package sim

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Ensemble runs independent simulations, one per seed, concurrently.
type Ensemble struct {
	newRunner func() *Runner
	limit     int
}

// NewEnsemble takes a runner factory so every run gets its own metric set.
// limit caps the number of concurrent runs; limit <= 0 means no cap.
func NewEnsemble(newRunner func() *Runner, limit int) *Ensemble {
	return &Ensemble{newRunner: newRunner, limit: limit}
}

func (e *Ensemble) Run(ctx context.Context, seeds []int64, build func(seed int64) (Stepper, error), cfg Config) ([]*Result, error) {
	results := make([]*Result, len(seeds))

	g, gctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	for i, seed := range seeds {
		g.Go(func() error {
			s, err := build(seed)
			if err != nil {
				return err
			}
			res, err := e.newRunner().Run(gctx, s, cfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
