package engine

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Ensemble renders independent engines side by side, one goroutine each.
// Build is called with the run index and must return a fresh engine.
type Ensemble struct {
	Runs  int
	Build func(i int) (*Engine, error)
}

func (en *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, en.Runs)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < en.Runs; i++ {
		g.Go(func() error {
			e, err := en.Build(i)
			if err != nil {
				return err
			}
			results[i], err = e.Run(ctx, cfg)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
